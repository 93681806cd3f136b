package controllers

import (
	"context"
	"net/http"

	"venditto/storage"
	"venditto/tools"

	"github.com/gin-gonic/gin"
)

// PaymentProvider é o contrato normalizado do provedor Pix (a implementação
// concreta é tools.PixupClient).
type PaymentProvider interface {
	CreateCharge(ctx context.Context, charge tools.Charge) (*tools.ChargeResult, error)
}

// PixelNotifier entrega eventos de conversão em best-effort, sem bloquear
// (a implementação concreta é workers.PixelDispatcher).
type PixelNotifier interface {
	Dispatch(ev tools.PixelEvent)
}

// Deps são as dependências dos handlers, injetadas no contexto do gin no setup
// das rotas.
type Deps struct {
	Storage  *storage.Gateway
	Provider PaymentProvider
	Pixel    PixelNotifier
	BaseURL  string
}

const depsKey = "deps"

// SetDeps é o middleware que disponibiliza as dependências para os handlers.
func SetDeps(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(depsKey, d)
		c.Next()
	}
}

func depsFrom(c *gin.Context) (Deps, bool) {
	v, ok := c.Get(depsKey)
	if !ok {
		return Deps{}, false
	}
	d, ok := v.(Deps)
	return d, ok
}

func mustDeps(c *gin.Context) (Deps, bool) {
	d, ok := depsFrom(c)
	if !ok || d.Storage == nil {
		RespondError(c, "dependências não configuradas no contexto", http.StatusInternalServerError)
		return Deps{}, false
	}
	return d, true
}
