package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"venditto/metrics"
	"venditto/storage"
	"venditto/tools"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type CreateSaleRequest struct {
	PlanID int64 `json:"plano_id" form:"plano_id"`

	BuyerName       string `json:"cliente_nome" form:"cliente_nome"`
	BuyerEmail      string `json:"cliente_email" form:"cliente_email"`
	BuyerPhone      string `json:"cliente_telefone" form:"cliente_telefone"`
	BuyerZip        string `json:"cliente_cep" form:"cliente_cep"`
	BuyerStreet     string `json:"cliente_rua" form:"cliente_rua"`
	BuyerNumber     string `json:"cliente_numero" form:"cliente_numero"`
	BuyerComplement string `json:"cliente_complemento" form:"cliente_complemento"`
	BuyerDistrict   string `json:"cliente_bairro" form:"cliente_bairro"`
	BuyerCity       string `json:"cliente_cidade" form:"cliente_cidade"`
	BuyerState      string `json:"cliente_estado" form:"cliente_estado"`
}

type WebhookRequest struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

type PixelInitiateCheckoutRequest struct {
	PlanID      int64   `json:"plano_id" form:"plano_id"`
	Value       float64 `json:"value" form:"value"`
	ContentName string  `json:"content_name" form:"content_name"`
}

// POST /api/vendas
// Início do checkout: carrega o plano ativo, pede a cobrança Pix ao provedor,
// persiste a venda pendente com o preço fotografado e dispara AddPaymentInfo
// em segundo plano. A resposta leva tudo que o front precisa para renderizar o
// QR Code.
func CreateSale(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlanID <= 0 {
		RespondError(c, "plano_id é obrigatório", http.StatusBadRequest)
		return
	}

	plan, err := deps.Storage.GetPlanWithProduct(req.PlanID)
	if err != nil {
		if storage.IsNotFound(err) {
			RespondError(c, "plano não encontrado", http.StatusNotFound)
			return
		}
		respondStorageError(c, err)
		return
	}
	if !plan.Active {
		// plano desativado não é vendável; para o comprador é como se não existisse
		RespondError(c, "plano não encontrado", http.StatusNotFound)
		return
	}

	description := plan.ProductName + " - " + plan.Name

	result, err := deps.Provider.CreateCharge(c.Request.Context(), tools.Charge{
		Amount:        plan.Price,
		PayerName:     req.BuyerName,
		PayerEmail:    req.BuyerEmail,
		PayerDocument: req.BuyerPhone,
		Description:   description,
		CallbackURL:   deps.BaseURL + "/api/vendas/webhook",
	})
	if err != nil {
		metrics.ChargeFailures.Inc()
		log.WithError(err).Error("falha ao criar cobrança pix")

		details := err.Error()
		var pe *tools.PaymentProviderError
		if errors.As(err, &pe) && pe.Body != "" {
			details = pe.Body
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "erro ao gerar Pix",
			"details": details,
		})
		return
	}

	sale, err := deps.Storage.CreateSale(storage.NewSale{
		PlanID:          plan.ID,
		BuyerName:       req.BuyerName,
		BuyerEmail:      req.BuyerEmail,
		BuyerPhone:      req.BuyerPhone,
		BuyerZip:        req.BuyerZip,
		BuyerStreet:     req.BuyerStreet,
		BuyerNumber:     req.BuyerNumber,
		BuyerComplement: req.BuyerComplement,
		BuyerDistrict:   req.BuyerDistrict,
		BuyerCity:       req.BuyerCity,
		BuyerState:      req.BuyerState,
		Amount:          plan.Price,
		QRCodeImage:     tools.QRCodeDataURL(result.PixCode),
		PixCode:         result.PixCode,
		TransactionID:   result.TransactionID,
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	metrics.SalesCreated.Inc()
	log.WithField("venda_id", sale.ID).WithField("txid", sale.PixTransactionID).Info("venda registrada")

	dispatchPixel(deps, tools.PixelEvent{
		PixelID:     plan.PixelID,
		AccessToken: plan.PixelAccessToken,
		EventName:   tools.PixelEventAddPaymentInfo,
		Email:       req.BuyerEmail,
		Phone:       req.BuyerPhone,
		Name:        req.BuyerName,
		Value:       sale.Amount,
		ContentName: description,
		ContentID:   strconv.FormatInt(plan.ID, 10),
		Quantity:    plan.Quantity,
		UserAgent:   c.Request.UserAgent(),
		IP:          c.ClientIP(),
		SourceURL:   sourceURL(c),
	})

	RespondSuccess(c, gin.H{
		"venda_id":   sale.ID,
		"valor":      sale.Amount,
		"qrcode":     sale.PixQRCode,
		"codigo_pix": sale.PixCode,
		"txid":       sale.PixTransactionID,
		"status":     sale.Status,
	})
}

// GET /api/vendas
func GetSales(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	sales, err := deps.Storage.ListSalesWithPlanAndProduct()
	if err != nil {
		respondStorageError(c, err)
		return
	}
	if sales == nil {
		sales = []storage.SaleListItem{}
	}

	RespondSuccess(c, sales)
}

// GET /api/vendas/stats
func GetSaleStats(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	stats, err := deps.Storage.GetSaleStats()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	RespondSuccess(c, stats)
}

// dispatchPixel entrega o evento se houver notificador configurado. Telemetria
// é best-effort: sem notificador o fluxo de pagamento segue normal.
func dispatchPixel(deps Deps, ev tools.PixelEvent) {
	if deps.Pixel == nil {
		return
	}
	deps.Pixel.Dispatch(ev)
}

// webhookAck responde 200 sempre: qualquer outra coisa faz o provedor
// reentregar e não há nada que uma retentativa dele resolva aqui.
func webhookAck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// isPaidStatus mapeia o vocabulário do provedor para "pago".
func isPaidStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "PAID", "APPROVED":
		return true
	}
	return false
}

// POST /api/vendas/webhook
// Confirmação assíncrona do provedor. Idempotente sob entrega at-least-once:
// a transição pending->paid é um UPDATE condicional, e o evento Purchase só
// sai quando a transição de fato aconteceu. Falha interna é logada e o
// provedor recebe ack mesmo assim.
func SaleWebhook(c *gin.Context) {
	deps, ok := depsFrom(c)
	if !ok || deps.Storage == nil {
		log.Error("webhook recebido sem dependências configuradas")
		webhookAck(c)
		return
	}

	var payload WebhookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.WithError(err).Warn("webhook com payload inválido")
		webhookAck(c)
		return
	}

	logCtx := log.WithField("txid", payload.TransactionID).WithField("status", payload.Status)
	logCtx.Info("webhook pixup recebido")

	if !isPaidStatus(payload.Status) {
		webhookAck(c)
		return
	}

	sale, err := deps.Storage.GetSaleByTransactionID(payload.TransactionID)
	if err != nil {
		if storage.IsNotFound(err) {
			logCtx.Warn("venda não encontrada para o txid do webhook")
		} else {
			logCtx.WithError(err).Error("falha ao buscar venda do webhook")
		}
		webhookAck(c)
		return
	}

	transitioned, err := deps.Storage.MarkSalePaid(payload.TransactionID)
	if err != nil {
		logCtx.WithError(err).Error("falha ao marcar venda como paga")
		webhookAck(c)
		return
	}
	if !transitioned {
		// replay: a venda já estava paga
		webhookAck(c)
		return
	}

	metrics.SalesPaid.Inc()
	logCtx.WithField("venda_id", sale.ID).Info("venda paga")

	plan, err := deps.Storage.GetPlanWithProduct(sale.PlanID)
	if err != nil {
		logCtx.WithError(err).Error("falha ao resolver plano para o evento Purchase")
		webhookAck(c)
		return
	}

	dispatchPixel(deps, tools.PixelEvent{
		PixelID:     plan.PixelID,
		AccessToken: plan.PixelAccessToken,
		EventName:   tools.PixelEventPurchase,
		Email:       sale.BuyerEmail,
		Phone:       sale.BuyerPhone,
		Name:        sale.BuyerName,
		Value:       sale.Amount,
		ContentName: plan.ProductName + " - " + plan.Name,
		ContentID:   strconv.FormatInt(plan.ID, 10),
		Quantity:    plan.Quantity,
		UserAgent:   "webhook",
		IP:          "127.0.0.1",
		SourceURL:   deps.BaseURL,
	})

	webhookAck(c)
}

// POST /api/vendas/pixel/initiate-checkout
// O comprador só chegou na página de checkout; ainda não existe venda. O
// evento sai com a identidade placeholder de visitante.
func PixelInitiateCheckout(c *gin.Context) {
	deps, ok := mustDeps(c)
	if !ok {
		return
	}

	var req PixelInitiateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlanID <= 0 {
		RespondError(c, "plano_id é obrigatório", http.StatusBadRequest)
		return
	}

	plan, err := deps.Storage.GetPlanWithProduct(req.PlanID)
	if err != nil {
		if storage.IsNotFound(err) {
			// sem plano não há pixel para disparar; o front não precisa saber
			RespondSuccess(c, gin.H{"success": true})
			return
		}
		respondStorageError(c, err)
		return
	}

	dispatchPixel(deps, tools.PixelEvent{
		PixelID:     plan.PixelID,
		AccessToken: plan.PixelAccessToken,
		EventName:   tools.PixelEventInitiateCheckout,
		Email:       "visitante@checkout.com",
		Name:        "Visitante",
		Value:       req.Value,
		ContentName: req.ContentName,
		ContentID:   strconv.FormatInt(plan.ID, 10),
		Quantity:    plan.Quantity,
		UserAgent:   c.Request.UserAgent(),
		IP:          c.ClientIP(),
		SourceURL:   sourceURL(c),
	})

	RespondSuccess(c, gin.H{"success": true})
}
