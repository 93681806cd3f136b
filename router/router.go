package router

import (
	"venditto/controllers"
	"venditto/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Initialize amarra rotas e middlewares. Não há autenticação: o painel do
// vendedor e o checkout do comprador falam com a mesma API pública.
func Initialize(r *gin.Engine, deps controllers.Deps) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(controllers.SetDeps(deps))

	// Produtos e planos (vendedor)
	api.GET("/produtos", Logger(), controllers.GetProducts)
	api.POST("/produtos", Logger(), controllers.CreateProduct)
	api.POST("/produtos/:produtoId/planos", Logger(), controllers.CreatePlan)
	api.PUT("/planos/:id", Logger(), controllers.UpdatePlan)
	api.PUT("/planos/:id/pixel", Logger(), controllers.UpdatePlanPixelConfig)

	// Checkout (comprador)
	api.GET("/checkout/:link", Logger(), controllers.GetCheckoutPlan)
	api.POST("/vendas", Logger(), controllers.CreateSale)
	api.POST("/vendas/pixel/initiate-checkout", Logger(), controllers.PixelInitiateCheckout)

	// Painel de vendas
	api.GET("/vendas", Logger(), controllers.GetSales)
	api.GET("/vendas/stats", Logger(), controllers.GetSaleStats)

	// Provedor Pix
	api.POST("/vendas/webhook", Logger(), controllers.SaleWebhook)

	log.Info("rotas inicializadas")
}
