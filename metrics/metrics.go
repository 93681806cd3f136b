package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores do funil de vendas e das integrações externas, expostos em
// /metrics.
var (
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venditto_vendas_criadas_total",
		Help: "Vendas registradas com status pending.",
	})

	SalesPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venditto_vendas_pagas_total",
		Help: "Transições pending->paid confirmadas via webhook.",
	})

	ChargeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venditto_cobrancas_pix_falhas_total",
		Help: "Falhas ao criar cobrança Pix no provedor.",
	})

	PixelEventsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venditto_pixel_eventos_enviados_total",
		Help: "Eventos de conversão entregues à Conversions API.",
	})

	PixelEventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venditto_pixel_eventos_falhos_total",
		Help: "Eventos de conversão descartados por falha ou fila cheia.",
	})
)
