package workers

import (
	"context"
	"time"

	"venditto/metrics"
	"venditto/tools"

	log "github.com/sirupsen/logrus"
)

// pixelSender é o que o dispatcher precisa do cliente de pixel.
type pixelSender interface {
	Send(ctx context.Context, ev tools.PixelEvent) error
}

// PixelDispatcher entrega eventos de conversão em segundo plano.
// O caminho principal (resposta do checkout, ack do webhook) nunca espera a
// Conversions API: Dispatch apenas enfileira e retorna. Falha de envio é
// logada e contada, nunca propagada. Não há retry.
type PixelDispatcher struct {
	sender  pixelSender
	jobs    chan tools.PixelEvent
	timeout time.Duration
	done    chan struct{}
}

// StartPixelDispatcher sobe a goroutine de envio com uma fila limitada.
func StartPixelDispatcher(sender pixelSender, queueSize int, timeout time.Duration) *PixelDispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}
	d := &PixelDispatcher{
		sender:  sender,
		jobs:    make(chan tools.PixelEvent, queueSize),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go d.loop()
	return d
}

// Dispatch enfileira sem bloquear. Plano sem pixel configurado é no-op
// silencioso; fila saturada descarta o evento (melhor perder telemetria do que
// segurar a resposta de um pagamento).
func (d *PixelDispatcher) Dispatch(ev tools.PixelEvent) {
	if ev.PixelID == "" || ev.AccessToken == "" {
		return
	}
	select {
	case d.jobs <- ev:
	default:
		log.WithField("evento", ev.EventName).Warn("fila de pixel cheia, evento descartado")
		metrics.PixelEventsFailed.Inc()
	}
}

// Close drena a fila e espera o worker terminar. Usado no shutdown e nos
// testes.
func (d *PixelDispatcher) Close() {
	close(d.jobs)
	<-d.done
}

func (d *PixelDispatcher) loop() {
	defer close(d.done)
	for ev := range d.jobs {
		d.send(ev)
	}
}

func (d *PixelDispatcher) send(ev tools.PixelEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, ev); err != nil {
		log.WithError(err).
			WithField("evento", ev.EventName).
			WithField("pixel_id", ev.PixelID).
			Error("falha ao enviar evento de pixel")
		metrics.PixelEventsFailed.Inc()
		return
	}
	metrics.PixelEventsSent.Inc()
}
