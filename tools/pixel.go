package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Nomes de evento do funil que o backend dispara.
const (
	PixelEventInitiateCheckout = "InitiateCheckout"
	PixelEventAddPaymentInfo   = "AddPaymentInfo"
	PixelEventPurchase         = "Purchase"
)

// PixelEvent é um evento de conversão server-side. PixelID/AccessToken vêm do
// plano; sem os dois o envio é um no-op silencioso (plano sem tracking
// configurado não é erro).
type PixelEvent struct {
	PixelID     string
	AccessToken string
	EventName   string

	Email string
	Phone string
	Name  string

	Value       float64
	ContentName string
	ContentID   string
	Quantity    int64

	UserAgent string
	IP        string
	SourceURL string
}

// GraphAPIError é a resposta de erro da Graph API.
type GraphAPIError struct {
	StatusCode int
	Body       string
}

func (e GraphAPIError) Error() string {
	return fmt.Sprintf("graph api error: status=%d body=%s", e.StatusCode, e.Body)
}

// PixelClient envia eventos para a Conversions API do Facebook.
// GraphURL existe para os testes apontarem para um servidor local.
type PixelClient struct {
	APIVersion string
	GraphURL   string
	HTTPClient *http.Client
}

func NewPixelClient(apiVersion string, timeout time.Duration) *PixelClient {
	if strings.TrimSpace(apiVersion) == "" {
		apiVersion = "v20.0"
	}
	return &PixelClient{
		APIVersion: apiVersion,
		GraphURL:   "https://graph.facebook.com",
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Send envia um único evento. Erros aqui nunca chegam ao comprador: quem chama
// (o dispatcher) loga e descarta — telemetria de marketing não pode atrasar nem
// derrubar o caminho do pagamento.
func (c *PixelClient) Send(ctx context.Context, ev PixelEvent) error {
	if ev.PixelID == "" || ev.AccessToken == "" {
		return nil
	}

	userData := map[string]interface{}{}
	if ev.Email != "" {
		userData["em"] = []string{HashSHA256(ev.Email)}
	}
	if phone := OnlyDigits(ev.Phone); phone != "" {
		userData["ph"] = []string{HashSHA256(phone)}
	}
	if name := strings.TrimSpace(ev.Name); name != "" {
		parts := strings.Fields(name)
		userData["fn"] = []string{HashSHA256(parts[0])}
		if len(parts) > 1 {
			userData["ln"] = []string{HashSHA256(strings.Join(parts[1:], " "))}
		}
	}
	if ev.UserAgent != "" {
		userData["client_user_agent"] = ev.UserAgent
	}
	if ev.IP != "" {
		userData["client_ip_address"] = ev.IP
	}

	customData := map[string]interface{}{
		"value":    ev.Value,
		"currency": "BRL",
	}
	if ev.ContentName != "" {
		customData["contents"] = []map[string]interface{}{{
			"id":       ev.ContentID,
			"quantity": ev.Quantity,
			"title":    ev.ContentName,
		}}
	}

	event := map[string]interface{}{
		"event_name":    ev.EventName,
		"event_time":    time.Now().Unix(),
		"event_id":      uuid.NewString(),
		"action_source": "website",
		"user_data":     userData,
		"custom_data":   customData,
	}
	if ev.SourceURL != "" {
		event["event_source_url"] = ev.SourceURL
	}

	b, _ := json.Marshal(map[string]interface{}{
		"data": []map[string]interface{}{event},
	})

	endpoint := fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		strings.TrimRight(c.GraphURL, "/"), c.APIVersion, ev.PixelID,
		url.QueryEscape(ev.AccessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return GraphAPIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
