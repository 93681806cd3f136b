package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Charge é o contrato normalizado de cobrança Pix. O mapeamento para o wire da
// Pixup (payerQuestion, postbackUrl etc.) é detalhe do adapter, não do contrato.
type Charge struct {
	Amount        float64
	PayerName     string
	PayerEmail    string
	PayerDocument string
	Description   string
	CallbackURL   string
}

// ChargeResult é o que o comprador precisa para pagar: o id que o webhook vai
// referenciar e o payload Pix copia-e-cola.
type ChargeResult struct {
	TransactionID string
	PixCode       string
}

// PaymentProviderError carrega a resposta do provedor quando houver uma.
// Falha de rede/timeout fica em Err com StatusCode zero.
type PaymentProviderError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *PaymentProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pixup: %v", e.Err)
	}
	return fmt.Sprintf("pixup: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *PaymentProviderError) Unwrap() error {
	return e.Err
}

// Renova um pouco antes do expiry real para não usar token na iminência de
// vencer no meio de uma cobrança.
const tokenSafetyMargin = 30 * time.Second

// PixupClient fala com a API Pix da Pixup: troca client-id/secret por um
// bearer token (cacheado no processo) e cria cobranças via pix/qrcode.
//
// O cache de token é estado mutável compartilhado entre requests: a leitura é
// protegida por mutex e a renovação passa por singleflight, então no máximo
// uma renovação fica em voo por processo e as chamadas concorrentes esperam o
// resultado dela.
type PixupClient struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	HTTPClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	refresh     singleflight.Group
}

func NewPixupClient(clientID, clientSecret, baseURL string, timeout time.Duration) *PixupClient {
	return &PixupClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: timeout},
	}
}

// AccessToken devolve o token cacheado enquanto válido; vencido, dispara (ou
// adere a) uma renovação.
func (c *PixupClient) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	// A renovação é compartilhada entre os chamadores que aderiram: ela não
	// pode morrer junto com o contexto de quem chegou primeiro. O timeout do
	// HTTPClient continua limitando a chamada.
	v, err, _ := c.refresh.Do("token", func() (interface{}, error) {
		return c.refreshToken(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *PixupClient) refreshToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/oauth/token", nil)
	if err != nil {
		return "", &PaymentProviderError{Err: err}
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &PaymentProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &PaymentProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &PaymentProviderError{Err: err}
	}
	if parsed.AccessToken == "" {
		return "", &PaymentProviderError{StatusCode: resp.StatusCode, Body: "resposta sem access_token"}
	}

	expiry := time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	if parsed.ExpiresIn > 60 {
		expiry = expiry.Add(-tokenSafetyMargin)
	}

	c.mu.Lock()
	c.token = parsed.AccessToken
	c.tokenExpiry = expiry
	c.mu.Unlock()

	log.WithField("expira_em", expiry.Format(time.RFC3339)).Info("token pixup renovado")
	return parsed.AccessToken, nil
}

type pixupPayer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

type pixupQRCodeRequest struct {
	Amount        float64    `json:"amount"`
	PayerQuestion string     `json:"payerQuestion"`
	Payer         pixupPayer `json:"payer"`
	PostbackURL   string     `json:"postbackUrl"`
}

type pixupQRCodeResponse struct {
	TransactionID string `json:"transactionId"`
	QRCode        string `json:"qrcode"`
}

// CreateCharge pede um QR Code Pix ao provedor. Chamada síncrona e sem efeito
// local: quem persiste a venda é o coordenador, depois.
func (c *PixupClient) CreateCharge(ctx context.Context, charge Charge) (*ChargeResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := pixupQRCodeRequest{
		Amount:        charge.Amount,
		PayerQuestion: charge.Description,
		Payer: pixupPayer{
			Name:     charge.PayerName,
			Email:    charge.PayerEmail,
			Document: OnlyDigits(charge.PayerDocument),
		},
		PostbackURL: charge.CallbackURL,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/pix/qrcode", bytes.NewReader(b))
	if err != nil {
		return nil, &PaymentProviderError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &PaymentProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &PaymentProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed pixupQRCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &PaymentProviderError{Err: err}
	}
	if parsed.TransactionID == "" || parsed.QRCode == "" {
		return nil, &PaymentProviderError{
			StatusCode: resp.StatusCode,
			Body:       "resposta sem transactionId/qrcode",
		}
	}

	log.WithField("txid", parsed.TransactionID).Info("cobrança pix criada")
	return &ChargeResult{TransactionID: parsed.TransactionID, PixCode: parsed.QRCode}, nil
}
