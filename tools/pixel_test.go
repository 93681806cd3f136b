package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type capiPayload struct {
	Data []struct {
		EventName      string `json:"event_name"`
		EventTime      int64  `json:"event_time"`
		EventID        string `json:"event_id"`
		ActionSource   string `json:"action_source"`
		EventSourceURL string `json:"event_source_url"`
		UserData       struct {
			Em              []string `json:"em"`
			Ph              []string `json:"ph"`
			Fn              []string `json:"fn"`
			Ln              []string `json:"ln"`
			ClientUserAgent string   `json:"client_user_agent"`
			ClientIP        string   `json:"client_ip_address"`
		} `json:"user_data"`
		CustomData struct {
			Value    float64 `json:"value"`
			Currency string  `json:"currency"`
			Contents []struct {
				ID       string `json:"id"`
				Quantity int64  `json:"quantity"`
				Title    string `json:"title"`
			} `json:"contents"`
		} `json:"custom_data"`
	} `json:"data"`
}

func TestPixelSendNoopWhenUnconfigured(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := NewPixelClient("v20.0", time.Second)
	client.GraphURL = srv.URL

	if err := client.Send(context.Background(), PixelEvent{EventName: PixelEventPurchase}); err != nil {
		t.Fatalf("evento sem pixel configurado: %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("plano sem pixel não deveria gerar request")
	}
}

func TestPixelSendHashesUserData(t *testing.T) {
	var gotPath, gotToken string
	var payload capiPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"events_received":1}`))
	}))
	defer srv.Close()

	client := NewPixelClient("v20.0", time.Second)
	client.GraphURL = srv.URL

	err := client.Send(context.Background(), PixelEvent{
		PixelID:     "123456",
		AccessToken: "EAAtoken",
		EventName:   PixelEventPurchase,
		Email:       " Fulano@Example.COM ",
		Phone:       "(11) 99999-8888",
		Name:        "Fulano de Tal",
		Value:       99.90,
		ContentName: "Vitalício",
		ContentID:   "7",
		Quantity:    1,
		UserAgent:   "Mozilla/5.0",
		IP:          "203.0.113.9",
		SourceURL:   "https://loja.example.com/checkout/abc",
	})
	if err != nil {
		t.Fatalf("enviar evento: %v", err)
	}

	if gotPath != "/v20.0/123456/events" {
		t.Errorf("path = %q", gotPath)
	}
	if gotToken != "EAAtoken" {
		t.Errorf("access_token = %q", gotToken)
	}
	if len(payload.Data) != 1 {
		t.Fatalf("len(data) = %d, esperava 1", len(payload.Data))
	}

	ev := payload.Data[0]
	if ev.EventName != PixelEventPurchase || ev.ActionSource != "website" {
		t.Errorf("evento malformado: %+v", ev)
	}
	if ev.EventID == "" {
		t.Error("event_id vazio")
	}
	// PII sempre normalizada e hasheada, nunca em claro
	if want := HashSHA256("fulano@example.com"); len(ev.UserData.Em) != 1 || ev.UserData.Em[0] != want {
		t.Errorf("em = %v, esperava hash do e-mail normalizado", ev.UserData.Em)
	}
	if want := HashSHA256("11999998888"); len(ev.UserData.Ph) != 1 || ev.UserData.Ph[0] != want {
		t.Errorf("ph = %v, esperava hash só de dígitos", ev.UserData.Ph)
	}
	if want := HashSHA256("fulano"); len(ev.UserData.Fn) != 1 || ev.UserData.Fn[0] != want {
		t.Errorf("fn = %v", ev.UserData.Fn)
	}
	if want := HashSHA256("de tal"); len(ev.UserData.Ln) != 1 || ev.UserData.Ln[0] != want {
		t.Errorf("ln = %v", ev.UserData.Ln)
	}
	if ev.UserData.ClientUserAgent != "Mozilla/5.0" || ev.UserData.ClientIP != "203.0.113.9" {
		t.Errorf("user_data de contexto errado: %+v", ev.UserData)
	}
	if ev.CustomData.Value != 99.90 || ev.CustomData.Currency != "BRL" {
		t.Errorf("custom_data = %+v", ev.CustomData)
	}
	if len(ev.CustomData.Contents) != 1 || ev.CustomData.Contents[0].Title != "Vitalício" {
		t.Errorf("contents = %+v", ev.CustomData.Contents)
	}
	if ev.EventSourceURL != "https://loja.example.com/checkout/abc" {
		t.Errorf("event_source_url = %q", ev.EventSourceURL)
	}
}

func TestPixelSendGraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	client := NewPixelClient("v20.0", time.Second)
	client.GraphURL = srv.URL

	err := client.Send(context.Background(), PixelEvent{
		PixelID:     "123456",
		AccessToken: "invalido",
		EventName:   PixelEventInitiateCheckout,
	})
	ge, ok := err.(GraphAPIError)
	if !ok {
		t.Fatalf("esperava GraphAPIError, veio %v", err)
	}
	if ge.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, esperava 400", ge.StatusCode)
	}
}
