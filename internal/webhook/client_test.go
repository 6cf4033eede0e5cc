package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newTestBot(ts *httptest.Server) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{Token: "TOKEN", Client: ts.Client(), Buffer: 100}
	bot.SetAPIEndpoint(ts.URL + "/bot%s/%s")
	return bot
}

func TestSetWebhook_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/botTOKEN/setWebhook" {
			t.Fatalf("path = %s, want /botTOKEN/setWebhook", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("url") != "https://bot.example.com/webhook" || r.PostForm.Get("secret_token") != "s3cret" {
			t.Fatalf("unexpected request: %v", r.PostForm)
		}

		var allowed []string
		if err := json.Unmarshal([]byte(r.PostForm.Get("allowed_updates")), &allowed); err != nil {
			t.Fatalf("allowed_updates: %v", err)
		}
		if len(allowed) != 2 || allowed[0] != "message" || allowed[1] != "callback_query" {
			t.Fatalf("allowed_updates = %v", allowed)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":true,"description":"Webhook was set"}`))
	}))
	defer ts.Close()

	client := NewClient(newTestBot(ts))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := client.SetWebhook(ctx, Endpoint("https://bot.example.com/"), "s3cret"); err != nil {
		t.Fatalf("SetWebhook error: %v", err)
	}
}

func TestSetWebhook_NoSecret(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if _, ok := r.PostForm["secret_token"]; ok {
			t.Fatalf("secret_token must be omitted when empty")
		}
		w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer ts.Close()

	if err := NewClient(newTestBot(ts)).SetWebhook(context.Background(), "https://x/webhook", ""); err != nil {
		t.Fatalf("SetWebhook error: %v", err)
	}
}

func TestDeleteWebhook_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/deleteWebhook" {
			t.Fatalf("path = %s, want /botTOKEN/deleteWebhook", r.URL.Path)
		}
		r.ParseForm()
		if r.PostForm.Get("drop_pending_updates") != "true" {
			t.Fatalf("drop_pending_updates = %q, want true", r.PostForm.Get("drop_pending_updates"))
		}
		w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer ts.Close()

	if err := NewClient(newTestBot(ts)).DeleteWebhook(context.Background(), true); err != nil {
		t.Fatalf("DeleteWebhook error: %v", err)
	}
}

func TestSetWebhook_TooManyRequests(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 7","parameters":{"retry_after":7}}`))
	}))
	defer ts.Close()

	err := NewClient(newTestBot(ts)).SetWebhook(context.Background(), "https://x/webhook", "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status code = %d, want %d", apiErr.StatusCode, http.StatusTooManyRequests)
	}
	if apiErr.RetryAfter != 7*time.Second {
		t.Fatalf("retryAfter = %v, want 7s", apiErr.RetryAfter)
	}
}

func TestSetWebhook_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: bad webhook: HTTPS url must be provided for webhook"}`))
	}))
	defer ts.Close()

	err := NewClient(newTestBot(ts)).SetWebhook(context.Background(), "http://x/webhook", "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.RetryAfter != 0 {
		t.Fatalf("retryAfter = %v, want 0", apiErr.RetryAfter)
	}
	if apiErr.Description == "" {
		t.Fatalf("description must be propagated")
	}
}

func TestSetWebhook_CanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected after cancel")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewClient(newTestBot(ts)).SetWebhook(ctx, "https://x/webhook", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClientNotConfigured(t *testing.T) {
	if err := NewClient(nil).SetWebhook(context.Background(), "https://x/webhook", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
