package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateIntent_SendsAmountInCents(t *testing.T) {
	var gotAuth, gotAmount, gotCurrency string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":2550,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer ts.Close()

	c := NewClient(Config{SecretKey: "sk_test_123", BaseURL: ts.URL})

	intent, err := c.CreateIntent(context.Background(), 25.50, "usd")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}

	if gotAuth != "Bearer sk_test_123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotAmount != "2550" || gotCurrency != "usd" {
		t.Fatalf("form = amount %q currency %q", gotAmount, gotCurrency)
	}
	if intent.ClientSecret != "pi_123_secret_abc" {
		t.Fatalf("client secret = %q", intent.ClientSecret)
	}
	if intent.Amount != 25.50 {
		t.Fatalf("amount back in major units = %v", intent.Amount)
	}
}

func TestCreateIntent_SurfacesStripeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer ts.Close()

	c := NewClient(Config{SecretKey: "sk_test_123", BaseURL: ts.URL})

	_, err := c.CreateIntent(context.Background(), 10, "usd")
	if !errors.Is(err, ErrStripeUpstream) {
		t.Fatalf("expected ErrStripeUpstream, got %v", err)
	}
}

func TestCreateIntent_WithoutSecretKey(t *testing.T) {
	c := NewClient(Config{})

	if _, err := c.CreateIntent(context.Background(), 10, "usd"); !errors.Is(err, ErrStripeNotConfigured) {
		t.Fatalf("expected ErrStripeNotConfigured, got %v", err)
	}
}
