package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// checkoutBackend cuenta las llamadas al backend y guarda el último
// registro de donación recibido.
type checkoutBackend struct {
	intentCalls int32
	recordCalls int32
	lastRecord  recordRequest
}

func (b *checkoutBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/create-payment-intent":
			atomic.AddInt32(&b.intentCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"clientSecret": "pi_test_secret_123"})
		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/donations/"):
			atomic.AddInt32(&b.recordCalls, 1)
			if err := json.NewDecoder(r.Body).Decode(&b.lastRecord); err != nil {
				t.Errorf("decode record body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "don-1"})
		default:
			http.NotFound(w, r)
		}
	})
}

// fakeProcessor permite forzar fallas en tokenización o confirmación.
type fakeProcessor struct {
	methodErr     error
	confirmErr    error
	confirmStatus string

	lastSecret string
	lastName   string
	lastEmail  string
}

func (p *fakeProcessor) CreatePaymentMethod(context.Context, Card) (string, error) {
	if p.methodErr != nil {
		return "", p.methodErr
	}
	return "pm_test", nil
}

func (p *fakeProcessor) ConfirmPayment(_ context.Context, clientSecret, _, billingName, billingEmail string) (ConfirmResult, error) {
	p.lastSecret = clientSecret
	p.lastName = billingName
	p.lastEmail = billingEmail
	if p.confirmErr != nil {
		return ConfirmResult{}, p.confirmErr
	}
	status := p.confirmStatus
	if status == "" {
		status = "succeeded"
	}
	return ConfirmResult{Status: status}, nil
}

func newCheckoutFixture(t *testing.T, backend *checkoutBackend, proc Processor) (*Checkout, *Cache) {
	t.Helper()
	ts := httptest.NewServer(backend.handler(t))
	t.Cleanup(ts.Close)

	api, err := New(ts.URL, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cache := NewCache()
	return NewCheckout(api, proc, cache, "camp-1"), cache
}

func TestCheckout_RejectsNonPositiveAmountWithoutNetwork(t *testing.T) {
	backend := &checkoutBackend{}
	co, _ := newCheckoutFixture(t, backend, &fakeProcessor{})

	ctx := context.Background()
	for _, amount := range []float64{0, -5} {
		if err := co.EnterAmount(ctx, amount); !errors.Is(err, ErrAmountNotPositive) {
			t.Fatalf("amount %v: expected ErrAmountNotPositive, got %v", amount, err)
		}
	}

	if got := atomic.LoadInt32(&backend.intentCalls); got != 0 {
		t.Fatalf("invalid amount must not request an intent, got %d calls", got)
	}
	if co.State() != CheckoutIdle {
		t.Fatalf("state = %s, want idle", co.State())
	}
}

func TestCheckout_PayWithoutIntentIsNotReady(t *testing.T) {
	backend := &checkoutBackend{}
	co, _ := newCheckoutFixture(t, backend, &fakeProcessor{})

	err := co.Pay(context.Background(), Card{Number: "4242424242424242"}, "Ana", "ana@example.com")
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestCheckout_TokenizeFailureResetsToIdle(t *testing.T) {
	backend := &checkoutBackend{}
	proc := &fakeProcessor{methodErr: errors.New("card declined by tokenizer")}
	co, _ := newCheckoutFixture(t, backend, proc)

	ctx := context.Background()
	if err := co.EnterAmount(ctx, 25); err != nil {
		t.Fatalf("EnterAmount: %v", err)
	}
	if co.State() != CheckoutReadyToPay {
		t.Fatalf("state = %s, want ready_to_pay", co.State())
	}

	if err := co.Pay(ctx, Card{}, "Ana", "ana@example.com"); err == nil {
		t.Fatal("expected tokenize error")
	}

	if co.State() != CheckoutIdle {
		t.Fatalf("state after failure = %s, want idle", co.State())
	}
	if got := atomic.LoadInt32(&backend.recordCalls); got != 0 {
		t.Fatalf("failed payment must not record a donation, got %d", got)
	}

	// Tras la falla se necesita un intent nuevo, no se reusa el viejo
	if err := co.Pay(ctx, Card{}, "Ana", "ana@example.com"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady after reset, got %v", err)
	}
}

func TestCheckout_DeclinedConfirmationResetsToIdle(t *testing.T) {
	backend := &checkoutBackend{}
	proc := &fakeProcessor{confirmStatus: "requires_action"}
	co, _ := newCheckoutFixture(t, backend, proc)

	ctx := context.Background()
	if err := co.EnterAmount(ctx, 40); err != nil {
		t.Fatalf("EnterAmount: %v", err)
	}

	err := co.Pay(ctx, Card{}, "Ana", "ana@example.com")
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}
	if co.State() != CheckoutIdle {
		t.Fatalf("state = %s, want idle", co.State())
	}
	if got := atomic.LoadInt32(&backend.recordCalls); got != 0 {
		t.Fatalf("declined payment must not record a donation, got %d", got)
	}
}

func TestCheckout_FullFlowRecordsOnceAndInvalidates(t *testing.T) {
	backend := &checkoutBackend{}
	proc := &fakeProcessor{}
	co, cache := newCheckoutFixture(t, backend, proc)

	var campaignRefetched, paymentsRefetched int32
	cache.Subscribe("campaigns/camp-1", func(context.Context) error {
		atomic.AddInt32(&campaignRefetched, 1)
		return nil
	})
	cache.Subscribe("me/payments", func(context.Context) error {
		atomic.AddInt32(&paymentsRefetched, 1)
		return nil
	})

	ctx := context.Background()
	if err := co.EnterAmount(ctx, 25); err != nil {
		t.Fatalf("EnterAmount: %v", err)
	}
	if err := co.Pay(ctx, Card{Number: "4242424242424242"}, "Ana Paz", "ana@example.com"); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	if co.State() != CheckoutDone {
		t.Fatalf("state = %s, want done", co.State())
	}
	if got := atomic.LoadInt32(&backend.intentCalls); got != 1 {
		t.Fatalf("intent requested %d times, want 1", got)
	}
	if got := atomic.LoadInt32(&backend.recordCalls); got != 1 {
		t.Fatalf("donation recorded %d times, want 1", got)
	}
	if backend.lastRecord.DonationAmount != 25 {
		t.Fatalf("recorded amount = %v, want 25", backend.lastRecord.DonationAmount)
	}
	if backend.lastRecord.DonatorName != "Ana Paz" || backend.lastRecord.DonatorEmail != "ana@example.com" {
		t.Fatalf("recorded donor = %q / %q", backend.lastRecord.DonatorName, backend.lastRecord.DonatorEmail)
	}
	if proc.lastSecret != "pi_test_secret_123" {
		t.Fatalf("confirm used secret %q", proc.lastSecret)
	}
	if atomic.LoadInt32(&campaignRefetched) != 1 || atomic.LoadInt32(&paymentsRefetched) != 1 {
		t.Fatalf("expected campaign and payments views refetched once")
	}

	// El mismo checkout no re-cobra: Done no es ReadyToPay
	if err := co.Pay(ctx, Card{}, "Ana Paz", "ana@example.com"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady after done, got %v", err)
	}
}

func TestCheckout_AnonymousFallbackForMissingBilling(t *testing.T) {
	backend := &checkoutBackend{}
	proc := &fakeProcessor{}
	co, _ := newCheckoutFixture(t, backend, proc)

	ctx := context.Background()
	if err := co.EnterAmount(ctx, 10); err != nil {
		t.Fatalf("EnterAmount: %v", err)
	}
	if err := co.Pay(ctx, Card{}, "", ""); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	if proc.lastName != "anonymous" || proc.lastEmail != "anonymous" {
		t.Fatalf("processor billing = %q / %q, want anonymous fallbacks", proc.lastName, proc.lastEmail)
	}
	if backend.lastRecord.DonatorName != "anonymous" || backend.lastRecord.DonatorEmail != "anonymous" {
		t.Fatalf("recorded donor = %q / %q, want anonymous fallbacks", backend.lastRecord.DonatorName, backend.lastRecord.DonatorEmail)
	}
}
