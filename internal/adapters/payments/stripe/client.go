// Package stripe implementa el gateway de pagos contra la API REST de Stripe.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-adoption-platform/internal/ports/payments"
)

var (
	ErrStripeNotConfigured = errors.New("stripe client not configured")
	ErrStripeUpstream      = errors.New("stripe upstream error")
)

const defaultBaseURL = "https://api.stripe.com"

// Config del cliente Stripe. SecretKey viene de STRIPE_SECRET_KEY.
type Config struct {
	SecretKey string

	// Opcional: para apuntar a stripe-mock en tests.
	BaseURL string

	// Timeout HTTP (si está en cero, 10s).
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:   base,
		secretKey: strings.TrimSpace(cfg.SecretKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.secretKey != ""
}

type intentPayload struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type errorPayload struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent crea un payment intent por el monto dado.
// Stripe cobra en la unidad mínima de la moneda, así que el monto viaja en centavos.
func (c *Client) CreateIntent(ctx context.Context, amount float64, currency string) (payments.Intent, error) {
	if !c.IsConfigured() {
		return payments.Intent{}, ErrStripeNotConfigured
	}

	cents := int64(math.Round(amount * 100))

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(cents, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return payments.Intent{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return payments.Intent{}, fmt.Errorf("%w: %v", ErrStripeUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return payments.Intent{}, fmt.Errorf("%w: read body: %v", ErrStripeUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ep errorPayload
		if err := json.Unmarshal(body, &ep); err == nil && ep.Error.Message != "" {
			return payments.Intent{}, fmt.Errorf("%w: %s: %s", ErrStripeUpstream, ep.Error.Type, ep.Error.Message)
		}
		return payments.Intent{}, fmt.Errorf("%w: status %d", ErrStripeUpstream, resp.StatusCode)
	}

	var p intentPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return payments.Intent{}, fmt.Errorf("%w: decode: %v", ErrStripeUpstream, err)
	}

	return payments.Intent{
		ID:           p.ID,
		ClientSecret: p.ClientSecret,
		Amount:       float64(p.Amount) / 100,
		Currency:     p.Currency,
		Status:       p.Status,
	}, nil
}
