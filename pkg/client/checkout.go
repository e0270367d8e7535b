package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// CheckoutState es el estado del flujo de confirmación de pago.
type CheckoutState string

const (
	CheckoutIdle            CheckoutState = "idle"
	CheckoutIntentRequested CheckoutState = "intent_requested"
	CheckoutReadyToPay      CheckoutState = "ready_to_pay"
	CheckoutMethodCreating  CheckoutState = "method_creating"
	CheckoutConfirming      CheckoutState = "confirming"
	CheckoutRecording       CheckoutState = "recording"
	CheckoutDone            CheckoutState = "done"
)

var (
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrNotReady          = errors.New("checkout not ready to pay")
	ErrPaymentDeclined   = errors.New("payment not succeeded")
)

// Card son los datos crudos de la tarjeta que tokeniza el procesador.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// ConfirmResult es el resultado de confirmar el intent con el procesador.
type ConfirmResult struct {
	Status string
}

// Processor abstrae al procesador de pagos del lado cliente: tokenizar la
// tarjeta y confirmar el intent con el método tokenizado.
type Processor interface {
	CreatePaymentMethod(ctx context.Context, card Card) (methodID string, err error)
	ConfirmPayment(ctx context.Context, clientSecret, methodID, billingName, billingEmail string) (ConfirmResult, error)
}

// Checkout lleva el flujo de donación de una campaña:
//
//	Idle → IntentRequested → ReadyToPay → MethodCreating → Confirming
//	     → Recording → Done
//
// Cualquier falla después de ReadyToPay vuelve a Idle descartando el
// client secret; un monto nuevo pide un intent nuevo, nunca reusa el
// secret viejo. Solo una secuencia avanza a la vez por instancia.
type Checkout struct {
	mu        sync.Mutex
	api       *Client
	processor Processor
	cache     *Cache

	campaignID string
	state      CheckoutState
	amount     float64
	secret     string
}

func NewCheckout(api *Client, processor Processor, cache *Cache, campaignID string) *Checkout {
	return &Checkout{
		api:        api,
		processor:  processor,
		cache:      cache,
		campaignID: campaignID,
		state:      CheckoutIdle,
	}
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

type intentRequest struct {
	Amount float64 `json:"amount"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// EnterAmount pide un intent por el monto ingresado. Un monto no-positivo
// se rechaza acá mismo, sin tocar la red. Reingresar un monto pide un
// intent nuevo y pisa el secret anterior.
func (c *Checkout) EnterAmount(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}

	c.mu.Lock()
	c.state = CheckoutIntentRequested
	c.amount = amount
	c.secret = ""
	c.mu.Unlock()

	var resp intentResponse
	if err := c.api.Post(ctx, "/create-payment-intent", intentRequest{Amount: amount}, &resp); err != nil {
		c.reset()
		return err
	}

	c.mu.Lock()
	c.secret = resp.ClientSecret
	c.state = CheckoutReadyToPay
	c.mu.Unlock()
	return nil
}

// ClearAmount descarta el secret del lado cliente (no cancela el intent
// en el servidor) y vuelve a Idle.
func (c *Checkout) ClearAmount() {
	c.reset()
}

type recordRequest struct {
	DonationAmount float64 `json:"donationAmount"`
	DonatorName    string  `json:"donatorName"`
	DonatorEmail   string  `json:"donatorEmail"`
}

// Pay tokeniza la tarjeta, confirma el intent y registra la donación.
// Los billing details salen del usuario firmado, con "anonymous" de
// fallback cuando faltan nombre o email.
func (c *Checkout) Pay(ctx context.Context, card Card, donorName, donorEmail string) error {
	c.mu.Lock()
	if c.state != CheckoutReadyToPay {
		c.mu.Unlock()
		return ErrNotReady
	}
	c.state = CheckoutMethodCreating
	amount := c.amount
	secret := c.secret
	c.mu.Unlock()

	if donorName == "" {
		donorName = "anonymous"
	}
	if donorEmail == "" {
		donorEmail = "anonymous"
	}

	methodID, err := c.processor.CreatePaymentMethod(ctx, card)
	if err != nil {
		c.reset()
		return err
	}

	c.mu.Lock()
	c.state = CheckoutConfirming
	c.mu.Unlock()

	result, err := c.processor.ConfirmPayment(ctx, secret, methodID, donorName, donorEmail)
	if err != nil {
		c.reset()
		return err
	}
	if result.Status != "succeeded" {
		c.reset()
		return fmt.Errorf("%w: status=%s", ErrPaymentDeclined, result.Status)
	}

	c.mu.Lock()
	c.state = CheckoutRecording
	c.mu.Unlock()

	err = c.api.Patch(ctx, "/donations/"+c.campaignID, recordRequest{
		DonationAmount: amount,
		DonatorName:    donorName,
		DonatorEmail:   donorEmail,
	}, nil)
	if err != nil {
		c.reset()
		return err
	}

	c.mu.Lock()
	c.state = CheckoutDone
	c.secret = ""
	c.mu.Unlock()

	// El detalle de la campaña se re-fetchea para mostrar el total nuevo.
	if c.cache != nil {
		_ = c.cache.Invalidate(ctx, "campaigns", "campaigns/"+c.campaignID, "me/payments")
	}
	return nil
}

func (c *Checkout) reset() {
	c.mu.Lock()
	c.state = CheckoutIdle
	c.secret = ""
	c.mu.Unlock()
}
