// Package memory es un gateway de pagos en memoria para dev y tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"pet-adoption-platform/internal/ports/payments"

	"github.com/google/uuid"
)

type Gateway struct {
	mu      sync.Mutex
	intents map[string]payments.Intent
}

func NewGateway() *Gateway {
	return &Gateway{intents: make(map[string]payments.Intent)}
}

func (g *Gateway) CreateIntent(_ context.Context, amount float64, currency string) (payments.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := "pi_" + uuid.NewString()
	intent := payments.Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%s", id, uuid.NewString()),
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}
	g.intents[id] = intent
	return intent, nil
}

// Intent devuelve un intent emitido, para aserciones en tests.
func (g *Gateway) Intent(id string) (payments.Intent, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, ok := g.intents[id]
	return i, ok
}
