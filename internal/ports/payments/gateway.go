package payments

import "context"

// Intent es el payment intent que el gateway emite para un monto dado.
// El client secret viaja al navegador; el resto queda para auditoría.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       float64
	Currency     string
	Status       string
}

// Gateway abstrae al procesador de pagos (Stripe en producción).
type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (Intent, error)
}
