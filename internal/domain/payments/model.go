package payments

import "time"

// Donation es el registro de una donación confirmada contra una campaña.
// Se crea únicamente en el success path de la confirmación de pago y el
// donante puede borrarlo (refund).
type Donation struct {
	ID string

	CampaignID string
	PetName    string

	DonorName  string
	DonorEmail string

	Amount float64

	CreatedAt time.Time
}
