package campaigns

import "time"

// Owner identifica al dueño de la campaña.
type Owner struct {
	Name  string
	Email string
}

// Campaign representa una campaña de donación asociada a una mascota.
// DonatedAmount solo crece por el camino de confirmación de pago y solo
// baja por un refund; ningún otro caller la toca.
type Campaign struct {
	ID string

	PetName  string
	ImageURL string

	MaxAmount        float64
	DonatedAmount    float64
	LastDonationDate *time.Time

	ShortDescription string
	LongDescription  string

	Owner  Owner
	Paused bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
