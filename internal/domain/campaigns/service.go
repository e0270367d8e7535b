package campaigns

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-platform/internal/pagination"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPaused       = errors.New("campaign is paused")
)

// Campos de orden soportados por el listado público.
const (
	SortByDateAdded   = "dateAdded"
	SortByMaxDonation = "maxDonation"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetName          string
	ImageURL         string
	MaxAmount        float64
	ShortDescription string
	LongDescription  string
}

func (s *Service) Create(ctx context.Context, owner Owner, in CreateInput) (Campaign, error) {
	if strings.TrimSpace(owner.Email) == "" {
		return Campaign{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.PetName) == "" {
		return Campaign{}, ErrInvalidInput
	}
	if in.MaxAmount <= 0 {
		return Campaign{}, ErrInvalidInput
	}

	now := s.now()
	c := Campaign{
		ID:               uuid.NewString(),
		PetName:          strings.TrimSpace(in.PetName),
		ImageURL:         strings.TrimSpace(in.ImageURL),
		MaxAmount:        in.MaxAmount,
		DonatedAmount:    0,
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		LongDescription:  in.LongDescription,
		Owner: Owner{
			Name:  strings.TrimSpace(owner.Name),
			Email: strings.TrimSpace(owner.Email),
		},
		Paused:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Campaign{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, params pagination.Params) ([]Campaign, int, error) {
	switch params.SortBy {
	case SortByMaxDonation:
		// ok
	default:
		params.SortBy = SortByDateAdded
	}
	return s.repo.List(ctx, params)
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Campaign, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerEmail)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	PetName          *string
	ImageURL         *string
	MaxAmount        *float64
	ShortDescription *string
	LongDescription  *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Campaign{}, ErrNotFound
	}

	if in.PetName != nil {
		name := strings.TrimSpace(*in.PetName)
		if name == "" {
			return Campaign{}, ErrInvalidInput
		}
		c.PetName = name
	}
	if in.ImageURL != nil {
		c.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.MaxAmount != nil {
		if *in.MaxAmount <= 0 {
			return Campaign{}, ErrInvalidInput
		}
		c.MaxAmount = *in.MaxAmount
	}
	if in.ShortDescription != nil {
		c.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.LongDescription != nil {
		c.LongDescription = *in.LongDescription
	}

	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

func (s *Service) SetPaused(ctx context.Context, id string, paused bool) (Campaign, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Campaign{}, ErrNotFound
	}

	c.Paused = paused
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Donate acredita una donación confirmada: incrementa el total y estampa
// la fecha. Es el ÚNICO camino que hace crecer DonatedAmount; una campaña
// pausada rechaza el crédito.
func (s *Service) Donate(ctx context.Context, id string, amount float64) (Campaign, error) {
	if amount <= 0 {
		return Campaign{}, ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Campaign{}, ErrNotFound
	}
	if c.Paused {
		return Campaign{}, ErrPaused
	}

	now := s.now()
	c.DonatedAmount += amount
	c.LastDonationDate = &now
	c.UpdatedAt = now

	if err := s.repo.Update(ctx, c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

// Refund revierte una donación borrada por el donante.
// El total nunca queda negativo aunque el registro venga corrupto.
func (s *Service) Refund(ctx context.Context, id string, amount float64) (Campaign, error) {
	if amount <= 0 {
		return Campaign{}, ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Campaign{}, ErrNotFound
	}

	c.DonatedAmount -= amount
	if c.DonatedAmount < 0 {
		c.DonatedAmount = 0
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}
