package payments

import (
	"context"
	"errors"
	"strings"
	"time"

	gateway "pet-adoption-platform/internal/ports/payments"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
)

const currency = "usd"

type Service struct {
	repo    Repository
	gateway gateway.Gateway
	now     func() time.Time
}

func NewService(repo Repository, gw gateway.Gateway) *Service {
	return &Service{
		repo:    repo,
		gateway: gw,
		now:     time.Now,
	}
}

// CreateIntent pide al gateway un payment intent por el monto dado.
// Un monto no-positivo corta acá: el gateway nunca se entera.
func (s *Service) CreateIntent(ctx context.Context, amount float64) (gateway.Intent, error) {
	if amount <= 0 {
		return gateway.Intent{}, ErrInvalidAmount
	}
	return s.gateway.CreateIntent(ctx, amount, currency)
}

type RecordInput struct {
	CampaignID string
	PetName    string
	DonorName  string
	DonorEmail string
	Amount     float64
}

// Record persiste el registro de una donación ya acreditada.
func (s *Service) Record(ctx context.Context, in RecordInput) (Donation, error) {
	if strings.TrimSpace(in.CampaignID) == "" || in.Amount <= 0 {
		return Donation{}, ErrInvalidInput
	}

	d := Donation{
		ID:         uuid.NewString(),
		CampaignID: strings.TrimSpace(in.CampaignID),
		PetName:    strings.TrimSpace(in.PetName),
		DonorName:  strings.TrimSpace(in.DonorName),
		DonorEmail: strings.TrimSpace(in.DonorEmail),
		Amount:     in.Amount,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donation{}, err
	}
	return d, nil
}

func (s *Service) ListByDonor(ctx context.Context, donorEmail string) ([]Donation, error) {
	donorEmail = strings.TrimSpace(donorEmail)
	if donorEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByDonor(ctx, donorEmail)
}

func (s *Service) ListByCampaign(ctx context.Context, campaignID string) ([]Donation, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCampaign(ctx, campaignID)
}

// Refund borra el registro si pertenece al donante y lo devuelve para que
// el caller revierta el total de la campaña.
func (s *Service) Refund(ctx context.Context, id, donorEmail string) (Donation, error) {
	id = strings.TrimSpace(id)
	donorEmail = strings.TrimSpace(donorEmail)
	if id == "" || donorEmail == "" {
		return Donation{}, ErrInvalidInput
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Donation{}, ErrNotFound
	}
	if !strings.EqualFold(d.DonorEmail, donorEmail) {
		return Donation{}, ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return Donation{}, err
	}
	return d, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
