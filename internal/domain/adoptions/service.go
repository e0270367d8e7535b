package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
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
	PetID      string
	PetName    string
	OwnerEmail string

	RequesterName  string
	RequesterEmail string
	Phone          string
	Address        string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Request, error) {
	petID := strings.TrimSpace(in.PetID)
	requester := strings.TrimSpace(in.RequesterEmail)
	owner := strings.TrimSpace(in.OwnerEmail)

	if petID == "" || requester == "" || owner == "" {
		return Request{}, ErrInvalidInput
	}
	if strings.EqualFold(requester, owner) {
		// No podés solicitar tu propia mascota.
		return Request{}, ErrInvalidInput
	}

	// Dedup: una pending por (pet, requester). Re-enviar devuelve la
	// existente en vez de duplicar.
	existing, err := s.repo.ListByPet(ctx, petID)
	if err == nil {
		for _, r := range existing {
			if strings.EqualFold(r.RequesterEmail, requester) && r.Status == StatusPending {
				return r, nil
			}
		}
	}

	now := s.now()
	req := Request{
		ID:             uuid.NewString(),
		PetID:          petID,
		PetName:        strings.TrimSpace(in.PetName),
		OwnerEmail:     owner,
		RequesterName:  strings.TrimSpace(in.RequesterName),
		RequesterEmail: requester,
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	req, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Request, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerEmail)
}

// Accept transiciona la solicitud a accepted y rechaza el resto de las
// pending de la misma mascota: una vez adoptada, ninguna otra solicitud
// puede aceptarse.
func (s *Service) Accept(ctx context.Context, id, ownerEmail string) (Request, error) {
	req, err := s.authorizeTransition(ctx, id, ownerEmail)
	if err != nil {
		return Request{}, err
	}

	if req.Status == StatusAccepted {
		return req, nil // idempotente
	}
	if req.Status != StatusPending {
		return Request{}, ErrBadState
	}

	now := s.now()
	req.Status = StatusAccepted
	req.UpdatedAt = now

	if err := s.repo.Update(ctx, req); err != nil {
		return Request{}, err
	}

	// Void de las demás pending de la mascota (best-effort).
	others, err := s.repo.ListByPet(ctx, req.PetID)
	if err == nil {
		for _, other := range others {
			if other.ID == req.ID || other.Status != StatusPending {
				continue
			}
			other.Status = StatusRejected
			other.UpdatedAt = now
			_ = s.repo.Update(ctx, other)
		}
	}

	return req, nil
}

func (s *Service) Reject(ctx context.Context, id, ownerEmail string) (Request, error) {
	req, err := s.authorizeTransition(ctx, id, ownerEmail)
	if err != nil {
		return Request{}, err
	}

	if req.Status == StatusRejected {
		return req, nil // idempotente
	}
	if req.Status != StatusPending {
		return Request{}, ErrBadState
	}

	req.Status = StatusRejected
	req.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) authorizeTransition(ctx context.Context, id, ownerEmail string) (Request, error) {
	id = strings.TrimSpace(id)
	ownerEmail = strings.TrimSpace(ownerEmail)
	if id == "" || ownerEmail == "" {
		return Request{}, ErrInvalidInput
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Request{}, ErrNotFound
	}
	if !strings.EqualFold(req.OwnerEmail, ownerEmail) {
		return Request{}, ErrForbidden
	}
	return req, nil
}
