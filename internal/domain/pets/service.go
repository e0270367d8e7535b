package pets

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
)

// Campos de orden soportados por el listado público.
const (
	SortByDateAdded = "dateAdded"
	SortByPetName   = "petName"
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
	Name             string
	Age              int
	Category         string
	Location         string
	ShortDescription string
	LongDescription  string
	ImageURL         string
}

func (s *Service) Create(ctx context.Context, owner Owner, in CreateInput) (Pet, error) {
	if strings.TrimSpace(owner.Email) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	cat := Category(strings.TrimSpace(in.Category))
	if !ValidCategory(cat) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		Age:              in.Age,
		Category:         cat,
		Location:         strings.TrimSpace(in.Location),
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		LongDescription:  in.LongDescription,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		Owner: Owner{
			Name:  strings.TrimSpace(owner.Name),
			Email: strings.TrimSpace(owner.Email),
		},
		Adopted:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// List es el catálogo público paginado.
// Normaliza sortBy a un campo soportado; desconocidos caen a dateAdded.
func (s *Service) List(ctx context.Context, params pagination.Params) ([]Pet, int, error) {
	switch params.SortBy {
	case SortByPetName:
		// ok
	default:
		params.SortBy = SortByDateAdded
	}
	return s.repo.List(ctx, params)
}

func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerEmail)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name             *string
	Age              *int
	Category         *string
	Location         *string
	ShortDescription *string
	LongDescription  *string
	ImageURL         *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Category != nil {
		cat := Category(strings.TrimSpace(*in.Category))
		if !ValidCategory(cat) {
			return Pet{}, ErrInvalidInput
		}
		p.Category = cat
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.ShortDescription != nil {
		p.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.LongDescription != nil {
		p.LongDescription = *in.LongDescription
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// SetAdopted marca o desmarca la bandera de adoptado.
func (s *Service) SetAdopted(ctx context.Context, id string, adopted bool) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	p.Adopted = adopted
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
