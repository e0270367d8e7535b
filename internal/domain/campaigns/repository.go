package campaigns

import (
	"context"

	"pet-adoption-platform/internal/pagination"
)

type Repository interface {
	Create(ctx context.Context, c Campaign) error
	Update(ctx context.Context, c Campaign) error
	GetByID(ctx context.Context, id string) (Campaign, error)
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, params pagination.Params) ([]Campaign, int, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Campaign, error)
}
