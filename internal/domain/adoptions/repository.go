package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, req Request) error
	GetByID(ctx context.Context, id string) (Request, error)

	ListByOwner(ctx context.Context, ownerEmail string) ([]Request, error)
	ListByPet(ctx context.Context, petID string) ([]Request, error)
}
