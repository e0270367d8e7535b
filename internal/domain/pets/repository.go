package pets

import (
	"context"

	"pet-adoption-platform/internal/pagination"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Delete(ctx context.Context, id string) error

	// List aplica search/category/sort y pagina; devuelve el total de filas
	// que matchean (sin paginar) para calcular totalPages.
	List(ctx context.Context, params pagination.Params) ([]Pet, int, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error)
}
