package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// Filter son los parámetros activos de una lista paginada.
type Filter struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string
}

// Query arma el query string que esperan los endpoints de listado.
func (f Filter) Query(page int) string {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	return q.Encode()
}

// Page es el envelope de paginación del backend.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// FetchFunc trae una página (índice en base cero) para el filtro dado.
type FetchFunc[T any] func(ctx context.Context, page int, f Filter) (Page[T], error)

// ListSync presenta una colección paginada como una secuencia plana que
// crece de a una página. Reglas:
//   - LoadNext es no-op si hay un fetch en vuelo, no quedan páginas, o la
//     lista ya está en error.
//   - ChangeFilter descarta todo y rearranca en la página cero; una
//     respuesta de un filtro anterior que llegue después se descarta en vez
//     de mezclarse (generación).
//   - Un error de fetch es terminal para la lista: se corta el auto-load
//     hasta el próximo ChangeFilter.
type ListSync[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]

	filter   Filter
	items    []T
	nextPage int
	hasMore  bool
	err      error

	gen      int
	fetching bool
}

func NewListSync[T any](fetch FetchFunc[T]) *ListSync[T] {
	return &ListSync[T]{
		fetch:   fetch,
		hasMore: true,
	}
}

// LoadNext pide la página siguiente y la appendea al final, preservando el
// orden del servidor. Silencioso cuando no corresponde cargar.
func (s *ListSync[T]) LoadNext(ctx context.Context) error {
	s.mu.Lock()
	if s.err != nil || !s.hasMore || s.fetching {
		s.mu.Unlock()
		return nil
	}
	s.fetching = true
	gen := s.gen
	page := s.nextPage
	f := s.filter
	s.mu.Unlock()

	p, err := s.fetch(ctx, page, f)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Respuesta de una generación superada: descartar sin tocar nada.
	// El estado de la generación nueva ya fue reseteado por ChangeFilter.
	if gen != s.gen {
		return nil
	}

	s.fetching = false
	if err != nil {
		s.err = err
		return err
	}

	s.items = append(s.items, p.Items...)
	s.nextPage = p.CurrentPage + 1
	s.hasMore = p.CurrentPage+1 < p.TotalPages
	return nil
}

// ChangeFilter resetea la lista a la primera página del filtro nuevo.
func (s *ListSync[T]) ChangeFilter(ctx context.Context, f Filter) error {
	s.mu.Lock()
	s.gen++
	s.filter = f
	s.items = nil
	s.nextPage = 0
	s.hasMore = true
	s.err = nil
	s.fetching = false
	s.mu.Unlock()

	return s.LoadNext(ctx)
}

// Refresh re-fetchea desde cero con el filtro actual (tras una invalidación).
func (s *ListSync[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()
	return s.ChangeFilter(ctx, f)
}

// Items devuelve una copia de la vista aplanada.
func (s *ListSync[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ListSync[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

func (s *ListSync[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ListSync[T]) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}
