package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 9
	MaxLimit     = 50
)

// Params son los parámetros de listado que comparten todos los catálogos:
// página cero-based, búsqueda por texto, categoría y orden.
type Params struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	SortBy    string
	SortOrder string
}

// FromQuery parsea los query params de un listado.
// Valores inválidos caen a defaults en vez de fallar: un catálogo público
// no debería romperse por un page=abc.
func FromQuery(q url.Values) Params {
	p := Params{
		Limit:     DefaultLimit,
		Search:    strings.TrimSpace(q.Get("search")),
		Category:  strings.TrimSpace(q.Get("category")),
		SortBy:    strings.TrimSpace(q.Get("sortBy")),
		SortOrder: normalizeOrder(q.Get("sortOrder")),
	}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		if v > MaxLimit {
			v = MaxLimit
		}
		p.Limit = v
	}

	return p
}

func (p Params) Offset() int {
	return p.Page * p.Limit
}

func normalizeOrder(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return "asc"
	}
	return "desc"
}

// Result es el envelope que consume el sincronizador de listas del cliente.
type Result[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// NewResult arma el envelope a partir del total de filas.
// totalPages = ceil(total/limit); una lista vacía reporta 0 páginas.
func NewResult[T any](items []T, page, limit, total int) Result[T] {
	if items == nil {
		items = make([]T, 0)
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Result[T]{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}
