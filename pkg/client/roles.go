package client

import (
	"context"
	"strings"
	"sync"
)

// Roles resuelve si un principal tiene rol admin preguntándole al backend,
// cacheado por email para no repetir la consulta en cada guard.
type Roles struct {
	mu    sync.Mutex
	api   *Client
	cache map[string]bool
}

func NewRoles(api *Client) *Roles {
	return &Roles{
		api:   api,
		cache: make(map[string]bool),
	}
}

type isAdminResponse struct {
	Admin bool `json:"admin"`
}

// IsAdmin consulta GET /users/admin/{email}. Ante error responde false:
// un guard nunca debe dejar pasar por una falla de red.
func (r *Roles) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}

	r.mu.Lock()
	if admin, ok := r.cache[email]; ok {
		r.mu.Unlock()
		return admin, nil
	}
	r.mu.Unlock()

	var resp isAdminResponse
	if err := r.api.Get(ctx, "/users/admin/"+email, &resp); err != nil {
		return false, err
	}

	r.mu.Lock()
	r.cache[email] = resp.Admin
	r.mu.Unlock()

	return resp.Admin, nil
}

// Reset descarta el cache (tras sign-out o promoción de rol).
func (r *Roles) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]bool)
	r.mu.Unlock()
}
