package client

import (
	"context"
	"errors"
	"sync"
)

// ErrPending indica que la misma acción ya tiene una mutación en vuelo
// (doble click); el llamador la ignora sin reportar nada.
var ErrPending = errors.New("mutation already pending")

// Mutator ejecuta mutaciones con garantía at-most-once por acción y, si la
// mutación termina bien, invalida las claves de caché dependientes para
// que las vistas re-fetcheen. Ante error no se invalida nada y no se
// reintenta: el usuario vuelve a disparar la acción.
//
// El lock es por acción, no global: editar la mascota A y borrar la B
// pueden estar en vuelo a la vez.
type Mutator struct {
	mu      sync.Mutex
	cache   *Cache
	pending map[string]bool
}

func NewMutator(cache *Cache) *Mutator {
	return &Mutator{
		cache:   cache,
		pending: make(map[string]bool),
	}
}

// Do ejecuta fn bajo la clave de acción dada e invalida las claves al
// terminar con éxito.
func (m *Mutator) Do(ctx context.Context, action string, fn func(ctx context.Context) error, invalidate ...string) error {
	m.mu.Lock()
	if m.pending[action] {
		m.mu.Unlock()
		return ErrPending
	}
	m.pending[action] = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, action)
		m.mu.Unlock()
	}()

	if err := fn(ctx); err != nil {
		return err
	}

	if m.cache != nil && len(invalidate) > 0 {
		return m.cache.Invalidate(ctx, invalidate...)
	}
	return nil
}
