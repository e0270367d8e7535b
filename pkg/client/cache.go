package client

import (
	"context"
	"sync"
)

// RefetchFunc recarga la vista suscripta desde el servidor.
type RefetchFunc func(ctx context.Context) error

// Cache coordina la invalidación por clave de colección: las vistas se
// suscriben a las claves de las que dependen y una mutación exitosa las
// invalida, disparando el refetch de todas las suscriptas. Las vistas
// nunca editan datos cacheados a mano; el único camino de actualización
// es invalidate-then-refetch.
type Cache struct {
	mu     sync.Mutex
	subs   map[string]map[int]RefetchFunc
	nextID int
}

func NewCache() *Cache {
	return &Cache{
		subs: make(map[string]map[int]RefetchFunc),
	}
}

// Subscribe registra un refetch para la clave y devuelve el cancel.
func (c *Cache) Subscribe(key string, refetch RefetchFunc) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subs[key] == nil {
		c.subs[key] = make(map[int]RefetchFunc)
	}
	id := c.nextID
	c.nextID++
	c.subs[key][id] = refetch

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[key], id)
	}
}

// Invalidate re-fetchea todos los suscriptores de las claves dadas. El
// primer error se reporta pero no frena al resto.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	var fns []RefetchFunc
	for _, key := range keys {
		for _, fn := range c.subs[key] {
			fns = append(fns, fn)
		}
	}
	c.mu.Unlock()

	var first error
	for _, fn := range fns {
		if err := fn(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
