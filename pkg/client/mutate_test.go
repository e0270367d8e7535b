package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestMutator_SuccessInvalidatesKeys(t *testing.T) {
	cache := NewCache()
	m := NewMutator(cache)

	var petsRefetched, campaignsRefetched int32
	cache.Subscribe("pets", func(context.Context) error {
		atomic.AddInt32(&petsRefetched, 1)
		return nil
	})
	cache.Subscribe("campaigns", func(context.Context) error {
		atomic.AddInt32(&campaignsRefetched, 1)
		return nil
	})

	err := m.Do(context.Background(), "pets/create", func(context.Context) error {
		return nil
	}, "pets")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if got := atomic.LoadInt32(&petsRefetched); got != 1 {
		t.Fatalf("pets refetched %d times, want 1", got)
	}
	if got := atomic.LoadInt32(&campaignsRefetched); got != 0 {
		t.Fatalf("campaigns should not be refetched, got %d", got)
	}
}

func TestMutator_FailureSkipsInvalidation(t *testing.T) {
	cache := NewCache()
	m := NewMutator(cache)

	var refetched int32
	cache.Subscribe("pets", func(context.Context) error {
		atomic.AddInt32(&refetched, 1)
		return nil
	})

	boom := errors.New("validation failed")
	err := m.Do(context.Background(), "pets/create", func(context.Context) error {
		return boom
	}, "pets")
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutation error, got %v", err)
	}

	if got := atomic.LoadInt32(&refetched); got != 0 {
		t.Fatalf("failed mutation must not invalidate, got %d refetches", got)
	}
}

func TestMutator_DuplicateActionReturnsPending(t *testing.T) {
	m := NewMutator(NewCache())

	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- m.Do(context.Background(), "campaigns/pause", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// Misma acción en vuelo: rechazada sin ejecutar
	err := m.Do(context.Background(), "campaigns/pause", func(context.Context) error {
		t.Fatal("duplicate action must not run")
		return nil
	})
	if !errors.Is(err, ErrPending) {
		t.Fatalf("expected ErrPending, got %v", err)
	}

	// Acción distinta corre en paralelo sin problema
	if err := m.Do(context.Background(), "pets/create", func(context.Context) error {
		return nil
	}); err != nil {
		t.Fatalf("different action: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first action: %v", err)
	}

	// Terminada la primera, la acción vuelve a estar disponible
	if err := m.Do(context.Background(), "campaigns/pause", func(context.Context) error {
		return nil
	}); err != nil {
		t.Fatalf("retry after completion: %v", err)
	}
}

func TestCache_SubscribeCancelStopsRefetch(t *testing.T) {
	cache := NewCache()

	var refetched int32
	cancel := cache.Subscribe("pets", func(context.Context) error {
		atomic.AddInt32(&refetched, 1)
		return nil
	})

	if err := cache.Invalidate(context.Background(), "pets"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	cancel()
	if err := cache.Invalidate(context.Background(), "pets"); err != nil {
		t.Fatalf("Invalidate after cancel: %v", err)
	}

	if got := atomic.LoadInt32(&refetched); got != 1 {
		t.Fatalf("expected exactly 1 refetch, got %d", got)
	}
}

func TestCache_InvalidateReportsFirstErrorButRunsAll(t *testing.T) {
	cache := NewCache()

	boom := errors.New("refetch failed")
	var secondRan int32
	cache.Subscribe("a", func(context.Context) error { return boom })
	cache.Subscribe("b", func(context.Context) error {
		atomic.AddInt32(&secondRan, 1)
		return nil
	})

	err := cache.Invalidate(context.Background(), "a", "b")
	if !errors.Is(err, boom) {
		t.Fatalf("expected first refetch error, got %v", err)
	}
	if atomic.LoadInt32(&secondRan) != 1 {
		t.Fatalf("remaining subscribers must still run after an error")
	}
}
