package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
)

// pagedFetch sirve dataset en páginas de pageSize, filtrando por Search
// como prefijo, para simular el backend.
func pagedFetch(dataset []string, pageSize int, calls *int32) FetchFunc[string] {
	return func(_ context.Context, page int, f Filter) (Page[string], error) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}

		matched := make([]string, 0)
		for _, it := range dataset {
			if f.Search == "" || strings.HasPrefix(it, f.Search) {
				matched = append(matched, it)
			}
		}

		total := (len(matched) + pageSize - 1) / pageSize
		start := page * pageSize
		end := start + pageSize
		if start > len(matched) {
			start = len(matched)
		}
		if end > len(matched) {
			end = len(matched)
		}

		return Page[string]{
			Items:       matched[start:end],
			CurrentPage: page,
			TotalPages:  total,
		}, nil
	}
}

func TestListSync_AppendsPagesInOrder(t *testing.T) {
	dataset := make([]string, 25)
	for i := range dataset {
		dataset[i] = fmt.Sprintf("item-%02d", i)
	}

	var calls int32
	s := NewListSync(pagedFetch(dataset, 10, &calls))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.LoadNext(ctx); err != nil {
			t.Fatalf("LoadNext %d: %v", i, err)
		}
	}

	items := s.Items()
	if len(items) != 25 {
		t.Fatalf("expected 25 items, got %d", len(items))
	}
	for i, it := range items {
		if want := fmt.Sprintf("item-%02d", i); it != want {
			t.Fatalf("item %d out of order: got %s want %s", i, it, want)
		}
	}
	if s.HasMore() {
		t.Fatalf("expected no more pages after 3 loads")
	}

	// Sin más páginas, LoadNext es no-op silencioso
	if err := s.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext past end: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 fetches, got %d", got)
	}
}

func TestListSync_ReentrantLoadNextIsNoOp(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	s := NewListSync(func(context.Context, int, Filter) (Page[string], error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return Page[string]{Items: []string{"a"}, CurrentPage: 0, TotalPages: 1}, nil
	})

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- s.LoadNext(ctx) }()

	// Esperar a que el primer fetch esté en vuelo
	<-started

	// Reentrada: debe retornar sin fetchear de nuevo
	if err := s.LoadNext(ctx); err != nil {
		t.Fatalf("re-entrant LoadNext: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first LoadNext: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
	if items := s.Items(); len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestListSync_FilterChangeDiscardsStaleResponse(t *testing.T) {
	staleStarted := make(chan struct{})
	release := make(chan struct{})

	s := NewListSync(func(_ context.Context, page int, f Filter) (Page[string], error) {
		if f.Search == "old" {
			close(staleStarted)
			<-release
			return Page[string]{Items: []string{"old-1", "old-2"}, CurrentPage: 0, TotalPages: 5}, nil
		}
		return Page[string]{Items: []string{"new-1"}, CurrentPage: page, TotalPages: 1}, nil
	})

	ctx := context.Background()

	// Fetch lento con el filtro viejo
	done := make(chan error, 1)
	go func() { done <- s.ChangeFilter(ctx, Filter{Search: "old"}) }()
	<-staleStarted

	// Cambio de filtro mientras el viejo sigue en vuelo
	if err := s.ChangeFilter(ctx, Filter{Search: "new"}); err != nil {
		t.Fatalf("ChangeFilter new: %v", err)
	}

	// La respuesta vieja llega tarde y debe descartarse
	close(release)
	<-done

	items := s.Items()
	if len(items) != 1 || items[0] != "new-1" {
		t.Fatalf("stale items leaked into view: %v", items)
	}
	if s.HasMore() {
		t.Fatalf("hasMore should reflect the new filter's single page")
	}
}

func TestListSync_FetchErrorIsTerminal(t *testing.T) {
	boom := errors.New("backend down")
	var calls int32

	s := NewListSync(func(context.Context, int, Filter) (Page[string], error) {
		atomic.AddInt32(&calls, 1)
		return Page[string]{}, boom
	})

	ctx := context.Background()
	if err := s.LoadNext(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if !errors.Is(s.Err(), boom) {
		t.Fatalf("expected terminal error state")
	}

	// Con error terminal no se auto-carga más
	if err := s.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext after error should no-op, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected no retry, got %d fetches", got)
	}

	// ChangeFilter limpia el error y rearranca
	if err := s.ChangeFilter(ctx, Filter{}); !errors.Is(err, boom) {
		t.Fatalf("expected refetch (and same error), got %v", err)
	}
}
