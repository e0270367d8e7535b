package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newRolesFixture(t *testing.T, admins map[string]bool, calls *int32) *Roles {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		email := strings.ToLower(strings.TrimPrefix(r.URL.Path, "/users/admin/"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"admin": admins[email]})
	}))
	t.Cleanup(ts.Close)

	api, err := New(ts.URL, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return NewRoles(api)
}

func TestRoles_CachesPerEmailCaseInsensitive(t *testing.T) {
	var calls int32
	roles := newRolesFixture(t, map[string]bool{"admin@example.com": true}, &calls)

	ctx := context.Background()
	admin, err := roles.IsAdmin(ctx, "Admin@Example.com")
	if err != nil || !admin {
		t.Fatalf("IsAdmin = %v, %v", admin, err)
	}

	// El mismo email con otra capitalización sale del caché
	if _, err := roles.IsAdmin(ctx, "admin@example.com"); err != nil {
		t.Fatalf("cached IsAdmin: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 backend call, got %d", got)
	}

	// Otro email sí consulta
	if admin, err := roles.IsAdmin(ctx, "user@example.com"); err != nil || admin {
		t.Fatalf("IsAdmin(user) = %v, %v", admin, err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 backend calls, got %d", got)
	}
}

func TestRoles_ResetDropsCache(t *testing.T) {
	var calls int32
	roles := newRolesFixture(t, nil, &calls)

	ctx := context.Background()
	if _, err := roles.IsAdmin(ctx, "ana@example.com"); err != nil {
		t.Fatalf("IsAdmin: %v", err)
	}
	roles.Reset()
	if _, err := roles.IsAdmin(ctx, "ana@example.com"); err != nil {
		t.Fatalf("IsAdmin after reset: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected refetch after reset, got %d calls", got)
	}
}
