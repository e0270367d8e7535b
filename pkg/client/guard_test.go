package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// guardBackend sirve /me y el endpoint de rol, con control sobre si el
// rol se puede resolver.
type guardBackend struct {
	admins   map[string]bool
	roleDown bool
}

func (b *guardBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/me":
			_ = json.NewEncoder(w).Encode(User{ID: "u-1", Name: "Ana", Email: "ana@example.com"})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/users/admin/"):
			if b.roleDown {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal"})
				return
			}
			email := strings.TrimPrefix(r.URL.Path, "/users/admin/")
			_ = json.NewEncoder(w).Encode(map[string]bool{"admin": b.admins[strings.ToLower(email)]})
		default:
			http.NotFound(w, r)
		}
	})
}

// newGuardFixture arma sesión + roles + guard contra el backend dado,
// con la sesión ya firmada (o anónima con token "").
func newGuardFixture(t *testing.T, b *guardBackend, token string) *Guard {
	t.Helper()
	ts := httptest.NewServer(b.handler())
	t.Cleanup(ts.Close)

	store := NewMemoryStore()
	if token != "" {
		if err := store.SaveToken(token); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}
	}
	sess, err := NewSession(ts.URL, store, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := sess.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return NewGuard(sess, NewRoles(sess.API()))
}

func TestGuard_PendingBeforeSessionResolves(t *testing.T) {
	sess, err := NewSession("http://localhost:0", NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	g := NewGuard(sess, NewRoles(sess.API()))

	ctx := context.Background()
	if d := g.Protected(ctx, "/dashboard"); d.State != GuardPending {
		t.Fatalf("Protected before restore = %s, want pending", d.State)
	}
	if d := g.Admin(ctx, "/admin", false); d.State != GuardPending {
		t.Fatalf("Admin before restore = %s, want pending", d.State)
	}
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	g := newGuardFixture(t, &guardBackend{}, "")

	d := g.Protected(context.Background(), "/pets/new")
	if d.State != GuardRedirectLogin {
		t.Fatalf("state = %s, want redirect_login", d.State)
	}
	if d.RedirectTo != "/login" || d.From != "/pets/new" {
		t.Fatalf("redirect = %q from %q", d.RedirectTo, d.From)
	}
}

func TestGuard_AllowsSignedInUserOnProtected(t *testing.T) {
	g := newGuardFixture(t, &guardBackend{}, "tok-1")

	if d := g.Protected(context.Background(), "/dashboard"); d.State != GuardAllow {
		t.Fatalf("state = %s, want allow", d.State)
	}
}

func TestGuard_AdminSendsNonAdminHomeWithOneShotNotice(t *testing.T) {
	g := newGuardFixture(t, &guardBackend{admins: map[string]bool{}}, "tok-1")

	ctx := context.Background()
	d := g.Admin(ctx, "/admin/users", false)
	if d.State != GuardRedirectHome {
		t.Fatalf("state = %s, want redirect_home", d.State)
	}
	if d.RedirectTo != "/dashboard" || d.From != "/admin/users" {
		t.Fatalf("redirect = %q from %q", d.RedirectTo, d.From)
	}
	if d.Notice == "" {
		t.Fatal("first evaluation must carry the forbidden notice")
	}

	// Re-entrada por el propio redirect: sin aviso, evitando el loop
	d = g.Admin(ctx, "/admin/users", true)
	if d.State != GuardRedirectHome || d.Notice != "" {
		t.Fatalf("re-entry = %s notice %q, want redirect without notice", d.State, d.Notice)
	}
}

func TestGuard_AdminAllowsAdminUser(t *testing.T) {
	g := newGuardFixture(t, &guardBackend{admins: map[string]bool{"ana@example.com": true}}, "tok-1")

	if d := g.Admin(context.Background(), "/admin/users", false); d.State != GuardAllow {
		t.Fatalf("state = %s, want allow", d.State)
	}
}

func TestGuard_AdminPendsWhenRoleUnresolvable(t *testing.T) {
	g := newGuardFixture(t, &guardBackend{roleDown: true}, "tok-1")

	// Rol irresoluble: jamás Allow, tampoco un redirect en falso
	if d := g.Admin(context.Background(), "/admin/users", false); d.State != GuardPending {
		t.Fatalf("state = %s, want pending", d.State)
	}
}
