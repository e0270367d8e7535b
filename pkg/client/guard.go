package client

import "context"

// GuardState es el veredicto de un guard de ruta.
type GuardState string

const (
	// GuardPending: la sesión o el rol todavía se están resolviendo; la
	// vista muestra un placeholder, nunca un redirect (evita el
	// flash-redirect al refrescar la página).
	GuardPending       GuardState = "pending"
	GuardAllow         GuardState = "allow"
	GuardRedirectLogin GuardState = "redirect_login"
	GuardRedirectHome  GuardState = "redirect_home"
)

// Decision es el resultado de evaluar un guard sobre una ubicación.
type Decision struct {
	State      GuardState
	RedirectTo string
	// From preserva la ubicación pedida para volver después del login.
	From string
	// Notice es el aviso one-shot de "forbidden"; vacío cuando el guard
	// se re-evalúa en la entrada del propio redirect.
	Notice string
}

const (
	loginRoute     = "/login"
	dashboardRoute = "/dashboard"
	forbiddenText  = "forbidden: admin access required"
)

// Guard decide el acceso a rutas protegidas con la sesión y el resolver
// de roles.
type Guard struct {
	session *Session
	roles   *Roles
}

func NewGuard(session *Session, roles *Roles) *Guard {
	return &Guard{session: session, roles: roles}
}

// Protected gatea una ruta que solo requiere sesión.
func (g *Guard) Protected(_ context.Context, location string) Decision {
	if !g.session.Resolved() {
		return Decision{State: GuardPending}
	}
	if !g.session.SignedIn() {
		return Decision{State: GuardRedirectLogin, RedirectTo: loginRoute, From: location}
	}
	return Decision{State: GuardAllow}
}

// Admin gatea una ruta que además exige rol admin. fromRedirect marca la
// re-entrada causada por el propio redirect del guard: ahí el aviso se
// suprime para no repetirlo en loop.
func (g *Guard) Admin(ctx context.Context, location string, fromRedirect bool) Decision {
	if !g.session.Resolved() {
		return Decision{State: GuardPending}
	}
	if !g.session.SignedIn() {
		return Decision{State: GuardRedirectLogin, RedirectTo: loginRoute, From: location}
	}

	u := g.session.CurrentUser()
	email := ""
	if u != nil {
		email = u.Email
	}

	admin, err := g.roles.IsAdmin(ctx, email)
	if err != nil {
		// Rol sin resolver: placeholder, no un redirect en falso.
		return Decision{State: GuardPending}
	}
	if admin {
		return Decision{State: GuardAllow}
	}

	d := Decision{State: GuardRedirectHome, RedirectTo: dashboardRoute, From: location}
	if !fromRedirect {
		d.Notice = forbiddenText
	}
	return d
}
