package client

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ProviderUser es el principal devuelto por el identity provider tras un
// sign-in/sign-up exitoso. IDToken viaja al backend en el exchange.
type ProviderUser struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
	IDToken  string
}

// IdentityProvider abstrae al proveedor de identidad (Firebase,
// identitytoolkit, etc). Nil = modo credenciales locales contra el backend.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (ProviderUser, error)
	SignIn(ctx context.Context, email, password string) (ProviderUser, error)
	SignOut(ctx context.Context) error
}

// User es el perfil que el backend conoce del principal actual.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Session es el estado de autenticación del proceso: token persistido,
// perfil actual y flag de resolución (para que los guards no redirijan
// antes de terminar el restore).
type Session struct {
	mu       sync.Mutex
	store    Store
	provider IdentityProvider
	api      *Client

	token    string
	user     *User
	resolved bool
}

func NewSession(baseURL string, store Store, provider IdentityProvider) (*Session, error) {
	if store == nil {
		return nil, errors.New("store required")
	}
	s := &Session{store: store, provider: provider}
	api, err := New(baseURL, s)
	if err != nil {
		return nil, err
	}
	s.api = api
	return s, nil
}

// API expone el cliente HTTP ya atado al token de esta sesión.
func (s *Session) API() *Client {
	return s.api
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Resolved indica si el restore inicial ya terminó.
func (s *Session) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

// CurrentUser devuelve una copia del perfil, o nil si no hay sesión.
func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignedIn indica si hay un principal autenticado.
func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Restore levanta el token persistido y recarga el perfil. Si el token ya
// no sirve (401) lo descarta en vez de dejar la sesión a medias. Marca la
// sesión como resuelta siempre, incluso ante error.
func (s *Session) Restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.resolved = true
		s.mu.Unlock()
	}()

	token, err := s.store.LoadToken()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	var u User
	if err := s.api.Get(ctx, "/me", &u); err != nil {
		if code := StatusCode(err); code == 401 || code == 404 {
			s.mu.Lock()
			s.token = ""
			s.user = nil
			s.mu.Unlock()
			_ = s.store.ClearToken()
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return nil
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photoURL"`
}

type upsertRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type exchangeRequest struct {
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type tokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// SignUp crea la cuenta. Con provider: alta en el provider, registro del
// perfil en el backend y exchange del token. Sin provider: registro local
// con password (bcrypt del lado del servidor).
func (s *Session) SignUp(ctx context.Context, name, email, password, photoURL string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.provider == nil {
		var resp tokenResponse
		err := s.api.Post(ctx, "/auth/register", signUpRequest{
			Name:     name,
			Email:    email,
			Password: password,
			PhotoURL: photoURL,
		}, &resp)
		if err != nil {
			return err
		}
		return s.adopt(resp)
	}

	pu, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	if name != "" {
		pu.Name = name
	}
	if photoURL != "" {
		pu.PhotoURL = photoURL
	}
	return s.completeProviderSignIn(ctx, pu)
}

// SignIn autentica contra el provider (o el backend en modo local) y deja
// la sesión lista: token guardado y perfil cargado.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.provider == nil {
		var resp tokenResponse
		err := s.api.Post(ctx, "/auth/login", credentialsRequest{
			Email:    email,
			Password: password,
		}, &resp)
		if err != nil {
			return err
		}
		return s.adopt(resp)
	}

	pu, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	return s.completeProviderSignIn(ctx, pu)
}

// SignInWithProviderUser completa el login social cuando el sign-in ocurrió
// fuera de esta sesión (popup/redirect del provider).
func (s *Session) SignInWithProviderUser(ctx context.Context, pu ProviderUser) error {
	return s.completeProviderSignIn(ctx, pu)
}

func (s *Session) completeProviderSignIn(ctx context.Context, pu ProviderUser) error {
	// El upsert del perfil va antes del exchange: el backend crea la
	// cuenta en el primer login.
	var u User
	if err := s.api.Post(ctx, "/users", upsertRequest{
		Name:     pu.Name,
		Email:    pu.Email,
		PhotoURL: pu.PhotoURL,
	}, &u); err != nil {
		return err
	}

	var resp tokenResponse
	if err := s.api.Post(ctx, "/auth/jwt", exchangeRequest{
		Email:   pu.Email,
		IDToken: pu.IDToken,
	}, &resp); err != nil {
		return err
	}
	if resp.User == nil {
		resp.User = &u
	}
	return s.adopt(resp)
}

func (s *Session) adopt(resp tokenResponse) error {
	if resp.Token == "" {
		return errors.New("backend returned empty token")
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	s.resolved = true
	s.mu.Unlock()

	return s.store.SaveToken(resp.Token)
}

// SignOut limpia el token ANTES de avisarle al provider: ningún request
// posterior puede salir con el token viejo aunque el sign-out remoto tarde
// o falle.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.ClearToken(); err != nil {
		return err
	}

	if s.provider != nil {
		return s.provider.SignOut(ctx)
	}
	return nil
}

// Theme devuelve la preferencia persistida ("" = default).
func (s *Session) Theme() string {
	t, _ := s.store.LoadTheme()
	return t
}

func (s *Session) SetTheme(theme string) error {
	return s.store.SaveTheme(theme)
}
