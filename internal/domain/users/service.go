package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

const bcryptCost = 12

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type UpsertInput struct {
	Name     string
	Email    string
	PhotoURL string
}

// Upsert registra el perfil en el primer login de un provider social.
// Si ya existe, refresca nombre/foto y no toca rol ni credenciales.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return User{}, ErrInvalidInput
	}

	now := s.now()

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil {
		if strings.TrimSpace(in.Name) != "" {
			existing.Name = strings.TrimSpace(in.Name)
		}
		if strings.TrimSpace(in.PhotoURL) != "" {
			existing.PhotoURL = strings.TrimSpace(in.PhotoURL)
		}
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return User{}, err
		}
		return existing, nil
	}

	u := User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	PhotoURL string
}

// Register crea una cuenta local con password bcrypt (modo credenciales).
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Name) == "" {
		return User{}, ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		Role:         RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate valida credenciales locales.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if u.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// IsAdmin resuelve el rol para los gates de rutas protegidas.
// Cualquier error (usuario inexistente incluido) resuelve a false.
func (s *Service) IsAdmin(ctx context.Context, email string) bool {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false
	}
	return u.Role == RoleAdmin
}

// Promote eleva el rol a admin. La elevación es monotónica: no hay
// operación inversa.
func (s *Service) Promote(ctx context.Context, userID string) (User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, ErrNotFound
	}

	if u.Role == RoleAdmin {
		return u, nil // idempotente
	}

	u.Role = RoleAdmin
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// EnsureAdmin crea (si hace falta) y promueve la cuenta. Pensado para el
// bootstrap por env var en el arranque; no se expone por HTTP.
func (s *Service) EnsureAdmin(ctx context.Context, email string) error {
	u, err := s.Upsert(ctx, UpsertInput{Email: email})
	if err != nil {
		return err
	}
	_, err = s.Promote(ctx, u.ID)
	return err
}

type ProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	PhotoURL *string
	Phone    *string
	Address  *string
}

func (s *Service) UpdateProfile(ctx context.Context, email string, in ProfileInput) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return User{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return User{}, ErrInvalidInput
		}
		u.Name = name
	}
	if in.PhotoURL != nil {
		u.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}

	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
