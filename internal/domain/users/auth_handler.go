package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-adoption-platform/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes monta el exchange de tokens y las cuentas locales.
//   - /auth/jwt: el cliente ya se autenticó contra el identity provider y
//     cambia su email (+ idToken verificable) por un token de backend.
//   - /auth/register + /auth/login: modo credenciales locales (bcrypt),
//     útil cuando no hay provider configurado.
func RegisterAuthRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, provider auth.ProviderVerifier) {
	r.Post("/auth/jwt", exchangeJWTHandler(svc, issuer, provider))
	r.Post("/auth/register", registerHandler(svc, issuer))
	r.Post("/auth/login", loginHandler(svc, issuer))
}

type jwtRequest struct {
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type tokenResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photoURL"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func exchangeJWTHandler(svc *Service, issuer auth.TokenIssuer, provider auth.ProviderVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jwtRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			http.Error(w, "email required", http.StatusBadRequest)
			return
		}

		claims := auth.Claims{Email: email}

		// Con provider configurado el idToken es obligatorio y tiene que
		// pertenecer al mismo email. Sin provider (modo dev) se confía en
		// el email, igual que el modo sin verifier del middleware.
		if provider != nil {
			verified, err := provider.VerifyIDToken(r.Context(), req.IDToken)
			if err != nil {
				http.Error(w, "invalid identity token", http.StatusUnauthorized)
				return
			}
			if !strings.EqualFold(verified.Email, email) {
				http.Error(w, "token does not match email", http.StatusUnauthorized)
				return
			}
			claims = verified
		}

		if u, err := svc.GetByEmail(r.Context(), email); err == nil {
			claims.UserID = u.ID
			claims.Name = u.Name
		}

		token, err := issuer.Issue(r.Context(), claims)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}

func registerHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			PhotoURL: req.PhotoURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		token, err := issuer.Issue(r.Context(), auth.Claims{UserID: u.ID, Email: u.Email, Name: u.Name})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := toUserResponse(u)
		writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: &resp})
	}
}

func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := issuer.Issue(r.Context(), auth.Claims{UserID: u.ID, Email: u.Email, Name: u.Name})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := toUserResponse(u)
		writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: &resp})
	}
}
