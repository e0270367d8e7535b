// Package hmactoken emite y verifica tokens JWT firmados con HS256.
// Implementa auth.TokenIssuer y auth.AuthVerifier sobre el mismo signing key.
package hmactoken

import (
	"context"
	"fmt"
	"time"

	"pet-adoption-platform/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = time.Hour

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func New(signingKey string, issuer string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        defaultTTL,
		now:        time.Now,
	}
}

// Issue firma un token para el usuario autenticado.
func (s *Service) Issue(_ context.Context, c auth.Claims) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Email: c.Email,
		Name:  c.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// Verify valida firma y expiración, y devuelve las claims de dominio.
func (s *Service) Verify(_ context.Context, tokenString string) (auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return auth.Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return auth.Claims{}, fmt.Errorf("invalid token")
	}

	return auth.Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
