package auth

import "context"

// AuthVerifier verifica un token de backend y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite el token de backend que autoriza requests protegidos.
type TokenIssuer interface {
	Issue(ctx context.Context, c Claims) (string, error)
}

// ProviderVerifier verifica un ID token del proveedor de identidad externo
// (Firebase en producción) durante el exchange de /auth/jwt.
type ProviderVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (Claims, error)
}
