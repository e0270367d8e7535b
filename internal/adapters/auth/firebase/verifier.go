// Package firebase verifica ID tokens emitidos por Firebase Authentication.
package firebase

import (
	"context"
	"fmt"

	"pet-adoption-platform/internal/ports/auth"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type Verifier struct {
	client *fbauth.Client
}

// New inicializa el admin SDK. credentialsFile puede ser vacío: en ese caso
// el SDK usa Application Default Credentials.
func New(ctx context.Context, credentialsFile string) (*Verifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &Verifier{client: client}, nil
}

// VerifyIDToken valida el ID token contra Firebase y extrae uid, email y name.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (auth.Claims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("invalid firebase token: %w", err)
	}

	claims := auth.Claims{UserID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		claims.Name = name
	}

	return claims, nil
}
