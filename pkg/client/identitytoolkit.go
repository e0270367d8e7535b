package client

import (
	"context"
	"errors"
	"strings"

	"pet-adoption-platform/internal/platform/httpclient"
)

const identityToolkitBaseURL = "https://identitytoolkit.googleapis.com"

// IdentityToolkitProvider habla con la API REST de Google Identity Toolkit
// (el backend de Firebase Auth para email/password). El idToken que
// devuelve es el que el backend verifica en /auth/jwt.
type IdentityToolkitProvider struct {
	apiKey string
	http   *httpclient.Client
}

func NewIdentityToolkitProvider(apiKey string) (*IdentityToolkitProvider, error) {
	return newIdentityToolkitProvider(apiKey, identityToolkitBaseURL)
}

// newIdentityToolkitProvider permite apuntar al emulador en tests.
func newIdentityToolkitProvider(apiKey, baseURL string) (*IdentityToolkitProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("identitytoolkit api key required")
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &IdentityToolkitProvider{apiKey: apiKey, http: hc}, nil
}

type identityRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identityResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
	IDToken     string `json:"idToken"`
}

func (p *IdentityToolkitProvider) SignUp(ctx context.Context, email, password string) (ProviderUser, error) {
	return p.call(ctx, "/v1/accounts:signUp", email, password)
}

func (p *IdentityToolkitProvider) SignIn(ctx context.Context, email, password string) (ProviderUser, error) {
	return p.call(ctx, "/v1/accounts:signInWithPassword", email, password)
}

// SignOut no tiene efecto remoto: el toolkit no mantiene sesión del lado
// del servidor, alcanza con descartar el idToken local.
func (p *IdentityToolkitProvider) SignOut(context.Context) error {
	return nil
}

func (p *IdentityToolkitProvider) call(ctx context.Context, path, email, password string) (ProviderUser, error) {
	var resp identityResponse
	err := p.http.DoJSON(ctx, "POST", path+"?key="+p.apiKey, nil, identityRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return ProviderUser{}, err
	}
	if resp.IDToken == "" {
		return ProviderUser{}, errors.New("identitytoolkit returned empty idToken")
	}

	return ProviderUser{
		UID:      resp.LocalID,
		Email:    resp.Email,
		Name:     resp.DisplayName,
		PhotoURL: resp.PhotoURL,
		IDToken:  resp.IDToken,
	}, nil
}
