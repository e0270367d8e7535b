// Package client es el SDK del frontend contra el backend de adopciones:
// sesión, resolución de roles, sincronización de listas paginadas,
// invalidación de caché tras mutaciones, checkout de donaciones y guards
// de navegación.
package client

import (
	"context"
	"errors"
	"net/http"

	"pet-adoption-platform/internal/platform/httpclient"
)

// TokenSource entrega el bearer token de la sesión activa ("" = anónimo).
type TokenSource interface {
	Token() string
}

// Client agrega el Authorization header sobre httpclient para las llamadas
// al backend. Con tokens nil todas las llamadas salen anónimas.
type Client struct {
	http   *httpclient.Client
	tokens TokenSource
}

func New(baseURL string, tokens TokenSource) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, tokens: tokens}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var headers map[string]string
	if c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			headers = map[string]string{"Authorization": "Bearer " + t}
		}
	}
	return c.http.DoJSON(ctx, method, path, headers, in, out)
}

// StatusCode devuelve el status HTTP de un error del backend, o 0 si el
// error no vino de una respuesta.
func StatusCode(err error) int {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
