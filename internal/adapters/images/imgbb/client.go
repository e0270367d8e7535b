// Package imgbb sube imágenes al hosting de imgbb y devuelve la URL pública.
package imgbb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var (
	ErrImgbbNotConfigured = errors.New("imgbb client not configured")
	ErrImgbbUpstream      = errors.New("imgbb upstream error")
)

const defaultBaseURL = "https://api.imgbb.com"

// Config del cliente imgbb. APIKey viene de IMGBB_KEY.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    base,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type uploadPayload struct {
	Data struct {
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload manda la imagen como multipart y devuelve la display URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if !c.IsConfigured() {
		return "", ErrImgbbNotConfigured
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/1/upload?key="+c.apiKey, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImgbbUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrImgbbUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrImgbbUpstream, resp.StatusCode)
	}

	var p uploadPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrImgbbUpstream, err)
	}
	if !p.Success || p.Data.DisplayURL == "" {
		return "", fmt.Errorf("%w: upload rejected (status %d)", ErrImgbbUpstream, p.Status)
	}

	return p.Data.DisplayURL, nil
}
