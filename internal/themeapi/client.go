// Package themeapi is the HTTP client for the /api/themes endpoints.
package themeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/themes"
)

// ErrUnexpectedStatus wraps any non-success response.
var ErrUnexpectedStatus = errors.New("unexpected theme API status")

const maxErrorBody = 4 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the theme API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchTheme performs GET /api/themes/{id}. A 404 maps to themes.ErrThemeNotFound.
func (c *Client) FetchTheme(ctx context.Context, id string) (models.ThemeConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/themes/"+url.PathEscape(id), nil)
	if err != nil {
		return models.ThemeConfig{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ThemeConfig{}, fmt.Errorf("fetch theme: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.ThemeConfig{}, fmt.Errorf("%w: %s", themes.ErrThemeNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return models.ThemeConfig{}, statusError(resp)
	}

	var theme models.ThemeConfig
	if err := json.NewDecoder(resp.Body).Decode(&theme); err != nil {
		return models.ThemeConfig{}, fmt.Errorf("decode theme: %w", err)
	}
	return theme, nil
}

// SaveTheme performs POST /api/themes with the theme as the JSON body.
func (c *Client) SaveTheme(ctx context.Context, theme models.ThemeConfig) error {
	body, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/themes", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(resp)
	}
	log.Debug().Str("theme_id", theme.ID).Int("status", resp.StatusCode).Msg("Theme API accepted save")
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(body))
	if message == "" {
		return fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, message)
}
