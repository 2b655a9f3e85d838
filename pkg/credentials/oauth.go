package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopware/sw-sync-cli/pkg/client"
)

// TokenSource is client.TokenSource backed by the OAuth client-credentials
// exchange against a credentials file's domain/integration id/secret
// (spec.md §6 "OAuth-style token endpoint").
type TokenSource struct {
	Domain            string
	IntegrationID     string
	IntegrationSecret string
	HTTPClient        *http.Client
}

func (s *TokenSource) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

// Authenticate implements client.TokenSource.
func (s *TokenSource) Authenticate(ctx context.Context) (client.Token, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.IntegrationID},
		"client_secret": {s.IntegrationSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Domain+"/api/oauth/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return client.Token{}, fmt.Errorf("credentials: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return client.Token{}, fmt.Errorf("credentials: token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return client.Token{}, fmt.Errorf("credentials: read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return client.Token{}, fmt.Errorf("credentials: token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var wire struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return client.Token{}, fmt.Errorf("credentials: parse token response: %w", err)
	}

	return client.Token{
		AccessToken: wire.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(wire.ExpiresIn) * time.Second),
	}, nil
}
