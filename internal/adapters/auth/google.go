package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"seekers/internal/domain"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type googleVerifier struct {
	clientID string
	client   *http.Client
}

// NewGoogleVerifier returns a GoogleVerifier that validates ID tokens against
// Google's tokeninfo endpoint and checks the audience matches clientID.
func NewGoogleVerifier(clientID string, client *http.Client) domain.GoogleVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &googleVerifier{clientID: clientID, client: client}
}

type tokenInfoResponse struct {
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Expires       string `json:"exp"`
}

func (v *googleVerifier) Verify(ctx context.Context, credential string) (*domain.GoogleIdentity, error) {
	endpoint := tokenInfoURL + "?id_token=" + url.QueryEscape(credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify google credential: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google tokeninfo returned status: %d", resp.StatusCode)
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Audience != v.clientID {
		return nil, fmt.Errorf("google credential issued for a different client")
	}
	if info.Subject == "" || info.Email == "" {
		return nil, fmt.Errorf("google credential missing identity claims")
	}
	return &domain.GoogleIdentity{
		Subject:       info.Subject,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
	}, nil
}
