package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sogebot/sogebot.dev-sub004/internal/config"

	"go.uber.org/zap"
)

// ErrUnauthenticated is the single outcome for every validation
// failure. Callers never learn whether the token was missing, expired,
// rejected or the provider was unreachable.
var ErrUnauthenticated = errors.New("unauthenticated")

// TokenValidator resolves a bearer token into a caller identity by
// asking a Twitch-OAuth-compatible validation endpoint. One outbound
// call per request; results are not cached and calls are not retried.
type TokenValidator struct {
	url    string
	client *http.Client
	logger *zap.SugaredLogger
}

func NewTokenValidator(cfg *config.AuthConfig, logger *zap.SugaredLogger) *TokenValidator {
	client := &http.Client{}
	if cfg.Timeout > 0 {
		client.Timeout = time.Duration(cfg.Timeout) * time.Second
	}
	return &TokenValidator{
		url:    cfg.ValidationURL,
		client: client,
		logger: logger,
	}
}

type validateResponse struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`
}

// Validate returns the user id the provider associates with token, or
// ErrUnauthenticated.
func (v *TokenValidator) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		v.logger.Errorf("Failed to build token validation request: %v", err)
		return "", ErrUnauthenticated
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warnf("Token validation call failed: %v", err)
		return "", ErrUnauthenticated
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.logger.Debugf("Token rejected by identity provider: status %d", resp.StatusCode)
		return "", ErrUnauthenticated
	}

	var payload validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		v.logger.Warnf("Malformed token validation response: %v", err)
		return "", ErrUnauthenticated
	}

	if payload.UserID == "" {
		return "", ErrUnauthenticated
	}

	return payload.UserID, nil
}
