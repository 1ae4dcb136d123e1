package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/farmgate/marketplace/pkg/logger"
)

// ErrUserNotFound is returned when the user service has no user with the
// requested ID.
var ErrUserNotFound = errors.New("user not found")

// UserProfile is the public profile exposed by the user service.
type UserProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FarmName string `json:"farm_name"`
	IsActive bool   `json:"is_active"`
}

// UserClient calls the user service HTTP API
type UserClient struct {
	baseURL string
	client  *http.Client
}

// NewUserClient creates a new user service client
func NewUserClient(baseURL string) *UserClient {
	logger.Logger.Info().
		Str("base_url", baseURL).
		Msg("User service client initialized")

	return &UserClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// GetUser fetches a public user profile by ID
func (c *UserClient) GetUser(ctx context.Context, userID uint) (*UserProfile, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var profile UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	return &profile, nil
}
