package userclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"flexfit/pkg/domain"
)

// Client calls the user service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a user service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Profile fetches a user profile by id. The caller's bearer token is
// forwarded unchanged so the user service applies its own authorization.
func (c *Client) Profile(ctx context.Context, userID, token string) (domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/users/"+userID, nil)
	if err != nil {
		return domain.User{}, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.User{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return domain.User{}, &APIError{Status: resp.StatusCode, Message: resp.Status}
	}
	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// APIError represents a user service error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
