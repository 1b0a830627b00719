package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Backend selects which GenAI worker serves a generation request.
type Backend string

const (
	BackendCloud Backend = "cloud"
	BackendLocal Backend = "local"
)

// ParseBackend reads a request-supplied backend name. Anything that is not
// "local" (case-insensitive) means cloud, including the empty string.
func ParseBackend(s string) Backend {
	if strings.EqualFold(strings.TrimSpace(s), string(BackendLocal)) {
		return BackendLocal
	}
	return BackendCloud
}

// Client calls the cloud and local workout workers over HTTP.
type Client struct {
	cloudURL   string
	localURL   string
	httpClient *http.Client
}

func NewClient(cloudURL, localURL string) *Client {
	return &Client{
		cloudURL: strings.TrimRight(cloudURL, "/"),
		localURL: strings.TrimRight(localURL, "/"),
		// Model inference is slow compared to regular service calls.
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateDaily asks a worker for a single-day workout. The caller's bearer
// token is forwarded; workers reject unauthenticated requests.
func (c *Client) GenerateDaily(ctx context.Context, backend Backend, token string, payload DailyPromptContext) (*GeneratedWorkout, error) {
	var resp dailyResponse
	if err := c.doJSON(ctx, backend, token, "/generate", payload, &resp); err != nil {
		return nil, err
	}
	if len(resp.DailyWorkout.ScheduledExercises) == 0 && resp.DailyWorkout.MarkdownContent == "" {
		return nil, fmt.Errorf("%s worker returned no workout", backend)
	}
	return &resp.DailyWorkout, nil
}

// GenerateWeekly asks a worker for a seven-day plan.
func (c *Client) GenerateWeekly(ctx context.Context, backend Backend, token string, payload WeeklyPromptContext) ([]GeneratedWorkout, error) {
	var resp weeklyResponse
	if err := c.doJSON(ctx, backend, token, "/generate-weekly", payload, &resp); err != nil {
		return nil, err
	}
	if len(resp.Workouts) == 0 {
		return nil, fmt.Errorf("%s worker returned no workouts", backend)
	}
	return resp.Workouts, nil
}

func (c *Client) baseURL(b Backend) string {
	if b == BackendLocal {
		return c.localURL
	}
	return c.cloudURL
}

func (c *Client) doJSON(ctx context.Context, backend Backend, token, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s worker request: %w", backend, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL(backend)+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s worker request: %w", backend, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s worker unreachable: %w", backend, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Detail
		if msg == "" {
			msg = errResp.Error
		}
		if msg != "" {
			return fmt.Errorf("%s worker error: %s", backend, msg)
		}
		return fmt.Errorf("%s worker error: %s", backend, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s worker response: %w", backend, err)
	}
	return nil
}
