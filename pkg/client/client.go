package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/colare/recruit/pkg/domain"
)

// HTTPClient is the subset of *http.Client the API client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the recruiting API client.
type Client struct {
	baseURL     string
	token       string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

// New creates a new API client. An empty token sends requests without credentials.
func New(baseURL, token string) *Client {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // nil options never fail
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// SetHTTPClient replaces the transport used for requests.
func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// SetTimeout changes the per-request timeout. Zero disables it.
// It has no effect when a custom HTTPClient was installed.
func (c *Client) SetTimeout(d time.Duration) {
	if hc, ok := c.httpClient.(*http.Client); ok {
		hc.Timeout = d
	}
}

// SetRateLimit caps outgoing requests per second. Zero or less removes the cap.
func (c *Client) SetRateLimit(maxRequestsPerSecond float64) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether requests carry a bearer credential.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// GetDashboard returns the company dashboard snapshot.
func (c *Client) GetDashboard(ctx context.Context) (*domain.DashboardData, error) {
	data, err := Get[domain.DashboardData](ctx, c, "/api/companies/dashboard")
	if err != nil {
		return nil, fmt.Errorf("client.GetDashboard: %w", err)
	}
	return &data, nil
}

// GetCompanyProfile returns the company profile of the authenticated member.
func (c *Client) GetCompanyProfile(ctx context.Context) (*domain.CompanyProfile, error) {
	profile, err := Get[domain.CompanyProfile](ctx, c, "/api/companies/profile")
	if err != nil {
		return nil, fmt.Errorf("client.GetCompanyProfile: %w", err)
	}
	return &profile, nil
}

// GetNotifications returns the notification feed and unread count.
func (c *Client) GetNotifications(ctx context.Context) (*domain.NotificationFeed, error) {
	feed, err := Get[domain.NotificationFeed](ctx, c, "/api/notifications")
	if err != nil {
		return nil, fmt.Errorf("client.GetNotifications: %w", err)
	}
	return &feed, nil
}

// Get issues a GET for path and decodes the envelope's data into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	raw, err := c.GetRaw(ctx, path)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}

// envelope is the {success, data} wrapper every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// GetRaw issues a GET for path and returns the envelope's data field untouched.
func (c *Client) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	entry := log.WithFields(log.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).Round(time.Millisecond),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is never interpreted.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck
		entry.Warn("api request failed")
		return nil, &HTTPError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		entry.WithError(err).Warn("api response is not an envelope")
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		entry.Warn("api envelope reported failure")
		return nil, fmt.Errorf("GET %s: %w", path, ErrUnsuccessful)
	}
	entry.Debug("api request")
	return env.Data, nil
}
