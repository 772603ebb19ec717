package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/config"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

// API is the remote ticket source consumed by services. Implemented by
// Client; faked in service tests.
type API interface {
	RecentTickets(ctx context.Context, count int) ([]Ticket, error)
	TicketComments(ctx context.Context, ticketID int64) ([]Comment, error)
	ShowUser(ctx context.Context, id int64) (*User, error)
	ShowManyUsers(ctx context.Context, ids []int64) ([]User, error)
	SearchTickets(ctx context.Context, query string) ([]Ticket, error)
	Probe(ctx context.Context) (ProbeResult, error)
	Configured() bool
}

// ProbeResult reports the outcome of a live connectivity check.
type ProbeResult struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// Client talks to the Zendesk REST API over HTTP with basic auth
// ("user/token" + API key) and a bounded request timeout.
type Client struct {
	baseURL    string
	user       string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the derived https://<domain> base URL.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient constructs the API client from configuration.
func NewClient(cfg config.ZendeskConfig, logger *zap.Logger, opts ...ClientOption) *Client {
	c := &Client{
		user:       cfg.User,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
	if cfg.BaseDomain != "" {
		c.baseURL = "https://" + cfg.BaseDomain
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client has a base URL and credentials.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.user != "" && c.apiKey != ""
}

// RecentTickets returns up to count tickets ordered by creation time
// descending.
func (c *Client) RecentTickets(ctx context.Context, count int) ([]Ticket, error) {
	var resp ticketsResponse
	endpoint := "/api/v2/tickets.json?sort_by=created_at&sort_order=desc"
	if err := c.getJSON(ctx, c.baseURL+endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Tickets) > count {
		resp.Tickets = resp.Tickets[:count]
	}
	return resp.Tickets, nil
}

// TicketComments returns all comments for a ticket in source order.
func (c *Client) TicketComments(ctx context.Context, ticketID int64) ([]Comment, error) {
	var resp commentsResponse
	endpoint := fmt.Sprintf("/api/v2/tickets/%d/comments.json", ticketID)
	if err := c.getJSON(ctx, c.baseURL+endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// ShowUser resolves a single user id.
func (c *Client) ShowUser(ctx context.Context, id int64) (*User, error) {
	var resp userResponse
	endpoint := fmt.Sprintf("/api/v2/users/%d.json", id)
	if err := c.getJSON(ctx, c.baseURL+endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ShowManyUsers resolves a batch of user ids in one call.
func (c *Client) ShowManyUsers(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	var resp usersResponse
	endpoint := "/api/v2/users/show_many.json?ids=" + strings.Join(parts, ",")
	if err := c.getJSON(ctx, c.baseURL+endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// SearchTickets runs a search query and follows next_page pagination until
// exhausted.
func (c *Client) SearchTickets(ctx context.Context, query string) ([]Ticket, error) {
	params := url.Values{}
	params.Set("query", query)
	next := c.baseURL + "/api/v2/search.json?" + params.Encode()

	var results []Ticket
	for next != "" {
		var resp searchResponse
		if err := c.getJSON(ctx, next, &resp); err != nil {
			return nil, err
		}
		results = append(results, resp.Results...)
		next = resp.NextPage
	}
	return results, nil
}

// Probe performs a minimal live request for the debug endpoint.
func (c *Client) Probe(ctx context.Context) (ProbeResult, error) {
	req, err := c.newRequest(ctx, c.baseURL+"/api/v2/tickets.json?per_page=1")
	if err != nil {
		return ProbeResult{}, util.NewSourceUnavailable(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ProbeResult{}, util.NewSourceUnavailable(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
	return ProbeResult{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.user+"/token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	if !c.Configured() {
		return util.NewNotConfigured("zendesk credentials missing")
	}
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return util.NewSourceUnavailable(err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return util.NewSourceUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return util.NewNotFound("resource")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("zendesk request failed",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return util.NewSourceUnavailable(fmt.Errorf("status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return util.NewSourceUnavailable(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
