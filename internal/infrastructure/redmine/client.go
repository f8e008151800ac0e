// Package redmine fetches sprint tickets from the Redmine REST API.
package redmine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

const pageSize = 100

// Unassigned is used for tickets without an assignee.
const Unassigned = "unassigned"

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("redmine api error (%d): %s", e.StatusCode, e.Body)
}

// Temporary reports whether repeating the request may succeed.
// Client errors such as a bad API key or unknown project are permanent.
func (e *APIError) Temporary() bool {
	return e.StatusCode < 400 || e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

// Client queries issues from a Redmine instance.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryCfg   retry.Config
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets the number of attempts per page request.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.retryCfg.MaxAttempts = maxAttempts
		c.retryCfg.InitialDelay = initialDelay
	}
}

// WithLogger logs retry attempts to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.retryCfg.Logger = logger }
}

// WithTimeout bounds each page request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a client for the Redmine instance at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		retryCfg: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
			IsRetryable:   isRetryable,
		},
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type issue struct {
	ID             int        `json:"id"`
	Subject        string     `json:"subject"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ClosedOn       *time.Time `json:"closed_on"`
	DueDate        string     `json:"due_date"`
	Status         struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"status"`
	AssignedTo *struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"assigned_to"`
}

type issuesPage struct {
	Issues     []issue `json:"issues"`
	TotalCount int     `json:"total_count"`
	Offset     int     `json:"offset"`
	Limit      int     `json:"limit"`
}

// FetchTickets returns every ticket of the query's projects due within the
// range whose subject contains the team tag. Tickets shared between projects
// are returned once.
func (c *Client) FetchTickets(ctx context.Context, q burndown.Query) ([]burndown.Ticket, error) {
	seen := make(map[int]bool)
	var tickets []burndown.Ticket

	for _, project := range q.Projects {
		for offset := 0; ; {
			page, err := c.fetchPage(ctx, issueParams(project, q, offset))
			if err != nil {
				return nil, fmt.Errorf("fetch issues of %s: %w", project, err)
			}
			for _, is := range page.Issues {
				if seen[is.ID] {
					continue
				}
				seen[is.ID] = true
				tickets = append(tickets, is.toTicket())
			}

			offset += len(page.Issues)
			if len(page.Issues) == 0 || offset >= page.TotalCount {
				break
			}
		}
	}
	return tickets, nil
}

func issueParams(project string, q burndown.Query, offset int) url.Values {
	v := url.Values{}
	v.Set("project_id", project)
	v.Set("status_id", "*")
	v.Set("due_date", "><"+q.DueFrom.Format(sprint.DateFormat)+"|"+q.DueTo.Format(sprint.DateFormat))
	if q.SubjectTag != "" {
		v.Set("subject", "~["+q.SubjectTag+"]")
	}
	v.Set("offset", strconv.Itoa(offset))
	v.Set("limit", strconv.Itoa(pageSize))
	return v
}

func (c *Client) fetchPage(ctx context.Context, params url.Values) (*issuesPage, error) {
	r := retry.New[*issuesPage](c.retryCfg)
	t := timeout.New[*issuesPage](timeout.Config{DefaultTimeout: c.timeout})

	// lastErr keeps the typed error of the final attempt for callers.
	var lastErr error
	page, err := r.Do(ctx, func(ctx context.Context) (*issuesPage, error) {
		return t.Execute(ctx, c.timeout, func(ctx context.Context) (*issuesPage, error) {
			page, err := c.get(ctx, "/issues.json?"+params.Encode())
			lastErr = err
			return page, err
		})
	})
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, path string) (*issuesPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Redmine-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var page issuesPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return &page, nil
}

func (is issue) toTicket() burndown.Ticket {
	t := burndown.Ticket{
		ID:       is.ID,
		Subject:  is.Subject,
		Status:   burndown.Status(is.Status.Name),
		ClosedOn: is.ClosedOn,
		Assignee: Unassigned,
	}
	if is.EstimatedHours != nil {
		points := int(*is.EstimatedHours)
		t.Points = &points
	}
	if is.AssignedTo != nil && is.AssignedTo.Name != "" {
		t.Assignee = is.AssignedTo.Name
	}
	if due, err := time.Parse(sprint.DateFormat, is.DueDate); err == nil {
		t.DueDate = &due
	}
	return t
}
