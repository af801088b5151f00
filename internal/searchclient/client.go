// Package searchclient consumes the site's external search API and submits contact
// form requests. It does no ranking or indexing of its own.
package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/hyperjump/contentkit/pkg/utils"
	"go.uber.org/zap"
)

var (
	// ErrSearchUnavailable wraps every search failure: transport, status and decoding.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrSubmissionFailed wraps every contact submission failure after validation.
	ErrSubmissionFailed = errors.New("contact submission failed")
	// ErrInvalidContact is returned before any request when a contact field is invalid.
	ErrInvalidContact = errors.New("invalid contact request")
)

const (
	// DefaultTimeout bounds each request when no timeout is configured.
	DefaultTimeout = 10 * time.Second
	// RequestIDHeader carries the id generated for each contact submission.
	RequestIDHeader = "X-Request-ID"

	searchPath  = "/api/search"
	contactPath = "/api/contact"
)

// Searcher queries the external search API.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// Client talks to the search and contact endpoints under one base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client. Its timeout is left untouched.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a logger for request failures.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// New creates a client for baseURL. timeout <= 0 uses DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = utils.OrNop(c.logger)
	return c
}

// Search sends query to GET /api/search?q=. A blank query returns no results
// without a request. Failures are not retried.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}
	u := c.baseURL + searchPath + "?" + url.Values{"q": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("search request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("search returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(b)))
		return nil, fmt.Errorf("%w: server returned %d", ErrSearchUnavailable, resp.StatusCode)
	}

	var body models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchUnavailable, err)
	}
	if body.Results == nil {
		body.Results = []models.SearchResult{}
	}
	return body.Results, nil
}

// SubmitContact validates req and posts it to /api/contact. Any 2xx is success.
func (c *Client) SubmitContact(ctx context.Context, req models.ContactRequest) error {
	if err := ValidateContact(req); err != nil {
		return err
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+contactPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("contact request failed", zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("contact returned error status",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: server returned %d", ErrSubmissionFailed, resp.StatusCode)
	}
	return nil
}

// ValidateContact checks that every field is present and the email address parses.
func ValidateContact(req models.ContactRequest) error {
	fields := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"category", req.Category},
		{"subject", req.Subject},
		{"message", req.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidContact, f.name)
		}
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != strings.TrimSpace(req.Email) {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidContact)
	}
	return nil
}
