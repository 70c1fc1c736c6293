// Package notion talks to the Notion REST API on behalf of a connected user.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/metrics"
)

// Client is the task-database collaborator used by the settings and pet services
type Client interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.NotionToken, error)
	ListDatabases(ctx context.Context, accessToken string) ([]domain.NotionDatabase, error)
	GetProperties(ctx context.Context, accessToken, databaseID string) (map[string]domain.NotionProperty, error)
	CreateProperty(ctx context.Context, accessToken, databaseID, name, propertyType string) error
	UpdateSelectOptions(ctx context.Context, accessToken, databaseID, propertyName string, options []domain.SelectOption) error
	QueryPages(ctx context.Context, accessToken, databaseID string) ([]domain.NotionPage, error)
}

// Config configures the HTTP client
type Config struct {
	BaseURL      string
	Version      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// HTTPClient implements Client over net/http
type HTTPClient struct {
	cfg        Config
	http       *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewHTTPClient creates a Notion API client
func NewHTTPClient(cfg Config) *HTTPClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPClient{
		cfg:        cfg,
		http:       &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// ExchangeCode trades an OAuth authorization code for a workspace token
func (c *HTTPClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.NotionToken, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return nil, errors.New(ErrMsgMissingCredential)
	}
	if redirectURI == "" {
		redirectURI = c.cfg.RedirectURI
	}

	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, PathOAuthToken, tokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: redirectURI,
	}, &resp, func(req *http.Request) {
		req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return &domain.NotionToken{
		AccessToken:   resp.AccessToken,
		WorkspaceID:   resp.WorkspaceID,
		WorkspaceName: resp.WorkspaceName,
		BotID:         resp.BotID,
	}, nil
}

// ListDatabases returns every database shared with the integration
func (c *HTTPClient) ListDatabases(ctx context.Context, accessToken string) ([]domain.NotionDatabase, error) {
	var databases []domain.NotionDatabase
	cursor := ""
	for round := 0; round < MaxQueryPages; round++ {
		var resp searchResponse
		err := c.do(ctx, http.MethodPost, PathSearch, searchRequest{
			Filter:      searchFilter{Property: "object", Value: "database"},
			StartCursor: cursor,
			PageSize:    PageSize,
		}, &resp, bearer(accessToken))
		if err != nil {
			return nil, fmt.Errorf("failed to list databases: %w", err)
		}
		for _, db := range resp.Results {
			databases = append(databases, db.toDomain())
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	return databases, nil
}

// GetProperties returns the property schema of a database keyed by property name
func (c *HTTPClient) GetProperties(ctx context.Context, accessToken, databaseID string) (map[string]domain.NotionProperty, error) {
	var resp databaseObject
	if err := c.do(ctx, http.MethodGet, databasePath(PathDatabase, databaseID), nil, &resp, bearer(accessToken)); err != nil {
		return nil, fmt.Errorf("failed to get properties: %w", err)
	}
	props := make(map[string]domain.NotionProperty, len(resp.Properties))
	for name, schema := range resp.Properties {
		props[name] = schema.toDomain(name)
	}
	return props, nil
}

// CreateProperty adds a status property, or a select property seeded with the
// default difficulty options.
func (c *HTTPClient) CreateProperty(ctx context.Context, accessToken, databaseID, name, propertyType string) error {
	var schema propertySchema
	switch propertyType {
	case domain.PropertyTypeStatus:
		schema.Status = &struct{}{}
	case domain.PropertyTypeSelect:
		opts := make([]domain.SelectOption, 0, len(DefaultDifficultyOptions))
		for _, n := range DefaultDifficultyOptions {
			opts = append(opts, domain.SelectOption{Name: n})
		}
		schema.Select = &selectSchema{Options: opts}
	default:
		return fmt.Errorf("%w: "+ErrMsgUnsupportedType, domain.ErrInvalidInput, propertyType)
	}

	body := updateDatabaseRequest{Properties: map[string]propertySchema{name: schema}}
	if err := c.do(ctx, http.MethodPatch, databasePath(PathDatabase, databaseID), body, nil, bearer(accessToken)); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// UpdateSelectOptions replaces the option list of a select property. Options carrying
// an ID keep their identity, so a changed name is a rename. Options left out are deleted.
func (c *HTTPClient) UpdateSelectOptions(ctx context.Context, accessToken, databaseID, propertyName string, options []domain.SelectOption) error {
	body := updateDatabaseRequest{Properties: map[string]propertySchema{
		propertyName: {Select: &selectSchema{Options: options}},
	}}
	if err := c.do(ctx, http.MethodPatch, databasePath(PathDatabase, databaseID), body, nil, bearer(accessToken)); err != nil {
		return fmt.Errorf("failed to update select options: %w", err)
	}
	return nil
}

// QueryPages returns every page of a database, following pagination cursors
func (c *HTTPClient) QueryPages(ctx context.Context, accessToken, databaseID string) ([]domain.NotionPage, error) {
	var pages []domain.NotionPage
	cursor := ""
	for round := 0; ; round++ {
		if round == MaxQueryPages {
			logger.FromContext(ctx).Warn(LogMsgQueryTruncated, "database_id", databaseID, "pages", len(pages))
			break
		}
		var resp queryResponse
		err := c.do(ctx, http.MethodPost, databasePath(PathDatabaseQuery, databaseID), queryRequest{
			StartCursor: cursor,
			PageSize:    PageSize,
		}, &resp, bearer(accessToken))
		if err != nil {
			return nil, fmt.Errorf("failed to query pages: %w", err)
		}
		for _, p := range resp.Results {
			pages = append(pages, p.toDomain())
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	return pages, nil
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func databasePath(format, databaseID string) string {
	return fmt.Sprintf(format, url.PathEscape(databaseID))
}

// do performs a JSON request with retry on transport errors, 429 and 5xx responses
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}, decorate func(*http.Request)) (err error) {
	start := time.Now()
	defer func() {
		metrics.NotionRequestDuration.WithLabelValues(method, metrics.ObserveOutcome(err)).Observe(time.Since(start).Seconds())
	}()

	var reqBody []byte
	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	log := logger.FromContext(ctx)
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", delay)
			metrics.NotionRetries.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		var reader io.Reader
		if reqBody != nil {
			reader = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set(HeaderNotionVersion, c.cfg.Version)
		if reqBody != nil {
			req.Header.Set(HeaderContentType, ContentTypeJSON)
		}
		decorate(req)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			lastErr = statusError(resp)
			resp.Body.Close()
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt)
			continue
		}

		err = decodeResponse(resp, out)
		resp.Body.Close()
		return err
	}

	return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, ErrMsgMaxRetries, lastErr)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", domain.ErrNotionNotConnected, statusError(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, statusError(resp))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var e errorResponse
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e); err == nil && e.Message != "" {
		msg = e.Message
	}
	return fmt.Errorf(ErrMsgStatus, resp.StatusCode, msg)
}
