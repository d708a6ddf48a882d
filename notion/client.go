// Package notion is a minimal client for the Notion REST API, covering the
// database query endpoint and the property types the feed reads.
package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL    = "https://api.notion.com/v1"
	DefaultAPIVersion = "2022-06-28"
	DefaultTimeout    = 60 * time.Second
)

type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at another API host, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient creates a client authenticated with an integration token. The
// token is not validated until the first request.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryDatabase runs a single query against a database. It does not follow
// next_cursor; callers get at most req.PageSize results.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}
	if databaseID == "" {
		return nil, ErrMissingDatabaseID
	}

	var raw queryResponse
	path := "/databases/" + url.PathEscape(databaseID) + "/query"
	if err := c.do(ctx, http.MethodPost, path, req, &raw); err != nil {
		return nil, err
	}

	resp, err := raw.validate()
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"database": databaseID,
		"results":  len(resp.Results),
		"has_more": resp.HasMore,
	}).Debug("Queried Notion database")

	return resp, nil
}

// queryResponse mirrors QueryResponse with pointers so that a missing or
// null results array, or a null row, is not mistaken for an empty result.
type queryResponse struct {
	Object     string   `json:"object"`
	Results    *[]*Page `json:"results"`
	NextCursor *string  `json:"next_cursor"`
	HasMore    bool     `json:"has_more"`
}

func (r *queryResponse) validate() (*QueryResponse, error) {
	if r.Results == nil {
		return nil, fmt.Errorf("%w: results missing", ErrMalformedResponse)
	}

	pages := make([]Page, 0, len(*r.Results))
	for i, page := range *r.Results {
		if page == nil {
			return nil, fmt.Errorf("%w: result %d is null", ErrMalformedResponse, i)
		}
		pages = append(pages, *page)
	}

	return &QueryResponse{
		Object:     r.Object,
		Results:    pages,
		NextCursor: r.NextCursor,
		HasMore:    r.HasMore,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", DefaultAPIVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Object != "error" {
		return fmt.Errorf("notion: request failed with status %d", status)
	}
	if apiErr.Status == 0 {
		apiErr.Status = status
	}
	return &apiErr
}
