// Package openbd provides a client for the OpenBD bibliographic API.
package openbd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lepinkainen/hondana/internal/errors"
	"github.com/lepinkainen/hondana/internal/onix"
)

const defaultBaseURL = "https://api.openbd.jp/v1"

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OpenBD API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new OpenBD client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the OpenBD API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// FetchBatch looks up all isbns in one request. The result has one entry per
// element of the response array, in response order; unknown ISBNs come back
// as nil documents.
func (c *Client) FetchBatch(ctx context.Context, isbns []string) ([]*onix.Document, error) {
	if len(isbns) == 0 {
		return nil, nil
	}

	endpoint := c.getURL(isbns)
	slog.Debug("Fetching OpenBD metadata", "count", len(isbns), "url", endpoint)

	var items []json.RawMessage
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}

	docs := make([]*onix.Document, len(items))
	for i, raw := range items {
		doc, err := onix.ParseDocument(raw)
		if err != nil {
			return nil, errors.NewRequestFailedError(endpoint, fmt.Errorf("item %d: %w", i, err))
		}
		docs[i] = doc
	}

	return docs, nil
}

// FetchOne looks up a single ISBN. A nil document means OpenBD has no entry.
func (c *Client) FetchOne(ctx context.Context, isbn string) (*onix.Document, error) {
	docs, err := c.FetchBatch(ctx, []string{isbn})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (c *Client) getURL(isbns []string) string {
	return c.baseURL + "/get?isbn=" + strings.Join(isbns, ",")
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewRequestFailedError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewRequestFailedError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewRequestStatusError(endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewRequestFailedError(endpoint, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
