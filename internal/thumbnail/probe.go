// Package thumbnail checks cover availability on the NDL Search thumbnail
// endpoint.
package thumbnail

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://ndlsearch.ndl.go.jp"

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Probe answers whether a cover image exists for an ISBN.
type Probe struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewProbe creates a Probe against the NDL Search host.
func NewProbe(opts ...Option) *Probe {
	p := &Probe{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Option is a functional option for configuring the Probe.
type Option func(*Probe)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(p *Probe) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithBaseURL sets the thumbnail host.
func WithBaseURL(base string) Option {
	return func(p *Probe) {
		if base != "" {
			p.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// URL is the thumbnail location stored for isbn when a cover exists.
func (p *Probe) URL(isbn string) string {
	return p.baseURL + "/thumbnail/" + isbn + ".jpg"
}

// CheckOne reports whether the thumbnail for isbn answers 200. Any other
// status and any transport error count as "no cover".
func (p *Probe) CheckOne(ctx context.Context, isbn string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(isbn), nil)
	if err != nil {
		slog.Debug("Thumbnail request not built", "isbn", isbn, "error", err)
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		slog.Debug("Thumbnail probe failed", "isbn", isbn, "error", err)
		return false
	}
	defer func() {
		// Drained bodies let the transport reuse the connection.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	return resp.StatusCode == http.StatusOK
}

// CheckAll probes every ISBN concurrently and waits for all of them.
func (p *Probe) CheckAll(ctx context.Context, isbns []string) map[string]bool {
	found := make([]bool, len(isbns))

	var g errgroup.Group
	for i, isbn := range isbns {
		g.Go(func() error {
			found[i] = p.CheckOne(ctx, isbn)
			return nil
		})
	}
	// CheckOne never fails, Wait only joins.
	_ = g.Wait()

	results := make(map[string]bool, len(isbns))
	for i, isbn := range isbns {
		results[isbn] = results[isbn] || found[i]
	}
	return results
}
