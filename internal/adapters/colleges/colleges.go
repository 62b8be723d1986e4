// Package colleges fetches the list of university names offered on the
// intake form from an external HTTP endpoint.
package colleges

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// maxBodyBytes bounds the response we are willing to decode.
const maxBodyBytes = 8 << 20

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout bounds each fetch. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d >= 0 {
			cl.timeout = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// Client reads `{"allCollege":[{"name":...}]}` documents.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	log     logger.Logger
}

// New creates a Client for url.
func New(url string, opts ...Option) *Client {
	c := &Client{url: strings.TrimSpace(url), http: http.DefaultClient, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("colleges")
	return c
}

type payload struct {
	AllCollege *[]struct {
		Name string `json:"name"`
	} `json:"allCollege"`
}

// Fetch returns the non-blank college names in response order. Every failure
// wraps ErrNetwork.
func (c *Client) Fetch(ctx context.Context) ([]string, error) {
	names, err := c.fetch(ctx)
	if err != nil {
		metrics.RecordCollegeFetch("error")
		c.log.Warn(ctx, "college fetch failed", logger.String("url", c.url), logger.Error(err))
		return nil, err
	}
	metrics.RecordCollegeFetch("ok")
	c.log.Debug(ctx, "colleges fetched", logger.Int("count", len(names)))
	return names, nil
}

func (c *Client) fetch(ctx context.Context) ([]string, error) {
	if c.url == "" {
		return nil, fmt.Errorf("%w: no endpoint configured", ErrNetwork)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}

	var p payload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrNetwork, err)
	}
	if p.AllCollege == nil {
		return nil, fmt.Errorf("%w: response has no allCollege array", ErrNetwork)
	}

	names := make([]string, 0, len(*p.AllCollege))
	for _, col := range *p.AllCollege {
		if name := strings.TrimSpace(col.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
