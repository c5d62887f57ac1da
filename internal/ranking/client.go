package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
)

// Client talks to a remote ranking service. Submitting is a GET with the
// run in the query string; listing is a plain GET returning a JSON array.
// The remote side saves on every submit, so only listing is retried.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	retries   int
	retryWait time.Duration
	maxName   int
	topN      int
	logger    *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetries sets how many times a failed leaderboard fetch is retried and
// the initial wait between attempts.
func WithRetries(n int, wait time.Duration) ClientOption {
	return func(c *Client) {
		c.retries = max(n, 0)
		c.retryWait = wait
	}
}

// WithLimits sets the name length and leaderboard size limits.
func WithLimits(maxName, topN int) ClientOption {
	return func(c *Client) {
		c.maxName = maxName
		c.topN = topN
	}
}

// WithLogger sets the logger used for retry notices.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the ranking endpoint.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("ranking: invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("ranking: endpoint %q must be http or https", endpoint)
	}

	c := &Client{
		endpoint:  u,
		http:      &http.Client{Timeout: 10 * time.Second},
		retries:   2,
		retryWait: 300 * time.Millisecond,
		maxName:   15,
		topN:      20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Submit sends a finished run exactly once. A failure is reported, never
// replayed: the request may have been saved before the connection broke.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	u := *c.endpoint
	q := u.Query()
	q.Set("nombre", sub.Name)
	q.Set("email", sub.Email)
	q.Set("puntaje", strconv.Itoa(sub.Score))
	u.RawQuery = q.Encode()

	resp, err := c.send(ctx, u.String(), true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	defer resp.Body.Close()
	//nolint:errcheck // Drain before close
	io.Copy(io.Discard, resp.Body)
	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return nil
}

// Leaderboard fetches and sanitizes the ranking.
func (c *Client) Leaderboard(ctx context.Context) ([]Record, error) {
	var raw []RawRecord
	err := c.retry(ctx, "fetch", func() error {
		resp, err := c.send(ctx, c.endpoint.String(), false)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := checkStatus(resp); err != nil {
			return err
		}

		dec := json.NewDecoder(resp.Body)
		dec.UseNumber()
		raw = nil
		if err := dec.Decode(&raw); err != nil {
			return backoff.Permanent(fmt.Errorf("decode leaderboard: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return Sanitize(raw, c.maxName, c.topN), nil
}

// send issues a GET. A once request uses a fresh connection so the transport
// never replays it after a broken keep-alive.
func (c *Client) send(ctx context.Context, target string, once bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Close = once
	return c.http.Do(req)
}

// retry runs op with exponential backoff. Client errors are not retried.
func (c *Client) retry(ctx context.Context, what string, op backoff.Operation) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryWait
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.retries)), ctx)

	notify := func(err error, wait time.Duration) {
		if c.logger != nil {
			c.logger.Debug("ranking request failed, retrying", "op", what, "err", err, "wait", wait)
		}
	}
	return backoff.RetryNotify(op, policy, notify)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	err := fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return backoff.Permanent(err)
	}
	return err
}
