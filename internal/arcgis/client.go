package arcgis

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Client is a REST client for the server's administrative API. It is not
// safe for concurrent use; the token is written once by GenerateToken.
type Client struct {
	conn   *Connection
	client *http.Client
	log    *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the HTTP client timeout. Zero leaves it to the network stack.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing and recovered failures
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for conn.
func NewClient(conn *Connection, opts ...Option) *Client {
	c := &Client{
		conn:   conn,
		client: &http.Client{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connection returns the descriptor the client talks to.
func (c *Client) Connection() *Connection {
	return c.conn
}

// post sends a form-encoded POST. query is appended to the URL, form becomes
// the body. The response body is returned for any 2xx status.
func (c *Client) post(ctx context.Context, path string, query, form url.Values) ([]byte, error) {
	endpoint := c.conn.AdminURL(path)
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader = http.NoBody
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/plain")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, errors.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	c.log.Debug("admin request",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// adminPost performs a token-authenticated request with f=json and checks
// the response for an error envelope.
func (c *Client) adminPost(ctx context.Context, path string) ([]byte, error) {
	if !c.conn.HasToken() {
		return nil, errors.WithStack(ErrNoToken)
	}

	query := url.Values{}
	query.Set("f", "json")
	query.Set("token", c.conn.Token)

	body, err := c.post(ctx, path, query, nil)
	if err != nil {
		return nil, err
	}
	if err := checkEnvelope(body); err != nil {
		return nil, err
	}
	return body, nil
}
