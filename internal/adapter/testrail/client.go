// Package testrail implements the TestRail API v2 calls used by railsync.
package testrail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gitlab.com/railsync.net/internal/config"
	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/static/errs"
)

var _ secondary.TestRailClient = (*Client)(nil)

const maxErrorBody = 512

// Client talks to the TestRail API with basic authentication.
// Calls are attempted once, there is no retry.
type Client struct {
	host          string
	authorization string
	httpClient    *http.Client
	logger        primary.Logger
}

// NewClient creates a TestRail client from the connection settings
func NewClient(cfg *config.TestRailConfig, logger primary.Logger) *Client {
	return &Client{
		host:          strings.TrimRight(cfg.Host, "/"),
		authorization: Authorization(cfg.Username, cfg.Password),
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
	}
}

// Authorization builds the basic auth header value
func Authorization(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func (c *Client) endpoint(format string, args ...interface{}) string {
	return fmt.Sprintf("%s/index.php?/api/v2/%s", c.host, fmt.Sprintf(format, args...))
}

func (c *Client) postJSON(ctx context.Context, op, url string, body, out interface{}) error {
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request body: %w", op, err)
	}
	return c.do(ctx, op, http.MethodPost, url, bytes.NewReader(bodyJSON), "application/json", out)
}

func (c *Client) getJSON(ctx context.Context, op, url string, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, url, nil, "application/json", out)
}

// do sends one request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, op, method, url string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &errs.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", c.authorization)

	c.logger.Debug("TestRail request", "op", op, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &errs.TransportError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errs.TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
