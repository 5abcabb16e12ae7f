// Package client calls an extension service the way the orchestrator does.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wurt83ow/trivia-ext/internal/extension"
	"github.com/wurt83ow/trivia-ext/internal/models"
)

// ErrUnexpectedStatus is returned for responses the protocol does not define.
var ErrUnexpectedStatus = errors.New("unexpected status")

const (
	defaultRetries = 2
	defaultTimeout = 10 * time.Second
)

// Client is an extension REST client.
type Client struct {
	http *resty.Client
}

// Option configures the underlying resty client.
type Option func(*resty.Client)

// WithRetries sets how many times a failed request is retried.
// Every extension command is a pure function of its input, so retrying a POST is safe.
func WithRetries(n int) Option {
	return func(c *resty.Client) {
		c.SetRetryCount(n)
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithDebug dumps every request and response to log.
func WithDebug(log resty.Logger) Option {
	return func(c *resty.Client) {
		c.SetLogger(log).SetDebug(true)
	}
}

// New creates a client for the extension served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(defaultRetries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetTimeout(defaultTimeout)

	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

// Commands lists the commands registered in the extension.
func (c *Client) Commands(ctx context.Context) ([]string, error) {
	var out []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/ext/commands")
	if err != nil {
		return nil, fmt.Errorf("get commands: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
	}
	return out, nil
}

// Invoke runs req.Command in the extension.
func (c *Client) Invoke(ctx context.Context, req *models.Request) (*models.Response, error) {
	var out models.Response
	var apiErr models.ErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/ext/command")
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", req.Command, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return &out, nil
	case http.StatusBadRequest:
		// an empty 400 is how the extension says it does not know the command
		if len(resp.Body()) == 0 {
			return nil, fmt.Errorf("%w: %s", extension.ErrUnknownCommand, req.Command)
		}
		return nil, fmt.Errorf("%w: %s", models.ErrMalformedRequest, apiErr.Message)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
	}
}

// Version returns the build of the extension.
func (c *Client) Version(ctx context.Context) (*models.BuildInfo, error) {
	var out models.BuildInfo
	if err := c.get(ctx, "/ext/version", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns the results journal summary.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.get(ctx, "/ext/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
	}
	return nil
}
