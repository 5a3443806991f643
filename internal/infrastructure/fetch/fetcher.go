package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"TransientLoader/internal/config"
	"TransientLoader/internal/ports"
)

const defaultTimeout = 20 * time.Second

// Client fetches report pages and artifact files from the observatory web
// server. Requests go out unauthenticated first; a 401 challenge triggers a
// single retry with HTTP Basic credentials.
type Client struct {
	http     *resty.Client
	username string
	password string
	logger   *slog.Logger
}

var _ ports.PageFetcher = (*Client)(nil)
var _ ports.FileFetcher = (*Client)(nil)

// NewClient builds a fetcher from HTTP configuration.
func NewClient(cfg config.HTTPConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().SetTimeout(timeout)
	if cfg.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		http:     client,
		username: cfg.Username,
		password: cfg.Password,
		logger:   logger,
	}
}

// FetchPage retrieves the raw HTML of a report page or frame.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url, nil)
	if err != nil {
		return "", err
	}
	return string(resp.Body()), nil
}

// DownloadFile writes the response body of url to dest. A transport or
// filesystem failure is returned to the caller; the pipeline records it as
// an absent artifact and moves on.
func (c *Client) DownloadFile(ctx context.Context, url, dest string) error {
	_, err := c.get(ctx, url, func(req *resty.Request) {
		req.SetOutput(dest)
	})
	return err
}

func (c *Client) get(ctx context.Context, url string, decorate func(*resty.Request)) (*resty.Response, error) {
	build := func() *resty.Request {
		req := c.http.R().SetContext(ctx)
		if decorate != nil {
			decorate(req)
		}
		return req
	}

	resp, err := build().Get(url)
	if err != nil {
		c.logger.Warn("request failed", "url", url, "error", err)
		return nil, fmt.Errorf("get %s: %w", url, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		resp, err = build().SetBasicAuth(c.username, c.password).Get(url)
		if err != nil {
			c.logger.Warn("authenticated request failed", "url", url, "error", err)
			return nil, fmt.Errorf("get %s with credentials: %w", url, err)
		}
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("get %s: server returned %s", url, resp.Status())
	}

	return resp, nil
}
