// Package httpfetch performs poll requests against the task status endpoint.
package httpfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskwatch/internal/application/port/output"
	"taskwatch/internal/domain/entity"
)

var _ output.TaskFetcher = (*Client)(nil)

const maxResponseBodySize = 1 << 20 // 1MB

const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 60 * time.Second
)

type Config struct {
	// Timeout bounds one request. Zero leaves the request unbounded, so a hanging
	// server postpones the next cycle until it answers.
	Timeout time.Duration
	Headers map[string]string
}

type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	headers    map[string]string
}

func NewClient(cfg Config) *Client {
	headers := map[string]string{
		"Accept":           "application/json",
		"X-Requested-With": "XMLHttpRequest",
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		timeout: cfg.Timeout,
		headers: headers,
	}
}

// Fetch issues one GET. Every failure is returned as *entity.FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (entity.PollResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &entity.FetchError{Kind: entity.ErrTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &entity.FetchError{Kind: entity.ErrTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return nil, &entity.FetchError{
			Kind:       entity.ErrStatus,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		return nil, &entity.FetchError{Kind: entity.ErrTransport, StatusCode: resp.StatusCode, StatusText: statusText(resp), Err: err}
	}
	if len(body) > maxResponseBodySize {
		return nil, &entity.FetchError{Kind: entity.ErrParse, StatusCode: resp.StatusCode, StatusText: statusText(resp),
			Err: fmt.Errorf("response body exceeds %d bytes", maxResponseBodySize)}
	}

	out := entity.PollResponse{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &entity.FetchError{Kind: entity.ErrParse, StatusCode: resp.StatusCode, StatusText: statusText(resp), Err: err}
	}
	if out == nil {
		out = entity.PollResponse{}
	}
	return out, nil
}

// Close releases idle connections. The client stays usable.
func (c *Client) Close() {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// statusText strips the code from "500 Internal Server Error".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
