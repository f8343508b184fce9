// Package jobsapi is the HTTP client for the jobs API: GET /jobs,
// GET /jobs/{id} and POST /sync. Every operation issues exactly one request
// and never retries.
package jobsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leantech/jobboard/internal/domain/model"
)

const maxErrorBody = 64 << 10

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
	Client  *http.Client
}

// Client talks to the jobs API at a fixed base address.
type Client struct {
	baseURL *url.URL
	client  *http.Client
}

// NewClient builds a jobs API client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("jobs api base url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse jobs api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("jobs api base url %q must be absolute", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{baseURL: u, client: hc}, nil
}

// FetchAll returns the published job collection.
func (c *Client) FetchAll(ctx context.Context) (*model.JobCollection, error) {
	var out model.JobCollection
	if err := c.do(ctx, request{op: "fetch all", method: http.MethodGet, path: "/jobs"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchOne returns a single posting by id.
func (c *Client) FetchOne(ctx context.Context, id string) (*model.JobPosting, error) {
	var out model.JobPosting
	req := request{op: "fetch one", method: http.MethodGet, path: "/jobs/" + url.PathEscape(id)}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TriggerSync asks the backend to start a resynchronization.
func (c *Client) TriggerSync(ctx context.Context) (*model.SyncResult, error) {
	var out model.SyncResult
	if err := c.do(ctx, request{op: "trigger sync", method: http.MethodPost, path: "/sync"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncStatus returns the most recent sync run record.
func (c *Client) SyncStatus(ctx context.Context) (*model.SyncStatus, error) {
	var out model.SyncStatus
	if err := c.do(ctx, request{op: "sync status", method: http.MethodGet, path: "/sync"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type request struct {
	op     string
	method string
	path   string
}

// endpoint joins an already escaped path onto the base address.
func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + path
}

func (c *Client) do(ctx context.Context, r request, dst any) error {
	target := c.endpoint(r.path)
	fail := func(status int, msg string, cause error) error {
		return &Error{Op: r.op, Method: r.method, URL: target, StatusCode: status, Message: msg, Err: cause}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, nil)
	if err != nil {
		return fail(0, NetworkErrorMessage, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fail(0, NetworkErrorMessage, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, errorMessage(resp), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fail(resp.StatusCode, "invalid response from jobs API", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// errorMessage prefers the API's {"message": "..."} envelope and falls back
// to a generic status line.
func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(body) > 0 {
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			if msg := strings.TrimSpace(envelope.Message); msg != "" {
				return msg
			}
		}
	}
	return statusMessage(resp.StatusCode)
}
