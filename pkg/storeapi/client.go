package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
)

const (
	catalogPath    = "/api/cars"
	orderPath      = "/api/order"
	adminLoginPath = "/api/admin/login"

	// Snippet cap for non-2xx bodies quoted inside catalog load errors.
	errorBodyReadLimit int64 = 1024
	// Cap for order and login response bodies, which carry a server message
	// the user will see and may sit after other fields.
	messageBodyReadLimit int64 = 64 << 10
)

var errBaseURLRequired = errors.New("store api base URL is required")

// Client talks to the storefront backend over HTTP with JSON bodies.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds a storefront API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// BaseURL returns the configured API origin, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CatalogEndpoint is the absolute URL of the catalog fetch, used when naming
// the endpoint in user-visible load errors.
func (c *Client) CatalogEndpoint() string {
	return c.baseURL + catalogPath
}

// FetchCatalog retrieves the product list and shipment fee. Any non-2xx
// status or undecodable body aborts the load; transport failures are reported
// as network errors so callers can distinguish them from server refusals.
func (c *Client) FetchCatalog(ctx context.Context) (*CatalogPayload, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store api client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+catalogPath, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogLoad, err, "build catalog request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("fetch catalog from %s", c.CatalogEndpoint()))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeCatalogLoad,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			fmt.Sprintf("catalog fetch from %s failed", c.CatalogEndpoint()),
		)
	}

	var payload CatalogPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalogLoad, err, fmt.Sprintf("decode catalog response from %s", c.CatalogEndpoint()))
	}

	return &payload, nil
}

// SubmitOrder posts the order and returns whatever status and message the
// server answered with. It only errors when no response was received at all;
// mapping statuses to outcomes is the checkout layer's concern. A body
// without the expected message field yields an empty Message.
func (c *Client) SubmitOrder(ctx context.Context, order OrderRequest, requestID string) (*OrderResponse, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store api client not configured")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderFailed, err, "marshal order request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orderPath, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderFailed, err, "build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "submit order")
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Message string `json:"message"`
	}
	// Tolerate undecodable bodies: the status code still resolves the outcome.
	_ = json.NewDecoder(io.LimitReader(resp.Body, messageBodyReadLimit)).Decode(&body)

	return &OrderResponse{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(body.Message),
	}, nil
}

// AdminLogin posts the password and returns the raw status, success flag, and
// message. Authentication requires both a 200 status and a true success flag,
// which the admin layer enforces.
func (c *Client) AdminLogin(ctx context.Context, password string) (*LoginResponse, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store api client not configured")
	}

	payload, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAuthDenied, err, "marshal login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+adminLoginPath, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAuthDenied, err, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "admin login")
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, messageBodyReadLimit)).Decode(&body)

	return &LoginResponse{
		StatusCode: resp.StatusCode,
		Success:    body.Success,
		Message:    strings.TrimSpace(body.Message),
	}, nil
}
