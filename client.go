package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bloomify/bloomify/sdk/go/headers"
)

// Config wires credentials, cookies, base URL, and telemetry for the
// storefront API client. There is no ambient state: everything a request
// needs is threaded through the Client built from this config.
type Config struct {
	// BaseURL is the origin the storefront backend is served from.
	BaseURL string
	// Credentials owns the session token. Required.
	Credentials CredentialStore
	// Cookies supplies the outgoing Cookie header. The CSRF token is read
	// from it freshly on every mutating request. Optional; without it,
	// mutating requests carry no anti-forgery token and the backend will
	// reject them.
	Cookies CookieSource
	// HTTPClient defaults to http.DefaultClient. The SDK imposes no
	// timeout of its own; a pending request stays pending until the
	// caller's client or context gives up.
	HTTPClient *http.Client
	// Telemetry receives request diagnostics. Optional.
	Telemetry TelemetryHooks
	// UserAgent overrides the default SDK user agent.
	UserAgent string
}

// Client provides high-level helpers for interacting with the Bloomify
// storefront API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialStore
	cookies    CookieSource
	telemetry  TelemetryHooks
	userAgent  string

	// Grouped service clients.
	Cart      *CartClient
	Orders    *OrdersClient
	Auth      *AuthClient
	Products  *ProductsClient
	Customers *CustomersClient
	Chatbot   *ChatbotClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	normalized, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Credentials == nil {
		return nil, errors.New("sdk: credential store required")
	}
	cookies := cfg.Cookies
	if cookies == nil {
		cookies = StaticCookies("")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client := &Client{
		baseURL:    normalized,
		httpClient: httpClient,
		creds:      cfg.Credentials,
		cookies:    cookies,
		telemetry:  cfg.Telemetry,
		userAgent:  ua,
	}
	client.Cart = &CartClient{client: client}
	client.Orders = &OrdersClient{client: client}
	client.Auth = &AuthClient{client: client}
	client.Products = &ProductsClient{client: client}
	client.Customers = &CustomersClient{client: client}
	client.Chatbot = &ChatbotClient{client: client}
	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("sdk: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("sdk: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("sdk: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("sdk: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

// newJSONRequest builds an API request. Content-Type is set even on
// bodyless requests; the storefront pages always sent it and the backend
// middleware keys off it.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headers.ContentType, "application/json")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	injectTraceparent(ctx, req)
	return req, nil
}

// prepare stamps the shared headers every outgoing request carries.
func (c *Client) prepare(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set(headers.RequestID, uuid.NewString())
	if cookie := c.cookies.CookieHeader(); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
}

// authorize attaches the session token, when one is stored. Requests sent
// without a token are the backend's problem to reject.
func (c *Client) authorize(req *http.Request) {
	if token, ok := c.creds.SessionToken(); ok {
		req.Header.Set(headers.Authorization, headers.TokenScheme+" "+token)
	}
}

// protect attaches the anti-forgery token, read from the cookie source at
// call time. Never cached: the backend may rotate the cookie between any
// two requests.
func (c *Client) protect(req *http.Request) {
	if token, ok := CSRFToken(c.cookies); ok {
		req.Header.Set(headers.CSRFToken, token)
	}
}

// send dispatches the request once. No retries: every operation is
// fire-once per user action. Non-2xx responses come back as APIError,
// requests that never completed as TransportError.
func (c *Client) send(req *http.Request, op string) (*http.Response, error) {
	c.prepare(req)
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(req.Context(), req)
	}
	c.telemetry.log(req.Context(), LogLevelInfo, "http_request", map[string]any{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(req.Context(), req, resp, err, time.Since(start))
	}
	c.telemetry.metric(req.Context(), "storefront_http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": req.URL.Path,
	})
	if err != nil {
		return nil, TransportError{Op: op, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// decodeJSON drains and closes the response body. A nil out discards the
// body; backends answer some mutations with bodies the client has no use
// for.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
