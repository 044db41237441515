// Package apiclient is a thin JSON client for the contact list REST API.
// Responses are returned as-is: a non-2xx status is data for the caller to
// assert on, never an error.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"contact-list-e2e/internal/models"
)

// Client sends requests relative to the application root and carries the
// session state of one run: the bearer token and the last created contact.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	headers http.Header

	token     string
	contactID string
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. to set a timeout or transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
		headers: http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the bearer token sent with every later request.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// SetContactID remembers the contact later steps of a scenario operate on.
func (c *Client) SetContactID(id string) { c.contactID = id }

func (c *Client) ContactID() string { return c.contactID }

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, payload any) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, payload)
}

func (c *Client) Put(ctx context.Context, path string, payload any) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, payload)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.send(ctx, http.MethodDelete, path, nil)
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) send(ctx context.Context, method, path string, payload any) (*Response, error) {
	url := c.url(path)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s payload: %w", method, url, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, url, err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(raw)),
	)

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

func (c *Client) Register(ctx context.Context, r models.Registration) (*Response, error) {
	return c.Post(ctx, "users", r)
}

func (c *Client) Login(ctx context.Context, cr models.Credentials) (*Response, error) {
	return c.Post(ctx, "users/login", cr)
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "users/me")
}

func (c *Client) Logout(ctx context.Context) (*Response, error) {
	return c.Post(ctx, "users/logout", nil)
}

func (c *Client) AddContact(ctx context.Context, contact models.Contact) (*Response, error) {
	return c.Post(ctx, "contacts", contact)
}

func (c *Client) ListContacts(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "contacts")
}

func (c *Client) GetContact(ctx context.Context, id string) (*Response, error) {
	return c.Get(ctx, "contacts/"+id)
}

func (c *Client) UpdateContact(ctx context.Context, id string, contact models.Contact) (*Response, error) {
	return c.Put(ctx, "contacts/"+id, contact)
}

func (c *Client) DeleteContact(ctx context.Context, id string) (*Response, error) {
	return c.Delete(ctx, "contacts/"+id)
}
