// Package api implements the typed HTTP client for the Codex POS service.
//
// One transport convention applies to every call: request and response
// bodies are JSON, authenticated calls attach "Authorization: Bearer" from
// the credential store, a 204 response is an empty success, any non-2xx
// status surfaces its body text as the error, and a 401 erases the stored
// credential before the error propagates.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CredentialStore is the slice of the credential store the client needs:
// reading the current token for auth injection and erasing the credential
// when the server reports it invalid. The client never writes a credential.
type CredentialStore interface {
	// Token returns the stored access token, or ok=false when signed out.
	Token() (token string, ok bool)

	// Clear erases the stored credential. Must be safe to call when no
	// credential exists.
	Clear() error
}

// Client talks to the POS service. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialStore
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a POS API client rooted at baseURL.
// Returns an error if baseURL is empty or unparseable.
func NewClient(baseURL string, creds CredentialStore, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api base URL cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil and the response has a body). All transport conventions live here
// so endpoint methods stay one-liners.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The token is no longer valid anywhere in the system, so the
		// credential is erased before the error propagates.
		if clearErr := c.creds.Clear(); clearErr != nil {
			return fmt.Errorf("failed to clear credential after 401: %w", clearErr)
		}
		return &StatusError{
			StatusCode: http.StatusUnauthorized,
			Message:    readErrorBody(resp),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    readErrorBody(resp),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// readErrorBody extracts the error message from a failed response: the body
// text when present, the HTTP status text otherwise.
func readErrorBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(data))
	if err != nil || msg == "" {
		return http.StatusText(resp.StatusCode)
	}
	return msg
}

// Login authenticates with email and password. The call itself is
// unauthenticated; on success the caller is responsible for saving the
// returned credential.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the principal the stored token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products lists catalog products, optionally filtered by a search query.
func (c *Client) Products(ctx context.Context, query string) ([]Product, error) {
	path := "/api/products"
	if query != "" {
		path += "?query=" + url.QueryEscape(query)
	}
	var out []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductCreate is the payload for creating a catalog product.
type ProductCreate struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
	Price      string `json:"price"`
	IsActive   bool   `json:"is_active"`
}

// ProductUpdate is a partial update; nil fields are omitted from the PATCH.
type ProductUpdate struct {
	Name       *string `json:"name,omitempty"`
	CategoryID *int    `json:"category_id,omitempty"`
	Price      *string `json:"price,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// CreateProduct adds a product to the catalog (admin only).
func (c *Client) CreateProduct(ctx context.Context, in ProductCreate) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/api/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct applies a partial update to a product (admin only).
func (c *Client) UpdateProduct(ctx context.Context, id int, in ProductUpdate) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPatch, "/api/products/"+strconv.Itoa(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product from the catalog (admin only).
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+strconv.Itoa(id), nil, nil)
}

// Categories lists product categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryCreate is the payload for creating a category.
type CategoryCreate struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CategoryUpdate is a partial update; nil fields are omitted from the PATCH.
type CategoryUpdate struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CreateCategory adds a category (admin only).
func (c *Client) CreateCategory(ctx context.Context, in CategoryCreate) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory applies a partial update to a category (admin only).
func (c *Client) UpdateCategory(ctx context.Context, id int, in CategoryUpdate) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPatch, "/api/categories/"+strconv.Itoa(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category (admin only).
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+strconv.Itoa(id), nil, nil)
}

// Inventory lists stock levels for all products (admin only).
func (c *Client) Inventory(ctx context.Context) ([]Inventory, error) {
	var out []Inventory
	if err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetInventory sets the stock level for one product (admin only).
func (c *Client) SetInventory(ctx context.Context, productID, quantity int) (*Inventory, error) {
	var out Inventory
	body := map[string]int{"quantity": quantity}
	if err := c.do(ctx, http.MethodPatch, "/api/inventory/"+strconv.Itoa(productID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits one atomic order-creation request. The server prices
// the lines and returns the persisted order.
func (c *Client) CreateOrder(ctx context.Context, items []OrderItemInput) (*Order, error) {
	var out Order
	body := map[string][]OrderItemInput{"items": items}
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists recent orders, newest first. A limit of 0 uses the server
// default.
func (c *Client) Orders(ctx context.Context, limit int) ([]Order, error) {
	path := "/api/orders"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []Order
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Order fetches a single order by ID.
func (c *Client) Order(ctx context.Context, id int) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyReport fetches the sales report for a day (admin only). An empty
// date means today on the server.
func (c *Client) DailyReport(ctx context.Context, date string) (*DailyReport, error) {
	path := "/api/reports/daily"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out DailyReport
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
