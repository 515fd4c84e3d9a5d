package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bgmsons/internal/catalog"
)

// TokenSource supplies the bearer token attached to authenticated
// requests. An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is a thin JSON wrapper around the catalog REST API. It holds
// no request state beyond the base URL and the token source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
}

// StatusError reports a non-2xx API response, carrying the server's
// message when one was included in the error envelope.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.NotFound()
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Enquiry is the general contact form payload.
type Enquiry struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	ProductInterest string `json:"productInterest"`
	Industry        string `json:"industry"`
	Message         string `json:"message"`
}

// ProductEnquiry is an enquiry tied to one catalog product.
type ProductEnquiry struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	ProductID string `json:"productId"`
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login succeeded but no token was returned")
	}
	return resp.Token, nil
}

// Verify asks the server whether the current bearer token is still
// good. Any error means the session should be treated as dead.
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/admin/verify", nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	var saved catalog.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	var saved catalog.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+p.ID, p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

func (c *Client) SendEnquiry(ctx context.Context, e Enquiry) error {
	return c.do(ctx, http.MethodPost, "/api/mail/send-enquiry", e, nil)
}

func (c *Client) SendProductEnquiry(ctx context.Context, e ProductEnquiry) error {
	return c.do(ctx, http.MethodPost, "/api/mail/send-product-enquiry", e, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			statusErr.Message = envelope.Message
		}
		return statusErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
