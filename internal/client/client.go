// Package client talks to the catalog REST API over HTTP/JSON.
package client

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

	"github.com/mrlokans/bookshelf/internal/entities"
)

const defaultTimeout = 10 * time.Second

// Payload is the request body for create and update calls. The server
// ignores Favorite on create.
type Payload struct {
	Title    string `json:"title"`
	Year     *int   `json:"year"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Favorite bool   `json:"favorite"`
}

// StatusError is returned for any non-2xx API response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog API returned HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the API answered 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether the API answered 400.
func IsValidation(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest
}

// Client interfaces with the /api/books endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (tests use the one from httptest).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API rooted at baseURL, e.g. "http://127.0.0.1:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	if err := c.do(ctx, http.MethodGet, c.booksURL(""), nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Create adds a new book.
func (c *Client) Create(ctx context.Context, p Payload) (*entities.Book, error) {
	var book entities.Book
	if err := c.do(ctx, http.MethodPost, c.booksURL(""), p, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Update replaces every mutable field of a book.
func (c *Client) Update(ctx context.Context, id string, p Payload) (*entities.Book, error) {
	var book entities.Book
	if err := c.do(ctx, http.MethodPut, c.booksURL(id), p, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.booksURL(id), nil, nil)
}

func (c *Client) booksURL(id string) string {
	if id == "" {
		return c.baseURL + "/books"
	}
	return c.baseURL + "/books/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(raw))
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
