package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// User mirrors the API's user JSON shape.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PageResult is the decoded pagination envelope of GET /users.
type PageResult struct {
	Users      []User `json:"users"`
	NextCursor *int64 `json:"nextCursor"`
	HasMore    bool   `json:"hasMore"`
	Count      int    `json:"count"`
}

type searchResult struct {
	Results []User `json:"results"`
	Count   int    `json:"count"`
}

type createResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type errorBody struct {
	Error string `json:"error"`
}

// APIError is a non-success response from the directory API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client is a thin HTTP client for the directory API. The base URL is
// injected, never hardcoded.
type Client struct {
	http *resty.Client
}

// New creates a Client against the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Page fetches one listing page. A nil cursor requests the first page.
func (c *Client) Page(ctx context.Context, cursor *int64, limit int) (*PageResult, error) {
	var out PageResult
	var apiErr errorBody

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		SetError(&apiErr)
	if cursor != nil {
		req.SetQueryParam("cursor", strconv.FormatInt(*cursor, 10))
	}

	resp, err := req.Get("/users")
	if err != nil {
		return nil, fmt.Errorf("fetch users page: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}

	return &out, nil
}

// Search fetches up to limit users whose name matches query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]User, error) {
	var out searchResult
	var apiErr errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		SetError(&apiErr).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}

	return out.Results, nil
}

// Create submits a new user and returns the id the store assigned.
func (c *Client) Create(ctx context.Context, name, email string) (int64, error) {
	var out createResult
	var apiErr errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name, "email": email}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/users")
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	if resp.IsError() {
		return 0, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}

	return out.ID, nil
}
