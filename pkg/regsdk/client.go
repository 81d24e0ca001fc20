package regsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small HTTP client for the registry API. Construct it with
// New and authenticate calls with WithToken.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the registry at baseURL (e.g.
// "http://localhost:8080"). A trailing slash is tolerated.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken returns a copy of the client that sends the given bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// WithHTTPClient returns a copy using a custom *http.Client, mostly for
// tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	clone := *c
	clone.http = h
	return &clone
}

// ListClients returns the OAuth2 client registrations owned by userID.
func (c *Client) ListClients(ctx context.Context, userID string) (ListClientsResponse, error) {
	var out ListClientsResponse
	err := c.do(ctx, http.MethodGet, "/v1/users/"+userID+"/clients", nil, &out)
	return out, err
}

// CreateClient registers a new OAuth2 client for userID. The response
// carries the plaintext secret exactly once.
func (c *Client) CreateClient(
	ctx context.Context,
	userID string,
	req CreateClientRequest,
) (CreateClientResponse, error) {
	var out CreateClientResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/"+userID+"/clients", req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("regsdk: encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("regsdk: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("regsdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("regsdk: decode response: %w", err)
		}
	}

	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Description = body.ErrorDescription
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
