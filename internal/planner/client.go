// README: HTTP client for the itinerary API, used by the planner form and the CLI.
package planner

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

	"voyage/internal/modules/checkout"
	"voyage/internal/modules/feed"
	"voyage/internal/modules/itinerary"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsCanceled reports whether err comes from a cancelled or abandoned request.
// Such errors are never shown to the user.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Client talks to a Voyage API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient uses a client with a
// generous timeout, since generation can take a minute or more.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Minute}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// GenerateItinerary posts body verbatim to /api/generate-itinerary.
func (c *Client) GenerateItinerary(ctx context.Context, body []byte) (*itinerary.Itinerary, error) {
	var out struct {
		Itinerary *itinerary.Itinerary `json:"itinerary"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/generate-itinerary", body, &out); err != nil {
		return nil, err
	}
	if out.Itinerary == nil {
		return nil, fmt.Errorf("api response missing itinerary")
	}
	return out.Itinerary, nil
}

// FetchPosts returns social posts for tag.
func (c *Client) FetchPosts(ctx context.Context, tag string) ([]feed.Post, error) {
	var out feed.Response
	path := "/api/get-bluesky-posts?tag=" + url.QueryEscape(tag)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// Checkout starts a checkout for productID and returns the redirect URL.
func (c *Client) Checkout(ctx context.Context, productID string) (string, error) {
	body, _ := json.Marshal(checkout.Request{ProductID: productID})
	var out checkout.Session
	if err := c.do(ctx, http.MethodPost, "/api/stripe-checkout", body, &out); err != nil {
		return "", err
	}
	return out.CheckoutURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &envelope) != nil || envelope.Error == "" {
			envelope.Error = strings.TrimSpace(string(raw))
		}
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
