package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"

	"monitor-swiezosci/internal/models"
	"monitor-swiezosci/internal/session"
)

// Error is a failed backend call: either an error envelope or a non-2xx body.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Client talks to the smart-freshness backend. The bearer token is read from
// the session store on every request, so a login mid-process is picked up
// without rebuilding the client.
type Client struct {
	baseURL   string
	http      *http.Client
	session   *session.Store
	requestID func() string
}

func NewClient(baseURL string, store *session.Store) *Client {
	generateID, err := nanoid.Standard(21)
	if err != nil {
		// Only reachable with an invalid length constant.
		log.Printf("WARN: nanoid generator init failed: %v", err)
		generateID = func() string { return "" }
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		session:   store,
		requestID: generateID,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if id := c.requestID(); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON performs a request and decodes a 2xx response into out (which may be
// nil). Failures come back as *Error with the backend's message when one is
// present.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromBody(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doEnvelope performs a request whose 2xx response is a `{status, data}`
// envelope. An error-status envelope becomes *Error even on HTTP 200.
func (c *Client) doEnvelope(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var envelope models.Envelope
	if err := c.doJSON(ctx, method, path, query, body, &envelope); err != nil {
		return err
	}
	if !envelope.OK() {
		message := envelope.Message
		if message == "" {
			message = "request failed"
		}
		return &Error{Message: message}
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// errorFromBody prefers the backend's envelope message, falling back to the
// raw body text the way the SPA surfaced auth failures.
func errorFromBody(status int, body []byte) *Error {
	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return &Error{StatusCode: status, Message: envelope.Message}
	}
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{StatusCode: status, Message: message}
}
