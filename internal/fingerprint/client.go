package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external fingerprint capture service. The scanner
// protocol is the service's business; responses are passed through opaque.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Result is the envelope every scanner endpoint answers with.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Capture asks the scanner to capture a fingerprint for enrollment.
func (c *Client) Capture(ctx context.Context, employeeID uint) (*Result, error) {
	return c.post(ctx, "/capture", map[string]any{"employee_id": employeeID})
}

// Verify asks the scanner to match a live fingerprint against the enrolled
// template for the employee.
func (c *Client) Verify(ctx context.Context, employeeID uint) (*Result, error) {
	return c.post(ctx, "/verify", map[string]any{"employee_id": employeeID})
}

// Identify asks the scanner to match a live fingerprint against every
// enrolled template and name the employee.
func (c *Client) Identify(ctx context.Context) (*Result, error) {
	return c.post(ctx, "/identify", nil)
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) (*Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fingerprint service unreachable: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("fingerprint service returned invalid response: %w", err)
	}
	return &result, nil
}
