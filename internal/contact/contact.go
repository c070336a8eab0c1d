// Package contact is the client side of the mail relay: the message the
// contact form submits and the HTTP call that delivers it.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrMissingFields is returned when a message lacks a name, email or body.
var ErrMissingFields = errors.New("all fields are required")

// Message is the relay's request body.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Trimmed returns m with surrounding whitespace removed from every field.
func (m Message) Trimmed() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Message: strings.TrimSpace(m.Message),
	}
}

// Validate reports ErrMissingFields if any field is blank.
func (m Message) Validate() error {
	t := m.Trimmed()
	if t.Name == "" || t.Email == "" || t.Message == "" {
		return ErrMissingFields
	}
	return nil
}

// Reply is the relay's response body. Exactly one field is set.
type Reply struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RelayError is a non-2xx answer from the relay.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay returned %d: %s", e.Status, e.Message)
}

// DefaultTimeout bounds one submission.
const DefaultTimeout = 10 * time.Second

// Client posts messages to a relay. It never retries.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the relay at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Send submits m and returns the relay's success text.
func (c *Client) Send(ctx context.Context, m Message) (string, error) {
	m = m.Trimmed()
	if err := m.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/contact", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	var reply Reply
	jsonErr := json.Unmarshal(raw, &reply)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := reply.Error
		if jsonErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &RelayError{Status: resp.StatusCode, Message: msg}
	}
	if jsonErr != nil {
		return "", fmt.Errorf("decode reply: %w", jsonErr)
	}
	return reply.Success, nil
}
