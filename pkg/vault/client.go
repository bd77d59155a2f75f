// Package vault talks to the remote key-value store used for account state
// snapshots. The store is an opaque get/put blob service keyed by account
// identity; the client never interprets the payload beyond JSON coding.
package vault

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

var ErrNotFound = errors.New("vault key not found")

type Client struct {
	client  *http.Client
	baseURL string
	bucket  string
}

func NewClient(baseURL, bucket string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

// KeyForEmail derives the vault key for an account the same way the store
// has always been keyed: sanitized email wrapped in the vault markers.
func KeyForEmail(email string) string {
	sanitized := strings.NewReplacer("@", "_", ".", "_").Replace(strings.ToLower(strings.TrimSpace(email)))
	return "vault_" + sanitized + "_master"
}

func (c *Client) url(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.bucket, key)
}

// Put stores value as JSON under key, overwriting any previous blob.
func (c *Client) Put(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal vault payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(key), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("vault put: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("vault put: unexpected status %s", resp.Status)
	}
	return nil
}

// Get reads the blob stored under key into out.
func (c *Client) Get(ctx context.Context, key string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(key), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("vault get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("vault get: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode vault payload: %w", err)
	}
	return nil
}
