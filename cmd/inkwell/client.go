package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inkwell-blog/inkwell/pkg/types"
)

// Client talks to a running content server.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client rooted at the given API base,
// e.g. "http://127.0.0.1:3030/api/v1".
func NewClient(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func collection(kind types.Kind) string {
	if kind == types.KindPage {
		return "pages"
	}
	return "posts"
}

// Create submits a new document and returns the stored row.
func (c *Client) Create(ctx context.Context, payload types.NewPost) (*types.Post, error) {
	url := fmt.Sprintf("%s/%s", c.base, collection(types.Kind(payload.Kind)))
	var post types.Post
	if err := c.do(ctx, http.MethodPost, url, payload, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListMeta fetches listing previews for a kind, drafts included.
func (c *Client) ListMeta(ctx context.Context, kind types.Kind) ([]types.PostMeta, error) {
	url := fmt.Sprintf("%s/%s/all/meta", c.base, collection(kind))
	var metas []types.PostMeta
	if err := c.do(ctx, http.MethodGet, url, nil, &metas); err != nil {
		return nil, err
	}
	return metas, nil
}

// View fetches a single row by uid.
func (c *Client) View(ctx context.Context, kind types.Kind, uid string) (*types.Post, error) {
	url := fmt.Sprintf("%s/%s/uid/%s", c.base, collection(kind), uid)
	var post types.Post
	if err := c.do(ctx, http.MethodGet, url, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies a partial update to a row by uid.
func (c *Client) Update(ctx context.Context, kind types.Kind, uid string, changes types.UpdatePost) (*types.Post, error) {
	url := fmt.Sprintf("%s/%s/uid/%s", c.base, collection(kind), uid)
	var post types.Post
	if err := c.do(ctx, http.MethodPut, url, changes, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a row by uid and returns its last stored state.
func (c *Client) Delete(ctx context.Context, kind types.Kind, uid string) (*types.Post, error) {
	url := fmt.Sprintf("%s/%s/uid/%s", c.base, collection(kind), uid)
	var post types.Post
	if err := c.do(ctx, http.MethodDelete, url, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, bytes.TrimSpace(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
