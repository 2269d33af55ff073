package wallpaper

import (
	"context"
	"net/http"
	"sync"
)

// Backend holds the client for the currently configured backend. Settings
// changes swap the client; requests in flight keep the one they started with.
type Backend struct {
	mu     sync.RWMutex
	client *Client
}

// NewBackend wraps an initial client
func NewBackend(c *Client) *Backend {
	return &Backend{client: c}
}

// Client returns the current client
func (b *Backend) Client() *Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.client
}

// Reconfigure replaces the client. On error the previous client stays active.
func (b *Backend) Reconfigure(baseURL, apiKey string, httpClient *http.Client) error {
	c, err := NewClient(baseURL, apiKey, httpClient)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.client = c
	b.mu.Unlock()
	return nil
}

// FetchPreview fetches a preview through the current client
func (b *Backend) FetchPreview(ctx context.Context, ref string) (*Preview, error) {
	return b.Client().FetchPreview(ctx, ref)
}

// Get issues a GET through the current client
func (b *Backend) Get(ctx context.Context, ref string) (*http.Response, error) {
	return b.Client().Get(ctx, ref)
}
