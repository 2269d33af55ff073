package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIKeyHeader carries the optional backend API key
const APIKeyHeader = "X-API-Key"

// Preview is a successfully fetched SVG preview
type Preview struct {
	Body               []byte
	ContentType        string
	ContentDisposition string
}

// Client talks to one wallpaper backend
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL, e.g.
// http://127.0.0.1:8000 or https://example.org/proxy when the backend sits
// under a path prefix. A nil httpClient means a default client without
// timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("API base URL must start with http:// or https://")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    u,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}, nil
}

// Resolve turns a relative endpoint URL into an absolute one. Rooted paths
// such as /hanja-api/wallpaper are joined onto the base URL's path.
func (c *Client) Resolve(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", ref, err)
	}
	if r.IsAbs() || r.Host != "" || !strings.HasPrefix(r.Path, "/") {
		return c.baseURL.ResolveReference(r).String(), nil
	}

	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + r.Path
	u.RawPath = ""
	u.RawQuery = r.RawQuery
	u.Fragment = r.Fragment
	return u.String(), nil
}

// APIRoot returns the absolute URL of the API prefix, as baked into shortcuts
func (c *Client) APIRoot() string {
	root, _ := c.Resolve(APIPrefix)
	return root
}

// Get issues a GET for a relative endpoint URL. Non-2xx responses are
// closed and reported as *StatusError.
func (c *Client) Get(ctx context.Context, ref string) (*http.Response, error) {
	target, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, URL: target}
	}
	return resp, nil
}

// FetchPreview fetches an SVG preview and reads the whole body
func (c *Client) FetchPreview(ctx context.Context, ref string) (*Preview, error) {
	resp, err := c.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read preview body: %w", err)
	}

	return &Preview{
		Body:               body,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}

// Models fetches the device models the backend can render for
func (c *Client) Models(ctx context.Context) ([]DeviceModel, error) {
	resp, err := c.Get(ctx, ModelsPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string][2]int
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode models: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("backend returned no models")
	}

	return modelsFromMap(raw), nil
}
