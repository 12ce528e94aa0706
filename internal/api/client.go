package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"

	"github.com/tajerhq/vendorctl/internal/logger"
	"github.com/tajerhq/vendorctl/internal/storage"
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com/api
	BaseURL string

	// Timeout applies per request. Defaults to 30s.
	Timeout time.Duration

	// CacheDir enables disk-backed response caching for cacheable GETs
	// (dashboard aggregates). Empty uses an in-memory cache.
	CacheDir string

	// OnAuthExpired is called when a 401 could not be recovered by the
	// one-shot refresh; the caller must return to the login flow.
	OnAuthExpired func()

	Logger zerolog.Logger
}

// Client is the HTTP adapter for the backend. All calls go through a
// transport that attaches the stored bearer token and language preference and
// transparently performs the one-shot refresh-and-replay on 401.
type Client struct {
	baseURL string
	http    *http.Client
	cached  *http.Client
	log     zerolog.Logger
}

// New creates a backend client over the given state store.
func New(cfg Config, store *storage.Store) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	base := logger.NewHTTPRequests(cfg.Logger, gzhttp.Transport(http.DefaultTransport))
	auth := &authTransport{
		next:          base,
		store:         store,
		baseURL:       baseURL,
		onAuthExpired: cfg.OnAuthExpired,
		log:           cfg.Logger,
	}

	var cache httpcache.Cache = httpcache.NewMemoryCache()
	if cfg.CacheDir != "" {
		cache = diskcache.New(cfg.CacheDir)
	}
	caching := httpcache.NewTransport(cache)
	caching.Transport = auth

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Transport: auth, Timeout: cfg.Timeout},
		cached:  &http.Client{Transport: caching, Timeout: cfg.Timeout},
		log:     cfg.Logger,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.http, http.MethodGet, path, query, nil, out)
}

// getCached is used for aggregate endpoints that send cache headers.
func (c *Client) getCached(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.cached, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, c.http, http.MethodPost, path, query, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, c.http, http.MethodPut, path, query, body, out)
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// postMultipart sends a multipart form built by the given function.
func (c *Client) postMultipart(ctx context.Context, method, path string, build func(w *multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// getBytes fetches a raw payload (exports).
func (c *Client) getBytes(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return data, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
