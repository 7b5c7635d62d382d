// Package rest is the single point of egress for all backend calls. It
// uniformly attaches the bearer token and the tenant-scope header so that no
// individual caller manages headers; every call is independent and at-most-once
// (no caching, no deduplication, no retries).
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

// TenantHeader scopes a request to one school; a single backend serves
// every tenant and tells them apart by this header alone.
const TenantHeader = "X-School-Slug"

type (
	// TokenSource yields the current bearer token. session.Store satisfies it;
	// reading through it on every request keeps the header fresh even when the
	// token was written after the client was constructed.
	TokenSource interface {
		Token() string
	}

	// LocationFunc reports the app's current path, from which the tenant slug
	// is derived.
	LocationFunc func() string

	Options struct {
		BaseURL  string
		Timeout  time.Duration
		Tokens   TokenSource
		Location LocationFunc
	}

	Client struct {
		base     *url.URL
		http     *http.Client
		tokens   TokenSource
		location LocationFunc
	}
)

type noToken struct{}

func (noToken) Token() string { return "" }

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing base URL %q", opts.BaseURL)
	}
	if opts.Tokens == nil {
		opts.Tokens = noToken{}
	}
	if opts.Location == nil {
		opts.Location = func() string { return "" }
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		base:     base,
		http:     &http.Client{Timeout: opts.Timeout},
		tokens:   opts.Tokens,
		location: opts.Location,
	}, nil
}

// NewRequest builds a fully-formed request from explicit inputs; no hidden
// global reads. The authorization header is set whenever token is non-empty,
// and the tenant header whenever a slug is derivable from location.
func NewRequest(ctx context.Context, method, rawurl string, body io.Reader, token, location string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if slug := TenantSlug(location); slug != "" {
		req.Header.Set(TenantHeader, slug)
	}
	return req, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.call(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.call(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out interface{}) error {
	return c.call(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

// Upload sends a multipart form with one file part plus extra form fields.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrap(err, "copying file")
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return errors.Wrapf(err, "writing field %q", k)
		}
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "closing multipart writer")
	}

	req, err := NewRequest(ctx, http.MethodPost, c.resolve(path), &buf, c.tokens.Token(), c.location())
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshalling request body")
		}
		body = bytes.NewReader(data)
	}

	// the token is read from durable storage on every call; see TokenSource
	req, err := NewRequest(ctx, method, c.resolve(path), body, c.tokens.Token(), c.location())
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "performing request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response body")
	}
	return nil
}

func (c *Client) resolve(path string) string {
	return strings.TrimSuffix(c.base.String(), "/") + path
}

// decodeError extracts the backend's `message` field, falling back to a
// generic message when the body carries none.
func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &body)
	return core.NewAPIError(resp.StatusCode, body.Message)
}
