// Package api talks to the TekTune article REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tesso57/tektune/internal/domain/article"
)

const jsonAcceptHeader = "application/json"

type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", jsonAcceptHeader)
	}
	if t.userAgent != "" && clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	return base.RoundTrip(clone)
}

// Client is an article store backed by the REST API.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is wrapped
// so every request still carries the JSON Accept header.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3600/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		userAgent: "TekTune/1.0",
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := &http.Client{}
	if c.http != nil {
		copied := *c.http
		hc = &copied
	}
	hc.Transport = headerTransport{base: hc.Transport, userAgent: c.userAgent}
	c.http = hc
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

type articlePayload struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	DisplayTitle string `json:"displayTitle,omitempty"`
}

type statusPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Slug    string `json:"slug,omitempty"`
	URL     string `json:"url,omitempty"`
}

// List returns all article titles as ordered by the server.
func (c *Client) List(ctx context.Context) ([]string, error) {
	const op = "list articles"
	resp, err := c.do(ctx, http.MethodGet, "/articles", nil, "")
	if err != nil {
		return nil, &article.NetworkError{Op: op, Err: err}
	}
	defer closeBody(resp)

	if !ok(resp.StatusCode) {
		return nil, &article.NetworkError{Op: op, Status: resp.StatusCode}
	}
	var titles []string
	if err := json.NewDecoder(resp.Body).Decode(&titles); err != nil {
		return nil, &article.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// Get fetches one article by title.
func (c *Client) Get(ctx context.Context, title string) (article.Article, error) {
	const op = "get article"
	resp, err := c.do(ctx, http.MethodGet, articlePath(title), nil, "")
	if err != nil {
		return article.Article{}, &article.NetworkError{Op: op, Err: err}
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return article.Article{}, &article.NotFoundError{Key: title}
	case !ok(resp.StatusCode):
		return article.Article{}, &article.NetworkError{Op: op, Status: resp.StatusCode}
	}
	var payload articlePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return article.Article{}, &article.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Title == "" {
		payload.Title = title
	}
	return article.New(payload.Title, payload.Content), nil
}

// Create stores a new article and returns its identity key.
func (c *Client) Create(ctx context.Context, title, content string) (string, error) {
	body := articlePayload{Title: title, Content: content, DisplayTitle: title}
	return c.write(ctx, "create article", http.MethodPost, "/articles", title, body)
}

// Update replaces an article, renaming it when newTitle differs from oldTitle.
func (c *Client) Update(ctx context.Context, oldTitle, newTitle, content string) (string, error) {
	body := articlePayload{Title: newTitle, Content: content, DisplayTitle: newTitle}
	slug, err := c.write(ctx, "update article", http.MethodPut, articlePath(oldTitle), newTitle, body)
	var notFound *article.NotFoundError
	if errors.As(err, &notFound) {
		notFound.Key = oldTitle
	}
	return slug, err
}

// Delete removes an article.
func (c *Client) Delete(ctx context.Context, title string) error {
	const op = "delete article"
	resp, err := c.do(ctx, http.MethodDelete, articlePath(title), nil, "")
	if err != nil {
		return &article.NetworkError{Op: op, Err: err}
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &article.NotFoundError{Key: title}
	case !ok(resp.StatusCode):
		return &article.NetworkError{Op: op, Status: resp.StatusCode, Err: errorMessage(resp)}
	}
	return nil
}

// UploadImage uploads an image into scope and returns its URL.
// Servers without scoped uploads are retried on the unscoped endpoint.
func (c *Client) UploadImage(ctx context.Context, scope, filename string, data io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", &article.UploadError{Err: fmt.Errorf("read image: %w", err)}
	}

	paths := []string{"/images/" + url.PathEscape(scope), "/images"}
	if scope == "" {
		paths = paths[1:]
	}
	var lastErr error
	for _, path := range paths {
		link, err := c.upload(ctx, path, filename, buf.Bytes())
		var uploadErr *article.UploadError
		if errors.As(err, &uploadErr) && uploadErr.EndpointMissing {
			lastErr = err
			continue
		}
		return link, err
	}
	return "", lastErr
}

func (c *Client) upload(ctx context.Context, path, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", &article.UploadError{Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return "", &article.UploadError{Err: err}
	}
	if err := form.Close(); err != nil {
		return "", &article.UploadError{Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, path, &body, form.FormDataContentType())
	if err != nil {
		return "", &article.UploadError{Err: &article.NetworkError{Op: "upload image", Err: err}}
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return "", &article.UploadError{Status: resp.StatusCode, EndpointMissing: true}
	}
	var payload statusPayload
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)
	switch {
	case !ok(resp.StatusCode):
		return "", &article.UploadError{Status: resp.StatusCode, Message: payload.Error}
	case decodeErr != nil:
		return "", &article.UploadError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	case !payload.Success || payload.URL == "":
		return "", &article.UploadError{Status: resp.StatusCode, Message: payload.Error}
	}
	return payload.URL, nil
}

// ResolveURL turns a server-relative reference such as /images/a.png into an
// absolute URL on the API host.
func (c *Client) ResolveURL(ref string) string {
	target, err := url.Parse(ref)
	if err != nil || target.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(target).String()
}

func (c *Client) write(ctx context.Context, op, method, path, title string, payload articlePayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", op, err)
	}
	resp, err := c.do(ctx, method, path, bytes.NewReader(raw), "application/json")
	if err != nil {
		return "", &article.NetworkError{Op: op, Err: err}
	}
	defer closeBody(resp)

	var status statusPayload
	decodeErr := json.NewDecoder(resp.Body).Decode(&status)
	switch {
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		msg := status.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &article.ValidationError{Field: "title", Message: msg}
	case resp.StatusCode == http.StatusNotFound:
		return "", &article.NotFoundError{Key: title}
	case !ok(resp.StatusCode):
		return "", &article.NetworkError{Op: op, Status: resp.StatusCode}
	case decodeErr == nil && !status.Success && status.Error != "":
		return "", &article.ValidationError{Field: "title", Message: status.Error}
	}
	if status.Slug != "" {
		return status.Slug, nil
	}
	return article.Slug(title), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		resp, err := c.send(ctx, method, path, body, contentType)
		if err != nil {
			cancel()
			return nil, err
		}
		resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}
	return c.send(ctx, method, path, body, contentType)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "err", err)
		return nil, err
	}
	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func articlePath(title string) string {
	return "/articles/" + url.PathEscape(article.Slug(title))
}

func errorMessage(resp *http.Response) error {
	var status statusPayload
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil || status.Error == "" {
		return nil
	}
	return errors.New(status.Error)
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
