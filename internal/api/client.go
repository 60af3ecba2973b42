// Package api implements the REST client for the Found & Loss backend.
//
// All error mapping happens at this edge: HTTP statuses are translated to
// the sentinels in internal/errs, backend-provided rejection reasons are
// preserved verbatim in *Error, and anything else (transport failures,
// malformed responses) is returned as-is for callers to surface generically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/foundloss/foundloss/internal/errs"
	"github.com/foundloss/foundloss/internal/model"
)

// Error is a backend rejection (4xx/5xx) with the reason payload, if any,
// carried verbatim for display. It wraps a sentinel from internal/errs when
// the status maps to one.
type Error struct {
	Status int
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// Client issues requests against a backend base URL ending in /api.
// It holds no session state; callers pass the bearer token per call.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, proxies).
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

// New creates a Client for the given base URL. A trailing "/api" is
// appended when missing so both host URLs and full base paths work.
func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	c := &Client{base: base, http: http.DefaultClient, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account and returns the issued token envelope.
func (c *Client) Register(ctx context.Context, profile model.Profile) (model.Token, error) {
	var tok model.Token
	err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, profile, &tok)
	return tok, err
}

// Login authenticates and returns the issued token envelope.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.Token, error) {
	var tok model.Token
	err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, creds, &tok)
	return tok, err
}

// Me resolves the user behind a bearer token.
func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, nil, &u)
	return u, err
}

// ListOptions narrows an item listing request. Zero values mean
// "unconstrained"; the backend applies its own default page size.
type ListOptions struct {
	Type     model.ItemType
	Category string
	Limit    int
	Skip     int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", string(o.Type))
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	return q
}

// ListItems fetches active items matching opts. The response is passed
// through exactly as the backend reported it; no re-filtering here.
func (c *Client) ListItems(ctx context.Context, token string, opts ListOptions) ([]model.Item, error) {
	var items []model.Item
	err := c.do(ctx, http.MethodGet, "/items", token, opts.query(), nil, &items)
	return items, err
}

// GetItem fetches a single item. Returns errs.ErrNotFound for a missing id.
func (c *Client) GetItem(ctx context.Context, token, id string) (model.Item, error) {
	var item model.Item
	err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(id), token, nil, nil, &item)
	return item, err
}

// MyItems fetches the items owned by the token's user, any status.
func (c *Client) MyItems(ctx context.Context, token string) ([]model.Item, error) {
	var items []model.Item
	err := c.do(ctx, http.MethodGet, "/my-items", token, nil, nil, &items)
	return items, err
}

// CreateItem submits a new post and returns the created item.
func (c *Client) CreateItem(ctx context.Context, token string, draft model.ItemDraft) (model.Item, error) {
	var item model.Item
	err := c.do(ctx, http.MethodPost, "/items", token, nil, draft, &item)
	return item, err
}

// UpdateStatus toggles an item between active and resolved. The status
// travels both in the JSON body and the query string; deployed backends
// have read either.
func (c *Client) UpdateStatus(ctx context.Context, token, id string, status model.ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", errs.ErrValidation, status)
	}
	q := url.Values{"status": []string{string(status)}}
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id)+"/status", token, q, body, nil)
}

// ContactOwner requests disclosure of the contact detail for the chosen
// channel. The raw contact info is never embedded in listings; this call is
// the only way to obtain it.
func (c *Client) ContactOwner(ctx context.Context, token string, req model.ContactRequest) (model.ContactResult, error) {
	var res model.ContactResult
	err := c.do(ctx, http.MethodPost, "/contact-owner", token, nil, req, &res)
	return res, err
}

// do performs one request/response cycle. No retries and no client-side
// timeout: cancellation is the caller's ctx, which front-ends scope to the
// initiating view.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, in, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-ID", rid.String())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("dur", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return mapStatus(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mapStatus converts an error response into sentinels plus verbatim detail.
func mapStatus(resp *http.Response) error {
	detail := readDetail(resp.Body)
	apiErr := &Error{Status: resp.StatusCode, Detail: detail}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.cause = errs.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		apiErr.cause = errs.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(detail), "already registered"):
		apiErr.cause = errs.ErrAlreadyExists
	}
	return apiErr
}

// readDetail extracts the backend's {"detail": ...} reason. Structured
// detail payloads (validation error lists) are flattened to their JSON text
// so nothing is lost.
func readDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(b, &env) != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(env.Detail, &s) == nil {
		return s
	}
	return string(env.Detail)
}
