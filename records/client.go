package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"werkzeug_dashboard/config"
	"werkzeug_dashboard/models"
)

// Observer 接收每次后端调用的结果（metrics.Collector 实现）
type Observer interface {
	ObserveBackend(collection, method string, status int, d time.Duration)
}

type Options struct {
	BaseURL    string
	CookieName string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
	Logger     *slog.Logger
}

// Client 后端 REST 接口的 CRUD 封装，五个集合各一个 Collection
type Client struct {
	baseURL    string
	cookieName string
	http       *http.Client
	obs        Observer
	logger     *slog.Logger
	cols       config.Collections

	Locations *Collection[models.LocationFields]
	Employees *Collection[models.EmployeeFields]
	Tools     *Collection[models.ToolFields]
	Checkouts *Collection[models.CheckoutFields]
	Returns   *Collection[models.ReturnFields]
}

func New(cols config.Collections, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := opts.BaseURL
	if base == "" {
		base = config.DefaultAPIBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		cookieName: opts.CookieName,
		http:       hc,
		obs:        opts.Observer,
		logger:     logger,
		cols:       cols,
	}
	c.Locations = newCollection[models.LocationFields](c, "lagerorte", cols.Lagerorte)
	c.Employees = newCollection[models.EmployeeFields](c, "mitarbeiter", cols.Mitarbeiter)
	c.Tools = newCollection[models.ToolFields](c, "werkzeuge", cols.Werkzeuge)
	c.Checkouts = newCollection[models.CheckoutFields](c, "werkzeugausgabe", cols.Werkzeugausgabe)
	c.Returns = newCollection[models.ReturnFields](c, "werkzeugrueckgabe", cols.Werkzeugrueckgabe)
	return c
}

// 引用字段构造

func (c *Client) LocationRef(id string) *models.Ref {
	return models.NewRef(c.baseURL, c.cols.Lagerorte, id)
}
func (c *Client) EmployeeRef(id string) *models.Ref {
	return models.NewRef(c.baseURL, c.cols.Mitarbeiter, id)
}
func (c *Client) ToolRef(id string) *models.Ref {
	return models.NewRef(c.baseURL, c.cols.Werkzeuge, id)
}
func (c *Client) CheckoutRef(id string) *models.Ref {
	return models.NewRef(c.baseURL, c.cols.Werkzeugausgabe, id)
}

// 看板需要的五个列表

func (c *Client) ListLocations(ctx context.Context) ([]models.Location, error) {
	return c.Locations.List(ctx)
}
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return c.Employees.List(ctx)
}
func (c *Client) ListTools(ctx context.Context) ([]models.Tool, error) {
	return c.Tools.List(ctx)
}
func (c *Client) ListCheckouts(ctx context.Context) ([]models.Checkout, error) {
	return c.Checkouts.List(ctx)
}
func (c *Client) ListReturns(ctx context.Context) ([]models.Return, error) {
	return c.Returns.List(ctx)
}

func (c *Client) CreateCheckout(ctx context.Context, f models.CheckoutFields) (json.RawMessage, error) {
	return c.Checkouts.Create(ctx, f)
}
func (c *Client) CreateReturn(ctx context.Context, f models.ReturnFields) (json.RawMessage, error) {
	return c.Returns.Create(ctx, f)
}

// Error 非 2xx 响应。后端错误不区分类型，Error() 就是响应体原文
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return e.Body
}

func (c *Client) observe(collection, method string, status int, d time.Duration) {
	if c.obs != nil {
		c.obs.ObserveBackend(collection, method, status, d)
	}
}

type credentialKey struct{}

// WithCredential 把后端会话凭据放进 ctx，之后的请求都会带上
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

func CredentialFrom(ctx context.Context) string {
	v, _ := ctx.Value(credentialKey{}).(string)
	return v
}

func (c *Client) do(ctx context.Context, collection, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cred := CredentialFrom(ctx); cred != "" && c.cookieName != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: cred})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(collection, method, 0, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.observe(collection, method, resp.StatusCode, elapsed)
	c.logger.Debug("backend request",
		"collection", collection,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
