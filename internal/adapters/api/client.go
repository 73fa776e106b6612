package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 10 * time.Second
	defaultUserAgent      = "fc"
	requestIDHeader       = "X-Request-ID"
)

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
	// RateLimit caps outgoing requests per second. Zero disables throttling.
	RateLimit float64
	RateBurst int
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithNotifier(notifier ports.Notifier) Option {
	return func(c *Client) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

func WithObserver(observer ports.RequestObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client sends JSON requests to the foodcook API. It attaches the stored
// bearer token, classifies failures into *domain.APIError, emits one error
// notification per failed request and turns every 401 into a session-expired
// broadcast after clearing the stored session.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	limiter     *rate.Limiter
	credentials ports.Credentials
	notifier    ports.Notifier
	observer    ports.RequestObserver
	log         logrus.FieldLogger

	mu        sync.Mutex
	nextID    int
	onExpired map[int]func(context.Context)
}

var _ ports.Requester = (*Client)(nil)

func NewClient(cfg Config, credentials ports.Credentials, opts ...Option) (*Client, error) {
	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL:     baseURL,
		httpClient:  http.DefaultClient,
		timeout:     timeout,
		userAgent:   userAgent,
		credentials: credentials,
		notifier:    ports.NopNotifier{},
		log:         discard,
		onExpired:   map[int]func(context.Context){},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// OnSessionExpired registers fn to run after a 401 response cleared the
// stored session. Every 401 fires every handler; concurrent expiries are not
// coalesced. The returned func unregisters fn.
func (c *Client) OnSessionExpired(fn func(ctx context.Context)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.onExpired[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.onExpired, id)
	}
}

func (c *Client) Request(ctx context.Context, method string, path string, body any, query url.Values, out any) error {
	started := time.Now()
	err := c.do(ctx, method, path, body, query, out)
	c.observe(method, path, err, time.Since(started))
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		c.expireSession(ctx)
	}
	c.notifier.Notify(domain.Notification{Level: domain.NotificationError, Message: domain.UserMessage(err)})

	return err
}

func (c *Client) do(ctx context.Context, method string, path string, body any, query url.Values, out any) error {
	endpoint := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	// The bearer token is captured here; a logout after this point does not
	// affect the request already being built.
	token := c.bearerToken(ctx)

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(requestCtx); err != nil {
			return &domain.APIError{Kind: domain.KindNetworkUnreachable, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("api request failed")
		return &domain.APIError{Kind: domain.KindNetworkUnreachable, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.APIError{Kind: domain.KindNetworkUnreachable, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	log.WithField("status", resp.StatusCode).Debug("api request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.APIError{
			Kind:    domain.ClassifyStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: serverMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.APIError{
			Kind:    domain.KindOther,
			Status:  resp.StatusCode,
			Message: "invalid response payload",
			Err:     err,
		}
	}

	return nil
}

func (c *Client) bearerToken(ctx context.Context) string {
	if c.credentials == nil {
		return ""
	}

	token, err := c.credentials.Token(ctx)
	if err != nil {
		c.log.WithError(err).Warn("read session token; sending request unauthenticated")
		return ""
	}

	return strings.TrimSpace(token)
}

func (c *Client) expireSession(ctx context.Context) {
	c.log.Warn("session expired; clearing stored credentials")

	if c.credentials != nil {
		if err := c.credentials.Clear(ctx); err != nil {
			c.log.WithError(err).Warn("clear stored session")
		}
	}

	c.mu.Lock()
	handlers := make([]func(context.Context), 0, len(c.onExpired))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.onExpired[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(ctx)
	}
}

func (c *Client) observe(method string, path string, err error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = string(domain.KindOther)
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			outcome = string(apiErr.Kind)
		}
	}

	c.observer.ObserveRequest(method, resourceOf(path), outcome, elapsed)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func serverMessage(data []byte) string {
	result := gjson.GetBytes(data, "error")
	if result.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(result.String())
}

// resourceOf returns the first path segment, e.g. "dishes" for "/dishes/3".
func resourceOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

func parseBaseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	return parsed, nil
}
