package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 1 << 20

	apiKeyParam = "appid"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	limiter *rate.Limiter
}

// Response is a completed HTTP exchange.
type Response struct {
	StatusCode int
	// Body is the raw JSON payload, or nil when the payload was empty or not JSON.
	Body []byte
}

// TransportError means the request did not complete, as opposed to completing
// with a non-2xx status.
type TransportError struct {
	// URL is the request URL with the API key redacted.
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type options struct {
	verbose    bool
	logger     *slog.Logger
	timeout    time.Duration
	perMinute  int
	httpClient *http.Client
}

type Option func(*options)

// WithVerbose logs every request and response through logger at debug level.
func WithVerbose(enabled bool, logger *slog.Logger) Option {
	return func(o *options) {
		o.verbose = enabled
		o.logger = logger
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRateLimit caps outgoing requests per minute. Zero disables limiting.
func WithRateLimit(perMinute int) Option {
	return func(o *options) {
		o.perMinute = perMinute
	}
}

// WithHTTPClient replaces the underlying client; its Transport is still
// wrapped for verbose logging.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// loggingRoundTripper emits one line per request and response (including
// latency) with the API key redacted.
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	target := RedactURL(req.URL)
	t.logger.Debug("weather api request", "method", req.Method, "url", target)
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		t.logger.Debug("weather api error", "url", target, "duration", dur, "error", redactError(err, req.URL))
	} else {
		t.logger.Debug("weather api response", "url", target, "status", resp.StatusCode, "duration", dur)
	}
	return resp, err
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("weather client: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("weather client: base URL must be http or https, got %q", baseURL)
	}

	o := &options{timeout: DefaultTimeout}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.logger == nil {
		o.logger = slog.Default()
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	if hc.Timeout == 0 {
		hc.Timeout = o.timeout
	}
	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, logger: o.logger}
	}
	hc.Transport = transport

	c := &Client{BaseURL: baseURL, HTTP: hc}
	if o.perMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(o.perMinute)), 1)
	}
	return c, nil
}

// Get issues a GET to the base URL with query as the query string. Any
// failure to complete the exchange is returned as a *TransportError.
func (c *Client) Get(ctx context.Context, query url.Values) (*Response, error) {
	if ctx == nil {
		return nil, errors.New("weather client: ctx is nil")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("weather client: invalid base URL: %w", err)
	}
	u.RawQuery = query.Encode()
	redacted := RedactURL(u)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: redacted, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: redactError(err, u)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: fmt.Errorf("read body: %w", err)}
	}

	out := &Response{StatusCode: resp.StatusCode}
	if len(raw) > 0 && gjson.ValidBytes(raw) {
		out.Body = raw
	}
	return out, nil
}

// RedactURL renders u with the API key parameter masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if _, ok := q[apiKeyParam]; !ok {
		return u.String()
	}
	q.Set(apiKeyParam, "REDACTED")
	cp := *u
	cp.RawQuery = q.Encode()
	return cp.String()
}

// redactError strips the request URL that net/http embeds in *url.Error so
// the API key never reaches logs or reports.
func redactError(err error, u *url.URL) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	if u != nil {
		if key := u.Query().Get(apiKeyParam); key != "" && strings.Contains(err.Error(), key) {
			return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
		}
	}
	return err
}
