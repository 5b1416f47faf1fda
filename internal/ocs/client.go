package ocs

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	ierr "github.com/teltrip/ocsreport/internal/errors"
	"github.com/teltrip/ocsreport/internal/httpclient"
	"github.com/teltrip/ocsreport/internal/logger"
)

// codec decodes numbers as json.Number so large byte counters and money
// amounts survive without float rounding.
var codec = jsoniter.Config{UseNumber: true, EscapeHTML: true, SortMapKeys: true}.Froze()

// maxBodyExcerpt bounds how much of an upstream error body gets attached to
// the returned error.
const maxBodyExcerpt = 300

// Response is the outcome of a single OCS call. Some tenants answer valid
// requests with an empty or non-JSON body, so emptiness is a marker on the
// response rather than an error.
type Response struct {
	StatusCode int
	Data       map[string]any
	Empty      bool
	Raw        string
}

// Client is the single chokepoint for calls to the external OCS endpoint.
// The upstream multiplexes every operation through one URL: the request body
// is {operationName: params} and the auth token rides as a query parameter.
type Client interface {
	Call(ctx context.Context, operation string, params any) (*Response, error)
}

// ClientConfig holds the upstream endpoint settings
type ClientConfig struct {
	BaseURL           string
	Token             string
	RequestTimeout    time.Duration
	RequestsPerSecond int
}

type client struct {
	http    httpclient.Client
	cfg     ClientConfig
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewClient creates an OCS client over the given HTTP transport. When
// RequestsPerSecond is positive a shared rate limiter throttles all calls,
// which matters at the O(subscribers x windows) call volume a report drives.
func NewClient(http httpclient.Client, cfg ClientConfig, log *logger.Logger) Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 25 * time.Second
	}
	return &client{
		http:    http,
		cfg:     cfg,
		limiter: limiter,
		log:     log,
	}
}

func (c *client) Call(ctx context.Context, operation string, params any) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Rate limiter wait aborted").
				Mark(ierr.ErrUpstreamTimeout)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	body, err := codec.Marshal(map[string]any{operation: params})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize OCS request body").
			Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: "POST",
		URL:    c.cfg.BaseURL + "?token=" + url.QueryEscape(c.cfg.Token),
		Body:   body,
	})
	if err != nil {
		return nil, c.translateError(operation, err)
	}

	parsed := parseResponse(resp)
	c.log.Debugw("ocs call", "operation", operation, "status", parsed.StatusCode, "empty", parsed.Empty)
	return parsed, nil
}

// translateError maps transport failures onto the upstream error taxonomy.
func (c *client) translateError(operation string, err error) error {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		return ierr.NewError("ocs returned non-2xx status").
			WithHintf("operation %s failed with HTTP %d", operation, httpErr.StatusCode).
			WithReportableDetails(map[string]any{
				"operation": operation,
				"status":    httpErr.StatusCode,
				"body":      excerpt(httpErr.Response),
			}).
			Mark(ierr.ErrUpstreamHTTP)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ierr.WithError(err).
			WithHintf("operation %s timed out after %s", operation, c.cfg.RequestTimeout).
			Mark(ierr.ErrUpstreamTimeout)
	}

	return ierr.WithError(err).
		WithHintf("operation %s failed", operation).
		Mark(ierr.ErrUpstreamHTTP)
}

// parseResponse reads the body as text first and only then attempts
// structured parsing. Empty and non-JSON bodies come back as an explicit
// marker because some tenants answer valid-but-empty results that way.
func parseResponse(resp *httpclient.Response) *Response {
	out := &Response{StatusCode: resp.StatusCode, Raw: string(resp.Body)}
	if len(resp.Body) == 0 {
		out.Empty = true
		return out
	}

	var data map[string]any
	if err := codec.Unmarshal(resp.Body, &data); err != nil || data == nil {
		out.Empty = true
		return out
	}
	out.Data = data
	return out
}

func excerpt(b []byte) string {
	if len(b) > maxBodyExcerpt {
		return string(b[:maxBodyExcerpt])
	}
	return string(b)
}
