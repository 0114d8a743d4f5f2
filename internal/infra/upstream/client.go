package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stamp-rally/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "stamp-rally/upstream"

// maxErrorBody bounds how much of an error response is read looking for "detail".
const maxErrorBody = 64 << 10

// Client talks to one upstream base URL. Every call gets a client span and carries the trace
// context in its headers.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tracer     trace.Tracer
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream url %q must be absolute", baseURL)
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		tracer:  otel.Tracer(tracerName),
		metrics: m,
		logger:  logger,
	}, nil
}

type request struct {
	op          string
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func (c *Client) getJSON(ctx context.Context, op, path, token string, out any) error {
	return c.do(ctx, request{op: op, method: http.MethodGet, path: path, token: token}, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path, token string, in, out any) error {
	req := request{op: op, method: method, path: path, token: token}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindBadRequest, Op: op, err: err}
		}
		req.body = bytes.NewReader(payload)
		req.contentType = "application/json"
	}
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := c.baseURL.JoinPath(r.path)
	// JoinPath drops trailing slashes the upstream routes depend on
	if strings.HasSuffix(r.path, "/") && !strings.HasSuffix(endpoint.Path, "/") {
		endpoint.Path += "/"
	}

	ctx, span := c.tracer.Start(ctx, "upstream."+r.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		c.metrics.UpstreamDuration.WithLabelValues(r.op, statusClass(status)).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), r.body)
	if err != nil {
		span.RecordError(err)
		return &Error{Kind: KindBadRequest, Op: r.op, err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	span.SetAttributes(
		attribute.String("http.method", r.method),
		attribute.String("http.url", endpoint.String()),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &Error{Kind: KindRemoteUnavailable, Op: r.op, err: err}
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		upErr := &Error{Kind: kindForStatus(status), Status: status, Detail: parseDetail(body), Op: r.op}
		span.RecordError(upErr)
		span.SetStatus(codes.Error, upErr.Error())
		c.logger.Debug("upstream call failed", "op", r.op, "status", status, "detail", upErr.Detail)
		return upErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode response")
		return &Error{Kind: KindRemoteUnavailable, Status: status, Op: r.op, err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func statusClass(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}

// timestamp layouts the upstream has been seen to emit; zone-less values are read in loc
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp accepts RFC 3339 as well as zone-less timestamps and bare dates.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
