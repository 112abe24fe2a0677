package revalidation

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/afriquefoot/matchlive/internal/platform/logging"
	"github.com/afriquefoot/matchlive/internal/platform/resilience"
)

var errRevalidateTransient = crerr.New("revalidate transient failure")

type ClientConfig struct {
	BaseURL        string
	Secret         string
	Retries        int
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client asks the rendering frontend to rebuild one cached page path. Each
// locale variant of a page is a separate path and a separate call.
type Client struct {
	client         *http.Client
	baseURL        string
	secret         string
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client:         &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		secret:         strings.TrimSpace(cfg.Secret),
		retries:        maxInt(cfg.Retries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) RevalidatePath(ctx context.Context, path string) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "revalidate circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("revalidate endpoint is temporarily unavailable: %w", err)
		}
	}

	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("revalidate path is required")
	}

	baseURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid REVALIDATE_BASE_URL")
	}

	endpoint := baseURL + "/api/revalidate"
	body, err := sonic.Marshal(map[string]string{"path": path})
	if err != nil {
		return crerr.Wrap(err, "marshal revalidate payload")
	}

	curlPreview := buildCurlPreview(endpoint, string(body))
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("revalidate.endpoint", endpoint),
			attribute.String("revalidate.path", path),
			attribute.String("revalidate.request_curl_preview", curlPreview),
		)
	}
	c.logger.DebugContext(ctx, "revalidate request", "path", path, "endpoint", endpoint, "curl_preview", curlPreview)

	callErr := c.executeRequest(ctx, endpoint, path, body)
	c.recordCircuitResult(callErr)
	if callErr != nil {
		return callErr
	}

	c.logger.InfoContext(ctx, "page revalidated", "path", path)
	return nil
}

func (c *Client) executeRequest(ctx context.Context, endpoint, path string, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
		if err != nil {
			return crerr.Wrap(err, "create revalidate request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-revalidate-secret", c.secret)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: revalidate path=%s: %v", errRevalidateTransient, path, err)
		} else {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()
			if resp.StatusCode/100 == 2 {
				return nil
			}
			if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: revalidate path=%s status=%d body=%s", errRevalidateTransient, path, resp.StatusCode, strings.TrimSpace(string(raw)))
			} else {
				return fmt.Errorf("revalidate path=%s status=%d body=%s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
			}
		}

		if attempt == c.retries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("revalidate request failed path=%s", path)
	}
	return lastErr
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(endpoint, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(endpoint))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-H")
	appendPart(shellQuote("x-revalidate-secret: ***"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errRevalidateTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
