// Package httpengine implements the HttpClient collaborator: the concrete
// net/http-backed adapter the Dispatcher calls through to issue one
// substituted request and observe its outcome.
package httpengine

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/fuzzhammer/pkg/failure"
	"github.com/rohmanhakim/fuzzhammer/pkg/retry"
)

// Client issues one Request and returns its observed outcome. Implementations
// must not retain Request after Send returns.
type Client interface {
	Send(ctx context.Context, req Request) (Response, failure.ClassifiedError)
}

// stdClient wraps *http.Client, configured once at construction and shared
// read-only across every goroutine that calls Send.
type stdClient struct {
	http       *http.Client
	retryParam retry.RetryParam
}

// NewClient builds the concrete HttpClient adapter. retryParam governs the
// transient-transport-error retry policy wrapping every Send.
func NewClient(param Param, retryParam retry.RetryParam) Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: param.InsecureSkipVerify},
	}
	if param.ProxyURL != "" {
		if proxy, err := url.Parse(param.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxy)
		}
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   param.Timeout,
	}
	if !param.FollowRedirects {
		httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &stdClient{http: httpClient, retryParam: retryParam}
}

func (c *stdClient) Send(ctx context.Context, req Request) (Response, failure.ClassifiedError) {
	result := retry.Retry(c.retryParam, func() (Response, failure.ClassifiedError) {
		return c.sendOnce(ctx, req)
	})
	return result.Value(), result.Err()
}

func (c *stdClient) sendOnce(ctx context.Context, req Request) (Response, failure.ClassifiedError) {
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{}, &SendError{URL: req.URL, Cause: err, Retryable: false}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Cookie != "" {
		httpReq.Header.Set("Cookie", req.Cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, &SendError{URL: req.URL, Cause: err, Retryable: isTransientTransportError(err)}
	}
	defer resp.Body.Close()

	var bodyStr string
	if !req.IgnoreBody {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return Response{}, &SendError{URL: req.URL, Cause: err, Retryable: true}
		}
		bodyStr = buf.String()
	}
	elapsed := time.Since(start)

	return Response{
		StatusCode:  resp.StatusCode,
		Body:        bodyStr,
		ContentType: resp.Header.Get("Content-Type"),
		Elapsed:     elapsed,
	}, nil
}

// isTransientTransportError classifies timeout, connection-refused, and
// mid-read EOF as retryable; everything else (malformed URL, unsupported
// protocol) is treated as fatal for that one assignment.
func isTransientTransportError(err error) bool {
	var netErr net.Error
	if ok := asNetError(err, &netErr); ok && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Timeout() || isConnRefused(opErr)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}

func asNetError(err error, target *net.Error) bool {
	if ne, ok := err.(net.Error); ok {
		*target = ne
		return true
	}
	return false
}

func isConnRefused(opErr *net.OpError) bool {
	return strings.Contains(opErr.Err.Error(), "connection refused")
}
