package httpengine_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rohmanhakim/fuzzhammer/internal/httpengine"
	"github.com/rohmanhakim/fuzzhammer/pkg/retry"
	"github.com/rohmanhakim/fuzzhammer/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetryParam() retry.RetryParam {
	return retry.NewRetryParam(
		5*time.Millisecond,
		2*time.Millisecond,
		1,
		2,
		timeutil.NewBackoffParam(5*time.Millisecond, 2.0, 50*time.Millisecond),
	)
}

func TestClient_SendReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("forbidden body"))
	}))
	defer srv.Close()

	client := httpengine.NewClient(httpengine.Param{Timeout: time.Second}, testRetryParam())
	resp, classifiedErr := client.Send(context.Background(), httpengine.Request{
		URL:    srv.URL + "/admin",
		Method: http.MethodGet,
	})

	require.Nil(t, classifiedErr)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden body", resp.Body)
}

func TestClient_IgnoreBodySkipsRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("should not be read"))
	}))
	defer srv.Close()

	client := httpengine.NewClient(httpengine.Param{Timeout: time.Second}, testRetryParam())
	resp, classifiedErr := client.Send(context.Background(), httpengine.Request{
		URL:        srv.URL,
		Method:     http.MethodGet,
		IgnoreBody: true,
	})

	require.Nil(t, classifiedErr)
	assert.Empty(t, resp.Body)
}

func TestClient_HeadersAndCookieSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fuzz-value", r.Header.Get("X-Fuzz"))
		cookie, err := r.Cookie("session")
		require.NoError(t, err)
		assert.Equal(t, "abc123", cookie.Value)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := httpengine.NewClient(httpengine.Param{Timeout: time.Second}, testRetryParam())
	_, classifiedErr := client.Send(context.Background(), httpengine.Request{
		URL:     srv.URL,
		Method:  http.MethodGet,
		Headers: map[string]string{"X-Fuzz": "fuzz-value"},
		Cookie:  "session=abc123",
	})

	require.Nil(t, classifiedErr)
}

func TestClient_MalformedURLIsFatalNotRetried(t *testing.T) {
	client := httpengine.NewClient(httpengine.Param{Timeout: time.Second}, testRetryParam())
	_, classifiedErr := client.Send(context.Background(), httpengine.Request{
		URL:    "://not-a-valid-url",
		Method: http.MethodGet,
	})

	require.NotNil(t, classifiedErr)
	assert.False(t, classifiedErr.(*httpengine.SendError).IsRetryable())
}

func TestClient_ConnectionRefusedIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close() // nothing listens anymore; connect should be refused

	client := httpengine.NewClient(httpengine.Param{Timeout: 500 * time.Millisecond}, testRetryParam())
	start := time.Now()
	_, classifiedErr := client.Send(context.Background(), httpengine.Request{
		URL:    addr,
		Method: http.MethodGet,
	})

	require.NotNil(t, classifiedErr)
	// Retried at least once: elapsed should reflect the backoff between attempts.
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond)
}
