package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/learning-journal/internal/adapters/http/middleware"
	"github.com/jsamuelsen/learning-journal/internal/platform/config"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:     baseURL,
		ServiceName: "journal-service",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}
}

func newTestClient(t *testing.T, cfg *Config) *Client {
	t.Helper()

	c, err := New(cfg)
	require.NoError(t, err)

	return c
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	require.NoError(t, resp.Body.Close())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(&Config{BaseURL: "http://localhost"})
	require.ErrorContains(t, err, "service name")

	c, err := New(&Config{ServiceName: "journal-service"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.retry.MaxAttempts)
	assert.Equal(t, StateClosed, c.CircuitState())
}

func TestClient_PropagatesIDs(t *testing.T) {
	var got http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := middleware.ContextWithRequestID(context.Background(), "req-7")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-7")

	resp, err := newTestClient(t, testConfig(srv.URL)).Get(ctx, "/api/reflections")
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, "req-7", got.Get(middleware.HeaderRequestID))
	assert.Equal(t, "corr-7", got.Get(middleware.HeaderCorrelationID))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := newTestClient(t, testConfig(srv.URL)).Get(context.Background(), "/api/reflections")
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ReplaysBodyOnRetry(t *testing.T) {
	var bodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))

		if len(bodies) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	resp, err := newTestClient(t, testConfig(srv.URL)).Post(context.Background(), "/api/reflections", []byte(`{"title":"t"}`))
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, []string{`{"title":"t"}`, `{"title":"t"}`}, bodies)
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))

	resp, err := c.Delete(context.Background(), "/api/reflections/9")
	require.NoError(t, err)
	closeBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateClosed, c.CircuitState())
}

func TestClient_MaxRetriesExceeded(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(t, testConfig(srv.URL)).Put(context.Background(), "/api/reflections/1", []byte(`{}`))

	require.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 2
	c := newTestClient(t, cfg)

	for range 2 {
		_, err := c.Get(context.Background(), "/api/reflections")
		require.Error(t, err)
	}

	assert.Equal(t, StateOpen, c.CircuitState())

	_, err := c.Get(context.Background(), "/api/reflections")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, testConfig(srv.URL)).Get(ctx, "/api/reflections")

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestClient_BuildURL(t *testing.T) {
	c := newTestClient(t, testConfig("http://localhost:5000/"))

	assert.Equal(t, "http://localhost:5000/api/reflections", c.buildURL("/api/reflections"))
	assert.Equal(t, "http://localhost:5000/api/reflections", c.buildURL("api/reflections"))
}

func TestClient_NewBackOff(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Retry.JitterFactor = 0.1

	b := newTestClient(t, cfg).newBackOff()

	assert.Equal(t, time.Millisecond, b.InitialInterval)
	assert.Equal(t, 5*time.Millisecond, b.MaxInterval)
	assert.InDelta(t, 2.0, b.Multiplier, 0)
	assert.InDelta(t, 0.1, b.RandomizationFactor, 0)
}

type testNetError struct{ timeout bool }

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"net timeout", testNetError{timeout: true}, true},
		{"net non-timeout", testNetError{timeout: false}, false},
		{"op error", &net.OpError{Op: "dial", Err: io.EOF}, true},
		{"plain", io.ErrUnexpectedEOF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
