//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/learning-journal/internal/adapters/clients"
	"github.com/jsamuelsen/learning-journal/internal/adapters/clients/acl"
	"github.com/jsamuelsen/learning-journal/internal/domain"
)

// TestJournalClient_RoundTrip drives every operation through the remote
// client against the full service and checks the data file afterwards.
func TestJournalClient_RoundTrip(t *testing.T) {
	s := newStack(t)
	journal := newJournalClient(t, testClientConfig(s.server.URL))
	ctx := context.Background()

	first, err := journal.Create(ctx, domain.NewReflection{
		Date:    "2024-04-01",
		Title:   "Contexts",
		Content: "Cancel what you start.",
		Tags:    []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := journal.Create(ctx, domain.NewReflection{Title: "Errors", Content: "Wrap with %w."})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.NotEmpty(t, second.Date)
	assert.Equal(t, []string{}, second.Tags)

	title := "Context cancellation"
	updated, err := journal.Update(ctx, first.ID, domain.ReflectionPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Context cancellation", updated.Title)
	assert.Equal(t, "Cancel what you start.", updated.Content)

	require.NoError(t, journal.Delete(ctx, second.ID))

	entries, err := journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, *updated, entries[0])

	raw, err := os.ReadFile(s.dataFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title": "Context cancellation"`)
	assert.NotContains(t, string(raw), "Errors")
}

// TestJournalClient_DomainErrors verifies that service error envelopes come
// back as domain errors.
func TestJournalClient_DomainErrors(t *testing.T) {
	s := newStack(t)
	journal := newJournalClient(t, testClientConfig(s.server.URL))
	ctx := context.Background()

	_, err := journal.Create(ctx, domain.NewReflection{Title: "No content"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	err = journal.Delete(ctx, 42)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	title := "x"
	_, err = journal.Update(ctx, 42, domain.ReflectionPatch{Title: &title})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

// TestJournalClient_RetriesTransientFailures puts a proxy in front of the
// service that fails the first two requests.
func TestJournalClient_RetriesTransientFailures(t *testing.T) {
	s := newStack(t)

	target, err := url.Parse(s.server.URL)
	require.NoError(t, err)

	proxy := httputil.NewSingleHostReverseProxy(target)

	var calls int32

	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		proxy.ServeHTTP(w, r)
	}))
	defer flaky.Close()

	journal := newJournalClient(t, testClientConfig(flaky.URL))

	created, err := journal.Create(context.Background(), domain.NewReflection{Title: "Retry", Content: "Body survives retries"})

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Body survives retries", created.Content)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "expected 2 failures and 1 success")
}

// TestJournalClient_CircuitBreaker verifies the circuit opens against a
// failing service, rejects calls without reaching it, and recovers.
func TestJournalClient_CircuitBreaker(t *testing.T) {
	s := newStack(t)

	target, err := url.Parse(s.server.URL)
	require.NoError(t, err)

	proxy := httputil.NewSingleHostReverseProxy(target)

	var calls int32
	var failing atomic.Bool
	failing.Store(true)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		proxy.ServeHTTP(w, r)
	}))
	defer upstream.Close()

	cfg := testClientConfig(upstream.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 2
	cfg.Circuit.Timeout = 50 * time.Millisecond

	client, err := clients.New(cfg)
	require.NoError(t, err)

	journal := acl.NewReflectionClient(acl.ReflectionClientConfig{Client: client, Logger: discardLogger()})
	ctx := context.Background()

	for range 2 {
		_, err := journal.List(ctx)
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
	}

	before := atomic.LoadInt32(&calls)

	_, err = journal.List(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, before, atomic.LoadInt32(&calls), "no call while the circuit is open")

	time.Sleep(60 * time.Millisecond)
	failing.Store(false)

	for range 2 {
		_, err := journal.List(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, journal.Check(ctx))
	assert.Equal(t, clients.StateClosed, client.CircuitState())
}

// TestJournalClient_ContextCancellation verifies a cancelled context stops
// the call before the slow service answers.
func TestJournalClient_ContextCancellation(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	journal := newJournalClient(t, testClientConfig(slow.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := journal.List(ctx)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Less(t, time.Since(start), time.Second)
}
