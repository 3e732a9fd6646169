//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/learning-journal/internal/adapters/clients"
	"github.com/jsamuelsen/learning-journal/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/learning-journal/internal/adapters/http"
	"github.com/jsamuelsen/learning-journal/internal/adapters/http/handlers"
	"github.com/jsamuelsen/learning-journal/internal/adapters/http/web"
	"github.com/jsamuelsen/learning-journal/internal/adapters/storage/jsonfile"
	"github.com/jsamuelsen/learning-journal/internal/app"
	"github.com/jsamuelsen/learning-journal/internal/platform/config"
	"github.com/jsamuelsen/learning-journal/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stack is a journal service wired the way cmd/service wires it, served
// from an httptest server over a temporary data file.
type stack struct {
	server   *httptest.Server
	dataFile string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStack(t *testing.T) *stack {
	t.Helper()

	dataFile := filepath.Join(t.TempDir(), "backend", "reflections.json")
	logger := discardLogger()

	store := jsonfile.New(dataFile, logger)
	service := app.NewReflectionService(app.ReflectionServiceConfig{Store: store, Logger: logger})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	pages, err := web.Templates()
	require.NoError(t, err)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:            logger,
		AppName:           "learning-journal",
		Timeout:           5 * time.Second,
		HealthHandler:     handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "abc", "now"), nil),
		ReflectionHandler: handlers.NewReflectionHandler(service),
		PagesHandler: handlers.NewPagesHandler(handlers.PagesConfig{
			Pages:    pages,
			Static:   web.Static(),
			DataFile: dataFile,
			Version:  "test",
		}),
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &stack{server: server, dataFile: dataFile}
}

// testClientConfig returns a client config with short retry and circuit timings.
func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "journal-service",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 2,
		},
		Logger: discardLogger(),
	}
}

func newJournalClient(t *testing.T, cfg *clients.Config) *acl.ReflectionClient {
	t.Helper()

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return acl.NewReflectionClient(acl.ReflectionClientConfig{Client: client, Logger: discardLogger()})
}
