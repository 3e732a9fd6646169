package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen/learning-journal/internal/adapters/clients"
	"github.com/jsamuelsen/learning-journal/internal/domain"
	"github.com/jsamuelsen/learning-journal/internal/platform/logging"
)

const (
	reflectionsPath = "/api/reflections"
	livenessPath    = "/-/live"
)

// ReflectionClientConfig contains configuration for the reflection client.
type ReflectionClientConfig struct {
	// Client must have its BaseURL set to the journal service root.
	Client *clients.Client

	// ServiceName labels errors and the health check. Defaults to
	// "journal-service".
	ServiceName string

	Logger *slog.Logger
}

// ReflectionClient implements ports.Journal against a running journal
// service. It also reports the service's liveness as a ports.HealthChecker.
type ReflectionClient struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewReflectionClient creates a new reflection client adapter.
// Panics if Client is nil.
func NewReflectionClient(cfg ReflectionClientConfig) *ReflectionClient {
	if cfg.Client == nil {
		panic("ReflectionClient: Client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = "journal-service"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ReflectionClient{client: cfg.Client, serviceName: name, logger: logger}
}

// Create posts a new reflection and returns the entry as stored.
func (c *ReflectionClient) Create(ctx context.Context, input domain.NewReflection) (*domain.Reflection, error) {
	body, err := json.Marshal(toCreateDTO(input))
	if err != nil {
		return nil, fmt.Errorf("encoding reflection: %w", err)
	}

	resp, err := c.client.Post(ctx, reflectionsPath, body)

	return c.decodeOne(ctx, resp, err, "create reflection", 0)
}

// List returns every reflection in stored order.
func (c *ReflectionClient) List(ctx context.Context) ([]domain.Reflection, error) {
	const operation = "list reflections"

	resp, err := c.client.Get(ctx, reflectionsPath)
	if err = c.check(resp, err, operation, 0); err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[[]reflectionDTO](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.serviceName, err.Error())
	}

	entries, err := TranslateSlice(*ext, translateReflection)
	if err != nil {
		return nil, err
	}

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "listed reflections",
		slog.String("service", c.serviceName),
		slog.Int("count", len(entries)),
	)

	return entries, nil
}

// Update overwrites the patch's non-nil fields of entry id.
func (c *ReflectionClient) Update(ctx context.Context, id int, patch domain.ReflectionPatch) (*domain.Reflection, error) {
	body, err := json.Marshal(toUpdateDTO(patch))
	if err != nil {
		return nil, fmt.Errorf("encoding patch: %w", err)
	}

	resp, err := c.client.Put(ctx, entryPath(id), body)

	return c.decodeOne(ctx, resp, err, "update reflection", id)
}

// Delete removes entry id.
func (c *ReflectionClient) Delete(ctx context.Context, id int) error {
	resp, err := c.client.Delete(ctx, entryPath(id))
	if err = c.check(resp, err, "delete reflection", id); err != nil {
		return err
	}

	_ = resp.Body.Close()

	return nil
}

// Name implements ports.HealthChecker.
func (c *ReflectionClient) Name() string {
	return c.serviceName
}

// Check implements ports.HealthChecker using the service liveness probe.
func (c *ReflectionClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, livenessPath)
	if err = c.check(resp, err, "liveness check", 0); err != nil {
		return err
	}

	_ = resp.Body.Close()

	return nil
}

func (c *ReflectionClient) decodeOne(ctx context.Context, resp *http.Response, err error, operation string, id int) (*domain.Reflection, error) {
	if err = c.check(resp, err, operation, id); err != nil {
		return nil, err
	}

	ext, err := DecodeResponse[reflectionDTO](resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.serviceName, err.Error())
	}

	r, err := translateReflection(ext)
	if err != nil {
		return nil, err
	}

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, operation,
		slog.String("service", c.serviceName),
		slog.Int("id", r.ID),
	)

	return r, nil
}

// check maps transport failures and non-2xx answers to domain errors,
// closing the body of a failed response.
func (c *ReflectionClient) check(resp *http.Response, err error, operation string, id int) error {
	if err != nil {
		return MapHTTPError(nil, err, c.serviceName, operation, id)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return MapHTTPError(resp, nil, c.serviceName, operation, id)
	}

	return nil
}

func entryPath(id int) string {
	return reflectionsPath + "/" + strconv.Itoa(id)
}
