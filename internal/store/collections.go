package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/matchboard/internal/domain"
	"github.com/preston-bernstein/matchboard/internal/logging"
	"github.com/preston-bernstein/matchboard/internal/metrics"
)

// Collections is the storage handle shared by the services. Each call reads or
// rewrites a whole collection; nothing is cached between calls.
type Collections struct {
	backend Backend
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewCollections wraps backend with JSON encoding, logging and metrics.
func NewCollections(backend Backend, logger *slog.Logger, recorder *metrics.Recorder) *Collections {
	return &Collections{
		backend: backend,
		logger:  logger,
		metrics: recorder,
	}
}

// Backend exposes the underlying backend (used by ID allocators and readiness checks).
func (c *Collections) Backend() Backend {
	return c.backend
}

// ReadCollection returns every record in the named collection. Missing or
// unreadable collections degrade to an empty slice; the failure is logged only.
func (c *Collections) ReadCollection(ctx context.Context, name string) []domain.Record {
	start := time.Now()
	records, err := c.read(ctx, name)
	c.metrics.RecordStoreOp(name, metrics.OpRead, time.Since(start), err)

	if err != nil {
		logger := logging.FromContext(ctx, c.logger)
		if errors.Is(err, ErrNotExist) {
			logging.Warn(logger, "collection missing, using empty collection",
				slog.String(logging.FieldCollection, name),
				slog.Any("error", err),
			)
		} else {
			logging.Error(logger, "collection read failed, using empty collection", err,
				slog.String(logging.FieldCollection, name),
			)
		}
		return []domain.Record{}
	}
	return records
}

func (c *Collections) read(ctx context.Context, name string) ([]domain.Record, error) {
	data, err := c.backend.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return domain.DecodeCollection(data)
}

// WriteCollection overwrites the named collection with records.
func (c *Collections) WriteCollection(ctx context.Context, name string, records []domain.Record) error {
	start := time.Now()
	err := c.write(ctx, name, records)
	c.metrics.RecordStoreOp(name, metrics.OpWrite, time.Since(start), err)
	return err
}

func (c *Collections) write(ctx context.Context, name string, records []domain.Record) error {
	data, err := domain.EncodeCollection(records)
	if err != nil {
		return err
	}
	return c.backend.Save(ctx, name, data)
}

// Ping reports whether the backend is reachable.
func (c *Collections) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}
