package store

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/matchboard/internal/config"
	"github.com/preston-bernstein/matchboard/internal/logging"
)

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileBackend(cfg.DataDir, map[string]string{
			Matches: cfg.MatchesFile,
			Teams:   cfg.TeamsFile,
		}), nil
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.BackendRedis:
		rb, err := DialRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return NewRetryingBackend(rb, logging.FromContext(ctx, nil), 0, 0), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewIDAllocator returns the allocator for strategy, persisting counters in backend.
func NewIDAllocator(strategy string, backend Backend) IDAllocator {
	if strategy == config.IDStrategySequence {
		return NewSequenceIDs(backend)
	}
	return LengthIDs{}
}
