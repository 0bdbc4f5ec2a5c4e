package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/preston-bernstein/matchboard/internal/domain"
)

const sequenceSuffix = ".seq"

// IDAllocator picks the id for a record about to be appended to a collection.
type IDAllocator interface {
	Next(ctx context.Context, collection string, existing []domain.Record) (int64, error)
}

// LengthIDs assigns len(existing)+1. Ids are reused after deletions.
type LengthIDs struct{}

func (LengthIDs) Next(_ context.Context, _ string, existing []domain.Record) (int64, error) {
	return int64(len(existing)) + 1, nil
}

// SequenceIDs assigns strictly increasing ids from a counter persisted next to
// the collection. The counter never falls behind the largest stored id.
type SequenceIDs struct {
	backend Backend
}

// NewSequenceIDs constructs a SequenceIDs allocator persisting into backend.
func NewSequenceIDs(backend Backend) *SequenceIDs {
	return &SequenceIDs{backend: backend}
}

type sequenceState struct {
	Last int64 `json:"last"`
}

func (s *SequenceIDs) Next(ctx context.Context, collection string, existing []domain.Record) (int64, error) {
	key := collection + sequenceSuffix

	var state sequenceState
	data, err := s.backend.Load(ctx, key)
	switch {
	case errors.Is(err, ErrNotExist):
	case err != nil:
		return 0, fmt.Errorf("load %s: %w", key, err)
	default:
		if err := json.Unmarshal(data, &state); err != nil {
			return 0, fmt.Errorf("decode %s: %w", key, err)
		}
	}

	next := state.Last
	for _, r := range existing {
		if id, ok := r.ID(); ok && id > next {
			next = id
		}
	}
	next++

	out, err := json.Marshal(sequenceState{Last: next})
	if err != nil {
		return 0, err
	}
	if err := s.backend.Save(ctx, key, out); err != nil {
		return 0, fmt.Errorf("save %s: %w", key, err)
	}
	return next, nil
}
