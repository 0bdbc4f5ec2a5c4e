package matches

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/matchboard/internal/domain"
	domainmatches "github.com/preston-bernstein/matchboard/internal/domain/matches"
	"github.com/preston-bernstein/matchboard/internal/store"
)

// ErrNotFound is returned when no match carries the requested id.
var ErrNotFound = errors.New("match not found")

// Store defines the whole-collection reads and rewrites the service relies on.
type Store interface {
	ReadCollection(ctx context.Context, name string) []domain.Record
	WriteCollection(ctx context.Context, name string, records []domain.Record) error
}

// Service coordinates match operations. Every call re-reads the collections.
type Service struct {
	store      Store
	ids        store.IDAllocator
	logoPrefix string
	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewService constructs a Service. A nil allocator falls back to length-based ids.
func NewService(s Store, ids store.IDAllocator, logoPrefix string) *Service {
	if ids == nil {
		ids = store.LengthIDs{}
	}
	return &Service{store: s, ids: ids, logoPrefix: logoPrefix}
}

// List returns every match joined with its home and away teams.
func (s *Service) List(ctx context.Context) []domainmatches.Match {
	items := s.store.ReadCollection(ctx, store.Matches)
	teamList := s.store.ReadCollection(ctx, store.Teams)

	out := make([]domainmatches.Match, 0, len(items))
	for _, m := range items {
		out = append(out, domainmatches.Enrich(m, teamList, s.logoPrefix))
	}
	return out
}

// Create appends body as a new match with a freshly assigned id.
func (s *Service) Create(ctx context.Context, body domainmatches.Match) (domainmatches.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.ReadCollection(ctx, store.Matches)
	id, err := s.ids.Next(ctx, store.Matches, items)
	if err != nil {
		return nil, err
	}

	created := body.Clone()
	if created == nil {
		created = domainmatches.Match{}
	}
	created[domain.FieldID] = id

	items = append(items, created)
	if err := s.store.WriteCollection(ctx, store.Matches, items); err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes every match with id. The collection is left untouched when none match.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.ReadCollection(ctx, store.Matches)
	kept := make([]domain.Record, 0, len(items))
	for _, m := range items {
		if !m.HasID(id) {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(items) {
		return ErrNotFound
	}
	return s.store.WriteCollection(ctx, store.Matches, kept)
}

// UpdateScore replaces the score of the first match with id; other fields are untouched.
func (s *Service) UpdateScore(ctx context.Context, id int64, score any) (domainmatches.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.ReadCollection(ctx, store.Matches)
	for _, m := range items {
		if !m.HasID(id) {
			continue
		}
		m[domainmatches.FieldScore] = score
		if err := s.store.WriteCollection(ctx, store.Matches, items); err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, ErrNotFound
}
