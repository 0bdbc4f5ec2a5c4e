package teams

import (
	"context"
	"sync"

	"github.com/preston-bernstein/matchboard/internal/domain"
	domainteams "github.com/preston-bernstein/matchboard/internal/domain/teams"
	"github.com/preston-bernstein/matchboard/internal/store"
)

// Store defines the whole-collection reads and rewrites the service relies on.
type Store interface {
	ReadCollection(ctx context.Context, name string) []domain.Record
	WriteCollection(ctx context.Context, name string, records []domain.Record) error
}

// Service coordinates team operations using a Store.
type Service struct {
	store      Store
	ids        store.IDAllocator
	logoPrefix string
	mu         sync.Mutex
}

// NewService constructs a Service. A nil allocator falls back to length-based ids.
func NewService(s Store, ids store.IDAllocator, logoPrefix string) *Service {
	if ids == nil {
		ids = store.LengthIDs{}
	}
	return &Service{store: s, ids: ids, logoPrefix: logoPrefix}
}

// List returns all teams with logo filenames resolved to public URLs.
func (s *Service) List(ctx context.Context) []domainteams.Team {
	items := s.store.ReadCollection(ctx, store.Teams)
	out := make([]domainteams.Team, 0, len(items))
	for _, t := range items {
		out = append(out, domainteams.WithLogoURL(t, s.logoPrefix))
	}
	return out
}

// Create appends body as a new team with a freshly assigned id. The stored logo
// stays a bare filename.
func (s *Service) Create(ctx context.Context, body domainteams.Team) (domainteams.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.ReadCollection(ctx, store.Teams)
	id, err := s.ids.Next(ctx, store.Teams, items)
	if err != nil {
		return nil, err
	}

	created := body.Clone()
	if created == nil {
		created = domainteams.Team{}
	}
	created[domain.FieldID] = id

	items = append(items, created)
	if err := s.store.WriteCollection(ctx, store.Teams, items); err != nil {
		return nil, err
	}
	return created, nil
}
