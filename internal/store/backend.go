package store

import (
	"context"
	"errors"
)

// Collection names.
const (
	Matches = "matches"
	Teams   = "teams"
)

// ErrNotExist is returned by a Backend when a key has never been written.
var ErrNotExist = errors.New("collection does not exist")

// Backend persists opaque documents by key. Every Save replaces the whole document.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
	Close() error
}
