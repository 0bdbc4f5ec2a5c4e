package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend keeps one file per key. Writes go to a temp file that is renamed
// over the target; identical content is not rewritten.
type FileBackend struct {
	dir   string
	paths map[string]string
}

// NewFileBackend constructs a backend rooted at dir. paths pins specific keys
// to explicit file locations; other keys resolve to {dir}/{key}.json.
func NewFileBackend(dir string, paths map[string]string) *FileBackend {
	pinned := make(map[string]string, len(paths))
	for k, v := range paths {
		pinned[k] = v
	}
	return &FileBackend{dir: dir, paths: pinned}
}

// Path returns the file backing key. Sequence keys live next to their collection.
func (b *FileBackend) Path(key string) string {
	if p, ok := b.paths[key]; ok {
		return p
	}
	if base, ok := strings.CutSuffix(key, sequenceSuffix); ok {
		if p, ok := b.paths[base]; ok {
			return p + sequenceSuffix
		}
	}
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := b.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := b.Path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Ping verifies the data directory exists or can be created.
func (b *FileBackend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.dir == "" {
		return nil
	}
	return os.MkdirAll(b.dir, 0o755)
}

func (b *FileBackend) Close() error { return nil }
