// Where: cli/internal/infra/history/file.go
// What: YAML ledger stored next to build artifacts.
// Why: Default history backend that needs no external service.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poruru/alicf/cli/internal/infra/fileops"
	"gopkg.in/yaml.v3"
)

// maxFileEntries caps the ledger; the oldest entries are dropped first.
const maxFileEntries = 500

type ledger struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

// FileStore keeps entries in a single YAML file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Record(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	current, err := s.load()
	if err != nil {
		return err
	}
	current.Entries = append(current.Entries, entry)
	if len(current.Entries) > maxFileEntries {
		current.Entries = current.Entries[len(current.Entries)-maxFileEntries:]
	}
	return s.save(current)
}

func (s *FileStore) List(ctx context.Context, function string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	current, err := s.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(current.Entries, function, limit), nil
}

func (s *FileStore) load() (ledger, error) {
	payload, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return ledger{Version: 1}, nil
		}
		return ledger{}, fmt.Errorf("read history: %w", err)
	}
	var current ledger
	if err := yaml.Unmarshal(payload, &current); err != nil {
		return ledger{}, fmt.Errorf("decode history: %w", err)
	}
	if current.Version == 0 {
		current.Version = 1
	}
	return current, nil
}

func (s *FileStore) save(current ledger) error {
	payload, err := yaml.Marshal(&current)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := fileops.EnsureDir(filepath.Dir(s.Path)); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := os.WriteFile(s.Path, payload, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
