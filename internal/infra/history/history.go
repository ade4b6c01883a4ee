// Where: cli/internal/infra/history/history.go
// What: Deployment history entries and the store interface.
// Why: Keep a local or shared ledger of every deploy outcome.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/poruru/alicf/cli/internal/domain/deployment"
)

// DefaultLimit bounds List when the caller passes a non-positive limit.
const DefaultLimit = 20

// Entry is the outcome of one deploy invocation.
type Entry struct {
	ID           string           `yaml:"id"`
	Function     string           `yaml:"function"`
	DeploymentID string           `yaml:"deployment_id,omitempty"`
	State        deployment.State `yaml:"state"`
	Triggered    bool             `yaml:"triggered"`
	Error        string           `yaml:"error,omitempty"`
	StartedAt    time.Time        `yaml:"started_at"`
	FinishedAt   time.Time        `yaml:"finished_at"`
}

// NewEntry starts an entry for function at startedAt.
func NewEntry(function string, startedAt time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Function:  function,
		StartedAt: startedAt.UTC(),
	}
}

// Store persists entries.
type Store interface {
	Record(ctx context.Context, entry Entry) error
	// List returns entries newest first, filtered by function when non-empty.
	List(ctx context.Context, function string, limit int) ([]Entry, error)
}

func newestFirst(entries []Entry, function string, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if function != "" && entry.Function != function {
			continue
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
