// Where: cli/internal/infra/history/open.go
// What: Select the history backend from configuration.
// Why: Commands open one Store without knowing which backend is configured.
package history

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/poruru/alicf/cli/internal/infra/awsclient"
	"github.com/poruru/alicf/cli/internal/infra/config"
	"github.com/poruru/alicf/cli/internal/meta"
)

// FilePath returns the default ledger location under root.
func FilePath(root string) string {
	return filepath.Join(root, meta.ScratchDir, meta.HistoryFile)
}

// Open returns the configured Store.
func Open(ctx context.Context, cfg config.CloudConfig, root string) (Store, error) {
	switch cfg.HistoryBackend() {
	case config.HistoryBackendYAML:
		return NewFileStore(FilePath(root)), nil
	case config.HistoryBackendDynamo:
		client, err := awsclient.NewDynamoDB(ctx, awsclient.Target{
			Region:   cfg.History.Region,
			Endpoint: cfg.History.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		store, err := NewDynamoStore(client, cfg.History.Table)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureTable(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}
