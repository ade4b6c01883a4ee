// Where: cli/internal/usecase/function/local.go
// What: Local-only function operations: debug runs and history listing.
// Why: These never reach the platform and work without credentials.
package function

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	domainfn "github.com/poruru/alicf/cli/internal/domain/function"
	"github.com/poruru/alicf/cli/internal/infra/history"
)

var (
	errDebuggerNotConfigured = errors.New("debug runner is not configured")
	errHistoryNotConfigured  = errors.New("history store is not configured")
)

// DebugRunner executes a function's local harness.
type DebugRunner interface {
	Run(ctx context.Context, functionDir, args string) (int, error)
}

// HistoryLister reads recorded deploy outcomes.
type HistoryLister interface {
	List(ctx context.Context, function string, limit int) ([]history.Entry, error)
}

// Local runs operations against the functions root only.
type Local struct {
	Root     string
	Debugger DebugRunner
	Ledger   HistoryLister
}

// Debug runs <root>/<name>/debug.js and returns its exit code.
func (l Local) Debug(ctx context.Context, name, args string) (int, error) {
	if l.Debugger == nil {
		return 0, errDebuggerNotConfigured
	}
	if err := domainfn.ValidateName(name); err != nil {
		return 0, err
	}
	code, err := l.Debugger.Run(ctx, filepath.Join(l.Root, name), args)
	if err != nil {
		return code, fmt.Errorf("debug %s: %w", name, err)
	}
	return code, nil
}

// History lists the newest entries, optionally for one function.
func (l Local) History(ctx context.Context, name string, limit int) ([]history.Entry, error) {
	if l.Ledger == nil {
		return nil, errHistoryNotConfigured
	}
	entries, err := l.Ledger.List(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}
