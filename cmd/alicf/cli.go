// Where: cli/cmd/alicf/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/poruru/alicf/cli/internal/command"
	"github.com/poruru/alicf/cli/internal/infra/interaction"
)

const uploadTimeout = 10 * time.Minute

var (
	getwd      = os.Getwd
	isTerminal = func() bool { return interaction.IsTerminal(os.Stdin) && interaction.IsTerminal(os.Stdout) }
)

// buildDependencies constructs the runtime dependencies of the CLI. Platform,
// history, mirror and docker clients are opened lazily by the commands.
func buildDependencies(ctx context.Context) command.Dependencies {
	return command.Dependencies{
		Context:    ctx,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		Getwd:      getwd,
		Prompter:   interaction.HuhPrompter{},
		IsTerminal: isTerminal,
		Clock:      clockwork.NewRealClock(),
		HTTPClient: &http.Client{Timeout: uploadTimeout},
	}
}
