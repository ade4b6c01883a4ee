// Where: cli/cmd/alicf/main.go
// What: CLI entrypoint.
// Why: Execute alicf commands with configured dependencies.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/poruru/alicf/cli/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := command.Run(os.Args[1:], buildDependencies(ctx))
	stop()
	os.Exit(code)
}
