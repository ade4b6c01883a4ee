// Where: cli/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"
	"github.com/poruru/alicf/cli/internal/infra/cloudapi"
	"github.com/poruru/alicf/cli/internal/infra/config"
	"github.com/poruru/alicf/cli/internal/infra/debugrun"
	"github.com/poruru/alicf/cli/internal/infra/history"
	"github.com/poruru/alicf/cli/internal/infra/interaction"
	"github.com/poruru/alicf/cli/internal/infra/mirror"
	"github.com/poruru/alicf/cli/internal/meta"
	"github.com/poruru/alicf/cli/internal/usecase/deploy"
	"github.com/poruru/alicf/cli/internal/usecase/function"
)

// CloudAPI is every platform action the commands issue.
type CloudAPI interface {
	deploy.DeploymentAPI
	function.API
}

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil fields fall back to the production implementations.
type Dependencies struct {
	Context    context.Context
	Out        io.Writer
	ErrOut     io.Writer
	Getwd      func() (string, error)
	Prompter   interaction.Prompter
	IsTerminal func() bool
	Clock      clockwork.Clock

	NewGateway      func(config.CloudConfig, *slog.Logger) (CloudAPI, error)
	HTTPClient      *http.Client
	NewDockerClient func() (debugrun.DockerClient, error)
	OpenHistory     func(context.Context, config.CloudConfig, string) (history.Store, error)
	OpenMirror      func(context.Context, config.MirrorConfig) (deploy.ArtifactMirror, error)
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Root    string `name:"root" help:"Functions root directory (default: ./cloudfunctions)"`
	Config  string `name:"config" help:"Path to the config file (default: <root>/config.json)"`
	Verbose bool   `short:"v" help:"Verbose diagnostics on stderr"`
	EnvFile string `name:"env-file" help:"Path to .env file"`
	NoEmoji bool   `name:"no-emoji" help:"Disable emoji output"`

	Init    InitCmd    `cmd:"" help:"Create the functions root, placeholder config and package script"`
	Create  CreateCmd  `cmd:"" help:"Scaffold a function and register it"`
	Deploy  DeployCmd  `cmd:"" help:"Build, upload and trigger a function deployment"`
	Invoke  InvokeCmd  `cmd:"" help:"Run a deployed function once"`
	Trigger TriggerCmd `cmd:"" help:"Apply the configured timing trigger"`
	History HistoryCmd `cmd:"" help:"List recorded deployments"`
	Debug   DebugCmd   `cmd:"" help:"Run a function's debug harness in a container"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type (
	InitCmd struct{}

	CreateCmd struct {
		Function string `arg:"" optional:"" help:"Function name"`
		Mode     string `arg:"" optional:"" help:"Pass 'debug' to skip remote registration"`
	}

	DeployCmd struct {
		Function      string `arg:"" optional:"" help:"Function name"`
		FireAndForget bool   `name:"fire-and-forget" help:"Do not fail when the deployment never becomes ready"`
		PollAttempts  int    `name:"poll-attempts" help:"Deployment listing checks before giving up (default: 5, or 1 with --fire-and-forget)"`
	}

	InvokeCmd struct {
		Function string `arg:"" optional:"" help:"Function name"`
		Args     string `arg:"" optional:"" help:"JSON arguments (default: {})"`
	}

	TriggerCmd struct {
		Function string `arg:"" optional:"" help:"Function name"`
	}

	HistoryCmd struct {
		Function string `arg:"" optional:"" help:"Only show this function"`
		Limit    int    `short:"n" default:"20" help:"Maximum entries"`
	}

	DebugCmd struct {
		Function string `arg:"" optional:"" help:"Function name"`
		Args     string `arg:"" optional:"" help:"JSON arguments (default: {})"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)

	if len(args) == 0 {
		return runNoArgs(deps.Out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return exitWithError(deps.Out, err)
	}

	kctx, err := parser.Parse(args)
	if isHelp(args) {
		return 0
	}
	if err != nil {
		return exitWithError(deps.Out, err)
	}

	s, err := newSession(cli, deps)
	if err != nil {
		return exitWithError(deps.Out, err)
	}

	command := commandName(kctx.Command())
	if exitCode, handled := dispatchCommand(command, cli, s); handled {
		return exitCode
	}

	s.ui.Warn("unknown command")
	return 1
}

type commandHandler func(CLI, *session) int

func dispatchCommand(command string, cli CLI, s *session) (int, bool) {
	handlers := map[string]commandHandler{
		"init":    runInit,
		"create":  runCreate,
		"deploy":  runDeploy,
		"invoke":  runInvoke,
		"trigger": runTrigger,
		"history": runHistory,
		"debug":   runDebug,
		"version": runVersion,
	}
	if handler, ok := handlers[command]; ok {
		return handler(cli, s), true
	}
	return 1, false
}

// commandName strips positional placeholders such as "<function>".
func commandName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// runNoArgs prints a short usage summary.
func runNoArgs(out io.Writer) int {
	cmd := meta.AppName
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s [--root DIR] [--config FILE] <init|create|deploy|invoke|trigger|history|debug|version> [args]\n", cmd)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Try: %s --help\n", cmd)
	return 0
}

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	fmt.Fprintf(out, "✗ %v\n", err)
	return 1
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.Prompter == nil {
		deps.Prompter = interaction.HuhPrompter{}
	}
	if deps.IsTerminal == nil {
		deps.IsTerminal = func() bool { return interaction.IsTerminal(os.Stdin) }
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.NewGateway == nil {
		deps.NewGateway = newGateway
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	if deps.NewDockerClient == nil {
		deps.NewDockerClient = debugrun.NewDockerClient
	}
	if deps.OpenHistory == nil {
		deps.OpenHistory = history.Open
	}
	if deps.OpenMirror == nil {
		deps.OpenMirror = openMirror
	}
	return deps
}

func newGateway(cfg config.CloudConfig, logger *slog.Logger) (CloudAPI, error) {
	gateway, err := cloudapi.New(cloudapi.Settings{
		AccessKeyID:     cfg.AccessKeyID,
		AccessKeySecret: cfg.AccessKeySecret,
		SpaceID:         cfg.SpaceID,
		Endpoint:        cfg.Endpoint,
	}, logger)
	if err != nil {
		return nil, err
	}
	return gateway, nil
}

// openMirror keeps a disabled mirror as a nil interface.
func openMirror(ctx context.Context, cfg config.MirrorConfig) (deploy.ArtifactMirror, error) {
	m, err := mirror.Open(ctx, cfg)
	if err != nil || m == nil {
		return nil, err
	}
	return m, nil
}
