// Where: cli/internal/command/local.go
// What: init, history, debug and version command adapters.
// Why: Commands that work on the local project and need no platform call.
package command

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/poruru/alicf/cli/internal/infra/config"
	"github.com/poruru/alicf/cli/internal/infra/debugrun"
	"github.com/poruru/alicf/cli/internal/meta"
	"github.com/poruru/alicf/cli/internal/usecase/function"
	"github.com/poruru/alicf/cli/internal/version"
)

func runInit(_ CLI, s *session) int {
	written, err := config.EnsureConfigFile(s.root)
	if err != nil {
		return s.fail(err)
	}
	if written {
		s.ui.Success(fmt.Sprintf("wrote placeholder %s", s.configPath))
	} else {
		s.ui.Info(fmt.Sprintf("config exists: %s", s.configPath))
	}

	projectDir := config.HostProjectDir(s.root)
	status, err := config.RegisterPackageScript(projectDir)
	if err != nil {
		return s.fail(err)
	}
	switch status {
	case config.ScriptAdded:
		s.ui.Success(fmt.Sprintf("added scripts.%s to %s", meta.PackageScript, meta.PackageManifest))
	case config.ScriptAlreadyPresent:
		s.ui.Info(fmt.Sprintf("scripts.%s already present", meta.PackageScript))
	case config.ScriptManifestMissing:
		s.ui.Info(fmt.Sprintf("no %s in %s", meta.PackageManifest, projectDir))
	}
	return 0
}

func runHistory(cli CLI, s *session) int {
	cfg, err := s.loadConfig()
	if err != nil {
		return s.fail(err)
	}
	store, err := s.deps.OpenHistory(s.ctx, cfg, s.root)
	if err != nil {
		return s.fail(err)
	}
	local := function.Local{Root: s.root, Ledger: store}
	entries, err := local.History(s.ctx, cli.History.Function, cli.History.Limit)
	if err != nil {
		return s.fail(err)
	}
	if len(entries) == 0 {
		s.ui.Info("no deployments recorded")
		return 0
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.StartedAt.Local().Format(time.DateTime),
			entry.Function,
			dash(entry.DeploymentID),
			string(entry.State),
			strconv.FormatBool(entry.Triggered),
			dash(entry.Error),
		})
	}
	s.console.Table([]string{"STARTED", "FUNCTION", "DEPLOYMENT", "STATE", "TRIGGERED", "ERROR"}, rows)
	return 0
}

func runDebug(cli CLI, s *session) int {
	name, err := s.functionName(cli.Debug.Function)
	if err != nil {
		return s.fail(err)
	}
	client, err := s.deps.NewDockerClient()
	if err != nil {
		return s.fail(err)
	}
	if closer, ok := client.(io.Closer); ok {
		defer closer.Close()
	}
	local := function.Local{
		Root: s.root,
		Debugger: debugrun.Runner{
			Client: client,
			Image:  debugrun.DefaultImage,
			Stdout: s.deps.Out,
			Stderr: s.deps.ErrOut,
			Logger: s.logger,
		},
	}
	code, err := local.Debug(s.ctx, name, cli.Debug.Args)
	if err != nil {
		return s.fail(err)
	}
	return code
}

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, s *session) int {
	fmt.Fprintln(s.deps.Out, version.GetVersion())
	return 0
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
