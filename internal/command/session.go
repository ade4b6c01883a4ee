// Where: cli/internal/command/session.go
// What: Per-invocation state shared by command handlers.
// Why: Resolve paths, output and configuration once per run.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/poruru/alicf/cli/internal/domain/function"
	"github.com/poruru/alicf/cli/internal/infra/config"
	"github.com/poruru/alicf/cli/internal/infra/interaction"
	"github.com/poruru/alicf/cli/internal/infra/logging"
	"github.com/poruru/alicf/cli/internal/infra/scaffold"
	"github.com/poruru/alicf/cli/internal/infra/ui"
)

var errFunctionRequired = errors.New("function name is required")

type session struct {
	deps       Dependencies
	ctx        context.Context
	cwd        string
	root       string
	configPath string
	emoji      bool
	ui         ui.UserInterface
	console    *ui.Console
	logger     *slog.Logger
}

func newSession(cli CLI, deps Dependencies) (*session, error) {
	cwd, err := deps.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	terminal := deps.IsTerminal()
	emoji := !cli.NoEmoji && terminal
	s := &session{
		deps:    deps,
		ctx:     deps.Context,
		cwd:     cwd,
		emoji:   emoji,
		ui:      ui.NewConsoleUI(deps.Out, emoji),
		console: ui.NewWithEmoji(deps.Out, emoji),
		logger:  logging.New(deps.ErrOut, logging.Options{Verbose: cli.Verbose, NoColor: !terminal}),
	}
	s.loadEnvFile(cli.EnvFile)

	root, err := config.ResolveRoot(cwd, cli.Root)
	if err != nil {
		return nil, err
	}
	s.root = root
	s.configPath = config.ResolveConfigPath(cwd, root, cli.Config)
	return s, nil
}

// loadEnvFile loads the given env file, or <cwd>/.env when present.
func (s *session) loadEnvFile(path string) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.cwd, path)
		}
		if err := godotenv.Load(path); err != nil {
			s.ui.Warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	defaultPath := filepath.Join(s.cwd, ".env")
	if _, err := os.Stat(defaultPath); err == nil {
		if err := godotenv.Load(defaultPath); err != nil {
			s.ui.Warn(fmt.Sprintf("failed to load .env: %v", err))
		}
	}
}

func (s *session) loadConfig() (config.CloudConfig, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return config.CloudConfig{}, err
	}
	s.logger.Debug("config loaded", "path", s.configPath, "space", cfg.SpaceID)
	return cfg, nil
}

// gateway loads the config and opens the platform client.
func (s *session) gateway() (CloudAPI, config.CloudConfig, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, config.CloudConfig{}, err
	}
	api, err := s.deps.NewGateway(cfg, s.logger)
	if err != nil {
		return nil, config.CloudConfig{}, err
	}
	return api, cfg, nil
}

// functionName returns the given name, or asks for one on a terminal.
func (s *session) functionName(given string) (string, error) {
	if given != "" {
		if err := function.ValidateName(given); err != nil {
			return "", err
		}
		return given, nil
	}
	if !s.deps.IsTerminal() || s.deps.Prompter == nil {
		return "", errFunctionRequired
	}
	names, err := scaffold.ListFunctions(s.root)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: %w under %s", errFunctionRequired, interaction.ErrNoOptions, s.root)
	}
	selected, err := s.deps.Prompter.Select("Select function", names)
	if err != nil {
		return "", err
	}
	return selected, nil
}

func (s *session) fail(err error) int {
	return exitWithError(s.deps.Out, err)
}
