// Where: cli/internal/usecase/function/function.go
// What: Function operations besides deploy: invoke, create and trigger configuration.
// Why: Keep single-call platform operations out of the CLI layer.
package function

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poruru/alicf/cli/internal/infra/cloudapi"
	"github.com/poruru/alicf/cli/internal/infra/config"
	"github.com/poruru/alicf/cli/internal/infra/scaffold"
	"github.com/poruru/alicf/cli/internal/infra/ui"
)

// ModeDebug creates the local scaffold without registering the function remotely.
const ModeDebug = "debug"

var (
	ErrInvalidArgs         = errors.New("invocation args must be valid JSON")
	errAPINotConfigured    = errors.New("function api is not configured")
	errScaffoldUnavailable = errors.New("scaffolder is not configured")
)

// API is the subset of platform actions used here.
type API interface {
	RunFunction(ctx context.Context, name string, args interface{}) (cloudapi.RunFunctionResult, error)
	CreateFunction(ctx context.Context, name string) (cloudapi.CreateFunctionResult, error)
	UpdateFunction(ctx context.Context, name, cron string, payload interface{}) (cloudapi.UpdateFunctionResult, error)
}

// Scaffolder writes the boilerplate of a new function.
type Scaffolder interface {
	Create(name string) (scaffold.Result, error)
}

// TriggerSource resolves the configured timing trigger of a function.
type TriggerSource interface {
	TriggerFor(name string) (config.Trigger, bool)
}

// Service runs function operations. API may be nil for debug-only creates.
type Service struct {
	API           API
	Scaffolder    Scaffolder
	Triggers      TriggerSource
	UserInterface ui.UserInterface
	Logger        *slog.Logger
}

// InvokeRequest carries the function name and a JSON argument document.
type InvokeRequest struct {
	Function string
	Args     string
}

// Invoke runs the function once and returns the response body verbatim.
func (s Service) Invoke(ctx context.Context, req InvokeRequest) (map[string]interface{}, error) {
	if s.API == nil {
		return nil, errAPINotConfigured
	}
	args, err := parseArgs(req.Args)
	if err != nil {
		return nil, err
	}
	s.ui().Info(fmt.Sprintf("invoke: %s", req.Function))
	result, err := s.API.RunFunction(ctx, req.Function, args)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", req.Function, err)
	}
	return result.Raw, nil
}

func parseArgs(raw string) (interface{}, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return map[string]interface{}{}, nil
	}
	var args interface{}
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return args, nil
}

// CreateRequest names the function and the creation mode.
type CreateRequest struct {
	Function string
	Mode     string
}

// CreateResult reports what Create did.
type CreateResult struct {
	Dir        string
	Scaffolded bool
	Registered bool
	Response   map[string]interface{}
}

// Create scaffolds <root>/<function> when missing and, unless Mode is debug,
// registers the function on the platform.
func (s Service) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	if s.Scaffolder == nil {
		return CreateResult{}, errScaffoldUnavailable
	}
	out := s.ui()
	out.Info(fmt.Sprintf("create: %s", req.Function))

	scaffolded, err := s.Scaffolder.Create(req.Function)
	if err != nil {
		return CreateResult{}, fmt.Errorf("scaffold %s: %w", req.Function, err)
	}
	result := CreateResult{Dir: scaffolded.Dir, Scaffolded: scaffolded.Created}
	if scaffolded.Created {
		out.Success(fmt.Sprintf("scaffolded %s", scaffolded.Dir))
	} else {
		out.Info("function exists")
	}

	if strings.EqualFold(strings.TrimSpace(req.Mode), ModeDebug) {
		out.Info("debug mode: skipped remote create")
		return result, nil
	}
	if s.API == nil {
		return result, errAPINotConfigured
	}
	created, err := s.API.CreateFunction(ctx, req.Function)
	if err != nil {
		return result, fmt.Errorf("create %s: %w", req.Function, err)
	}
	result.Registered = true
	result.Response = created.Raw
	out.Success(fmt.Sprintf("registered %s", req.Function))
	return result, nil
}

// TriggerResult reports the applied trigger, if any.
type TriggerResult struct {
	Configured bool
	Cron       string
	Response   map[string]interface{}
}

// Trigger pushes the configured timing trigger. A function without one is a
// no-op that makes no network call.
func (s Service) Trigger(ctx context.Context, name string) (TriggerResult, error) {
	out := s.ui()
	out.Info(fmt.Sprintf("trigger: %s", name))
	if s.Triggers == nil {
		out.Info("no trigger")
		return TriggerResult{}, nil
	}
	trigger, ok := s.Triggers.TriggerFor(name)
	if !ok {
		out.Info("no trigger")
		return TriggerResult{}, nil
	}
	if err := config.ValidateCron(trigger.Cron); err != nil {
		return TriggerResult{}, fmt.Errorf("trigger of %s: %w", name, err)
	}
	if s.API == nil {
		return TriggerResult{}, errAPINotConfigured
	}
	updated, err := s.API.UpdateFunction(ctx, name, trigger.Cron, trigger.Payload)
	if err != nil {
		return TriggerResult{}, fmt.Errorf("update trigger of %s: %w", name, err)
	}
	s.logger().Debug("trigger updated", "function", name, "cron", trigger.Cron)
	out.Success(fmt.Sprintf("trigger %q applied to %s", trigger.Cron, name))
	return TriggerResult{Configured: true, Cron: trigger.Cron, Response: updated.Raw}, nil
}

func (s Service) ui() ui.UserInterface {
	if s.UserInterface == nil {
		return ui.NewConsoleUI(discard{}, false)
	}
	return s.UserInterface
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
