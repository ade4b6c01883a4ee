// Where: cli/internal/command/function.go
// What: create, invoke and trigger command adapters.
// Why: Map CLI arguments onto the function service.
package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poruru/alicf/cli/internal/infra/scaffold"
	"github.com/poruru/alicf/cli/internal/usecase/function"
)

func runCreate(cli CLI, s *session) int {
	name, err := s.functionName(cli.Create.Function)
	if err != nil {
		return s.fail(err)
	}
	svc := function.Service{
		Scaffolder:    scaffold.Writer{Root: s.root},
		UserInterface: s.ui,
		Logger:        s.logger,
	}
	if !strings.EqualFold(strings.TrimSpace(cli.Create.Mode), function.ModeDebug) {
		api, _, err := s.gateway()
		if err != nil {
			return s.fail(err)
		}
		svc.API = api
	}
	if _, err := svc.Create(s.ctx, function.CreateRequest{Function: name, Mode: cli.Create.Mode}); err != nil {
		return s.fail(err)
	}
	return 0
}

func runInvoke(cli CLI, s *session) int {
	name, err := s.functionName(cli.Invoke.Function)
	if err != nil {
		return s.fail(err)
	}
	api, _, err := s.gateway()
	if err != nil {
		return s.fail(err)
	}
	svc := function.Service{API: api, UserInterface: s.ui, Logger: s.logger}
	response, err := svc.Invoke(s.ctx, function.InvokeRequest{Function: name, Args: cli.Invoke.Args})
	if err != nil {
		return s.fail(err)
	}
	body, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return s.fail(fmt.Errorf("encode response: %w", err))
	}
	fmt.Fprintln(s.deps.Out, string(body))
	return 0
}

func runTrigger(cli CLI, s *session) int {
	name, err := s.functionName(cli.Trigger.Function)
	if err != nil {
		return s.fail(err)
	}
	api, cfg, err := s.gateway()
	if err != nil {
		return s.fail(err)
	}
	svc := function.Service{API: api, Triggers: cfg, UserInterface: s.ui, Logger: s.logger}
	if _, err := svc.Trigger(s.ctx, name); err != nil {
		return s.fail(err)
	}
	return 0
}
