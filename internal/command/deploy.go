// Where: cli/internal/command/deploy.go
// What: deploy command adapter.
// Why: Wire config, platform client, uploader, history and mirror into the deploy workflow.
package command

import (
	"fmt"

	"github.com/poruru/alicf/cli/internal/infra/archive"
	"github.com/poruru/alicf/cli/internal/infra/ui"
	"github.com/poruru/alicf/cli/internal/infra/upload"
	"github.com/poruru/alicf/cli/internal/usecase/deploy"
)

func runDeploy(cli CLI, s *session) int {
	name, err := s.functionName(cli.Deploy.Function)
	if err != nil {
		return s.fail(err)
	}
	api, cfg, err := s.gateway()
	if err != nil {
		return s.fail(err)
	}

	workflow := deploy.NewDeployWorkflow(
		archive.NewBuilder(s.root),
		api,
		upload.New(s.deps.HTTPClient),
		s.ui,
		s.logger,
	)
	workflow.Clock = s.deps.Clock

	store, err := s.deps.OpenHistory(s.ctx, cfg, s.root)
	if err != nil {
		s.ui.Warn(fmt.Sprintf("history disabled: %v", err))
	} else if store != nil {
		workflow.History = store
	}
	artifactMirror, err := s.deps.OpenMirror(s.ctx, cfg.Mirror)
	if err != nil {
		s.ui.Warn(fmt.Sprintf("mirror disabled: %v", err))
	} else if artifactMirror != nil {
		workflow.Mirror = artifactMirror
	}

	result, err := workflow.Run(s.ctx, deploy.Request{
		Function:      name,
		PollAttempts:  cli.Deploy.PollAttempts,
		FireAndForget: cli.Deploy.FireAndForget,
	})
	if err != nil {
		return s.fail(err)
	}

	rows := []ui.KeyValue{
		{Key: "Function", Value: result.Function},
		{Key: "Deployment", Value: result.DeploymentID},
		{Key: "State", Value: string(result.State)},
		{Key: "Checks", Value: result.Attempts},
		{Key: "Artifact", Value: result.ArtifactPath},
	}
	if result.MirrorLocation != "" {
		rows = append(rows, ui.KeyValue{Key: "Mirror", Value: result.MirrorLocation})
	}
	s.ui.Block("🚀", "Deploy", rows)
	return 0
}
