// Where: cli/internal/usecase/deploy/deploy.go
// What: Deployment lifecycle orchestration: build, create, upload, locate, trigger.
// Why: Encapsulate the deploy sequence and its wait/retry policy without CLI concerns.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/poruru/alicf/cli/internal/domain/deployment"
	"github.com/poruru/alicf/cli/internal/infra/cloudapi"
	"github.com/poruru/alicf/cli/internal/infra/history"
	"github.com/poruru/alicf/cli/internal/infra/ui"
)

const (
	// DefaultPollAttempts is how many times the listing is checked for the new deployment.
	DefaultPollAttempts = 5
	// FireAndForgetPollAttempts is the default when a not-ready deployment is tolerated.
	FireAndForgetPollAttempts = 1

	settleSteps    = 2
	settleInterval = time.Second
	giveUpInterval = time.Second
)

var (
	// ErrDeploymentNotReady reports that the created deployment never showed up as DEPLOY_INIT.
	ErrDeploymentNotReady = errors.New("deployment not ready")
	// ErrDeploymentTimedOut reports that polling gave up. It always accompanies ErrDeploymentNotReady.
	ErrDeploymentTimedOut = errors.New("deployment timed out")

	errBuilderNotConfigured  = errors.New("builder is not configured")
	errAPINotConfigured      = errors.New("deployment api is not configured")
	errUploaderNotConfigured = errors.New("uploader is not configured")
)

// Builder produces the artifact for a function and returns its path.
type Builder interface {
	Build(name string) (string, error)
}

// DeploymentAPI is the subset of platform actions a deploy uses.
type DeploymentAPI interface {
	CreateDeployment(ctx context.Context, name string) (cloudapi.CreateDeploymentResult, error)
	ListDeployments(ctx context.Context, name string) (cloudapi.ListDeploymentsResult, error)
	DeployFunction(ctx context.Context, deploymentID string) (cloudapi.DeployFunctionResult, error)
}

// Uploader sends the artifact to a signed URL.
type Uploader interface {
	Upload(ctx context.Context, url, path string) ([]byte, error)
}

// ArtifactMirror keeps a copy of uploaded artifacts.
type ArtifactMirror interface {
	Mirror(ctx context.Context, function, deploymentID, artifactPath string) (string, error)
}

// HistoryRecorder stores the outcome of each deploy.
type HistoryRecorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Request captures the inputs of one deploy.
type Request struct {
	Function string
	// PollAttempts bounds listing checks. Zero means DefaultPollAttempts, or
	// FireAndForgetPollAttempts when FireAndForget is set.
	PollAttempts int
	// FireAndForget reports a deployment that never became ready without failing.
	FireAndForget bool
}

// Result describes how far a deploy got.
type Result struct {
	Function       string
	ArtifactPath   string
	DeploymentID   string
	State          deployment.State
	Triggered      bool
	Attempts       int
	MirrorLocation string
}

// Workflow executes the deploy lifecycle. Mirror and History are optional.
type Workflow struct {
	Builder       Builder
	API           DeploymentAPI
	Uploader      Uploader
	Mirror        ArtifactMirror
	History       HistoryRecorder
	UserInterface ui.UserInterface
	Clock         clockwork.Clock
	Logger        *slog.Logger
}

// NewDeployWorkflow constructs a Workflow with a real clock.
func NewDeployWorkflow(
	builder Builder,
	api DeploymentAPI,
	uploader Uploader,
	userInterface ui.UserInterface,
	logger *slog.Logger,
) Workflow {
	return Workflow{
		Builder:       builder,
		API:           api,
		Uploader:      uploader,
		UserInterface: userInterface,
		Clock:         clockwork.NewRealClock(),
		Logger:        logger,
	}
}

// Run deploys one function. Any failing step aborts with that step's error;
// nothing is rolled back.
func (w Workflow) Run(ctx context.Context, req Request) (Result, error) {
	if w.Builder == nil {
		return Result{}, errBuilderNotConfigured
	}
	if w.API == nil {
		return Result{}, errAPINotConfigured
	}
	if w.Uploader == nil {
		return Result{}, errUploaderNotConfigured
	}

	entry := history.NewEntry(req.Function, w.clock().Now())
	result, err := w.run(ctx, req)
	w.record(ctx, entry, result, err)
	return result, err
}

func (w Workflow) run(ctx context.Context, req Request) (Result, error) {
	result := Result{Function: req.Function}
	out := w.ui()
	out.Info(fmt.Sprintf("deploy: %s", req.Function))

	path, err := w.Builder.Build(req.Function)
	if err != nil {
		return w.fail(result, fmt.Errorf("build artifact: %w", err))
	}
	result.ArtifactPath = path
	w.transition(&result, deployment.StateBuilt)
	out.Info(fmt.Sprintf("artifact: %s", path))

	created, err := w.API.CreateDeployment(ctx, req.Function)
	if err != nil {
		return w.fail(result, fmt.Errorf("create deployment: %w", err))
	}
	result.DeploymentID = created.DeploymentId
	w.transition(&result, deployment.StateCreated)

	body, err := w.Uploader.Upload(ctx, created.UploadSignedUrl, path)
	if err != nil {
		return w.fail(result, fmt.Errorf("upload artifact: %w", err))
	}
	w.transition(&result, deployment.StateUploaded)
	w.logger().Debug("upload response", "deployment", created.DeploymentId, "bytes", len(body))
	result.MirrorLocation = w.mirror(ctx, req.Function, created.DeploymentId, path)

	for step := 1; step <= settleSteps; step++ {
		if err := w.wait(ctx, settleInterval); err != nil {
			return w.fail(result, err)
		}
		out.Info(fmt.Sprintf("waiting %ds", step))
	}
	w.transition(&result, deployment.StatePending)

	attempts, found, err := w.locate(ctx, req, created.DeploymentId)
	result.Attempts = attempts
	if err != nil {
		return w.fail(result, err)
	}
	if !found {
		out.Info(fmt.Sprintf("deployment %s not ready", created.DeploymentId))
		if err := w.wait(ctx, giveUpInterval); err != nil {
			return w.fail(result, err)
		}
		w.transition(&result, deployment.StateTimedOut)
		if req.FireAndForget {
			out.Warn(fmt.Sprintf("deployment %s was not triggered", created.DeploymentId))
			return result, nil
		}
		return result, fmt.Errorf("%w: %w: %s after %d checks", ErrDeploymentTimedOut, ErrDeploymentNotReady, created.DeploymentId, attempts)
	}
	w.transition(&result, deployment.StateReady)

	if _, err := w.API.DeployFunction(ctx, created.DeploymentId); err != nil {
		return w.fail(result, fmt.Errorf("trigger deployment: %w", err))
	}
	result.Triggered = true
	w.transition(&result, deployment.StateTriggered)
	out.Success(fmt.Sprintf("deployment %s triggered", created.DeploymentId))
	return result, nil
}

func (w Workflow) fail(result Result, err error) (Result, error) {
	w.logger().Debug("deploy failed", "function", result.Function, "state", result.State, "error", err)
	return result, err
}

func (w Workflow) transition(result *Result, state deployment.State) {
	result.State = state
	w.logger().Debug("deploy state", "function", result.Function, "deployment", result.DeploymentID, "state", state)
}

func (w Workflow) mirror(ctx context.Context, function, deploymentID, path string) string {
	if w.Mirror == nil {
		return ""
	}
	location, err := w.Mirror.Mirror(ctx, function, deploymentID, path)
	if err != nil {
		w.ui().Warn(fmt.Sprintf("mirror artifact: %v", err))
		return ""
	}
	w.ui().Info(fmt.Sprintf("mirrored: %s", location))
	return location
}

func (w Workflow) record(ctx context.Context, entry history.Entry, result Result, runErr error) {
	if w.History == nil {
		return
	}
	entry.DeploymentID = result.DeploymentID
	entry.State = result.State
	entry.Triggered = result.Triggered
	entry.FinishedAt = w.clock().Now().UTC()
	if runErr != nil {
		entry.Error = runErr.Error()
		if result.State != deployment.StateTimedOut {
			entry.State = deployment.StateFailed
		}
	}
	if err := w.History.Record(context.WithoutCancel(ctx), entry); err != nil {
		w.ui().Warn(fmt.Sprintf("record deploy history: %v", err))
	}
}

func (w Workflow) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.clock().After(d):
		return nil
	}
}

func (w Workflow) clock() clockwork.Clock {
	if w.Clock == nil {
		return clockwork.NewRealClock()
	}
	return w.Clock
}

func (w Workflow) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Logger
}

func (w Workflow) ui() ui.UserInterface {
	if w.UserInterface == nil {
		return discardUI{}
	}
	return w.UserInterface
}

type discardUI struct{}

func (discardUI) Info(string)                         {}
func (discardUI) Warn(string)                         {}
func (discardUI) Success(string)                      {}
func (discardUI) Block(string, string, []ui.KeyValue) {}
