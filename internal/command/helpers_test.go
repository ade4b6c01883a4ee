package command

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/poruru/alicf/cli/internal/domain/deployment"
	"github.com/poruru/alicf/cli/internal/infra/cloudapi"
	"github.com/poruru/alicf/cli/internal/infra/config"
	"github.com/poruru/alicf/cli/internal/infra/debugrun"
	"github.com/poruru/alicf/cli/internal/usecase/deploy"
)

const testConfig = `{
  "accessKeyId": "ak",
  "accessKeySecret": "sk",
  "spaceId": "S1",
  "triggers": {
    "hello": {"cron": "0 0 * * * *", "payload": "tick"}
  }
}
`

type fakeCloud struct {
	calls     []string
	uploadURL string
	runArgs   interface{}
	cron      string
}

func (f *fakeCloud) CreateDeployment(_ context.Context, name string) (cloudapi.CreateDeploymentResult, error) {
	f.calls = append(f.calls, "create-deployment:"+name)
	return cloudapi.CreateDeploymentResult{DeploymentId: "d-1", UploadSignedUrl: f.uploadURL}, nil
}

func (f *fakeCloud) ListDeployments(_ context.Context, name string) (cloudapi.ListDeploymentsResult, error) {
	f.calls = append(f.calls, "list:"+name)
	return cloudapi.ListDeploymentsResult{DataList: []cloudapi.DeploymentSummary{{
		DeploymentId: "d-1",
		Status:       cloudapi.DeploymentStatus{Status: deployment.StatusInit},
	}}}, nil
}

func (f *fakeCloud) DeployFunction(_ context.Context, id string) (cloudapi.DeployFunctionResult, error) {
	f.calls = append(f.calls, "deploy:"+id)
	return cloudapi.DeployFunctionResult{}, nil
}

func (f *fakeCloud) RunFunction(_ context.Context, name string, args interface{}) (cloudapi.RunFunctionResult, error) {
	f.calls = append(f.calls, "run:"+name)
	f.runArgs = args
	return cloudapi.RunFunctionResult{Raw: map[string]interface{}{"Data": "pong"}}, nil
}

func (f *fakeCloud) CreateFunction(_ context.Context, name string) (cloudapi.CreateFunctionResult, error) {
	f.calls = append(f.calls, "create-function:"+name)
	return cloudapi.CreateFunctionResult{}, nil
}

func (f *fakeCloud) UpdateFunction(_ context.Context, name, cron string, _ interface{}) (cloudapi.UpdateFunctionResult, error) {
	f.calls = append(f.calls, "update:"+name)
	f.cron = cron
	return cloudapi.UpdateFunctionResult{}, nil
}

// instantClock fires every wait immediately.
type instantClock struct {
	clockwork.Clock
}

func (c instantClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.Clock.Now().Add(d)
	return ch
}

type fakePrompter struct {
	options  []string
	selected string
}

func (p *fakePrompter) Input(_, _ string) (string, error) {
	return "", errors.New("unexpected input prompt")
}

func (p *fakePrompter) Select(_ string, options []string) (string, error) {
	p.options = append([]string{}, options...)
	return p.selected, nil
}

type harness struct {
	dir   string
	root  string
	out   bytes.Buffer
	cloud *fakeCloud
	deps  Dependencies
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("ALICF_ROOT", "")
	dir := t.TempDir()
	h := &harness{
		dir:   dir,
		root:  filepath.Join(dir, "cloudfunctions"),
		cloud: &fakeCloud{},
	}
	h.deps = Dependencies{
		Context:    context.Background(),
		Out:        &h.out,
		ErrOut:     &h.out,
		Getwd:      func() (string, error) { return dir, nil },
		IsTerminal: func() bool { return false },
		Clock:      instantClock{Clock: clockwork.NewFakeClockAt(time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC))},
		NewGateway: func(cfg config.CloudConfig, _ *slog.Logger) (CloudAPI, error) {
			if cfg.SpaceID != "S1" {
				t.Fatalf("unexpected space: %q", cfg.SpaceID)
			}
			return h.cloud, nil
		},
		NewDockerClient: func() (debugrun.DockerClient, error) {
			return nil, errors.New("docker unavailable")
		},
		OpenMirror: func(context.Context, config.MirrorConfig) (deploy.ArtifactMirror, error) {
			return nil, nil
		},
	}
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	return Run(args, h.deps)
}

func (h *harness) writeConfig(t *testing.T) {
	t.Helper()
	writeFile(t, filepath.Join(h.root, "config.json"), testConfig)
}

func (h *harness) writeFunction(t *testing.T, name string) {
	t.Helper()
	writeFile(t, filepath.Join(h.root, name, "index.js"), "exports.main = async () => 'ok'\n")
}

func (h *harness) uploadServer(t *testing.T) *int {
	t.Helper()
	uploads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		uploads++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	h.cloud.uploadURL = server.URL + "/upload"
	h.deps.HTTPClient = server.Client()
	return &uploads
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
