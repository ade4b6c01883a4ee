package deploy

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/poruru/alicf/cli/internal/infra/cloudapi"
	"github.com/poruru/alicf/cli/internal/infra/history"
	"github.com/poruru/alicf/cli/internal/infra/ui"
)

type callLog struct {
	calls []string
}

func (l *callLog) add(call string) {
	if l != nil {
		l.calls = append(l.calls, call)
	}
}

type recordBuilder struct {
	log   *callLog
	path  string
	names []string
	err   error
}

func (b *recordBuilder) Build(name string) (string, error) {
	b.log.add("build")
	b.names = append(b.names, name)
	if b.err != nil {
		return "", b.err
	}
	return b.path, nil
}

type fakeAPI struct {
	log        *callLog
	created    cloudapi.CreateDeploymentResult
	createErr  error
	listings   []cloudapi.ListDeploymentsResult
	listErr    error
	deployErr  error
	listCalls  int
	deployedID []string
}

func (a *fakeAPI) CreateDeployment(_ context.Context, _ string) (cloudapi.CreateDeploymentResult, error) {
	a.log.add("create")
	return a.created, a.createErr
}

func (a *fakeAPI) ListDeployments(_ context.Context, _ string) (cloudapi.ListDeploymentsResult, error) {
	a.log.add("list")
	a.listCalls++
	if a.listErr != nil {
		return cloudapi.ListDeploymentsResult{}, a.listErr
	}
	if len(a.listings) == 0 {
		return cloudapi.ListDeploymentsResult{}, nil
	}
	index := a.listCalls - 1
	if index >= len(a.listings) {
		index = len(a.listings) - 1
	}
	return a.listings[index], nil
}

func (a *fakeAPI) DeployFunction(_ context.Context, deploymentID string) (cloudapi.DeployFunctionResult, error) {
	a.log.add("deploy")
	a.deployedID = append(a.deployedID, deploymentID)
	return cloudapi.DeployFunctionResult{}, a.deployErr
}

type recordUploader struct {
	log   *callLog
	urls  []string
	paths []string
	err   error
}

func (u *recordUploader) Upload(_ context.Context, url, path string) ([]byte, error) {
	u.log.add("upload")
	u.urls = append(u.urls, url)
	u.paths = append(u.paths, path)
	if u.err != nil {
		return nil, u.err
	}
	return []byte("ok"), nil
}

type recordMirror struct {
	log *callLog
	err error
}

func (m *recordMirror) Mirror(_ context.Context, function, deploymentID, _ string) (string, error) {
	m.log.add("mirror")
	if m.err != nil {
		return "", m.err
	}
	return "s3://bucket/" + function + "/" + deploymentID + ".zip", nil
}

type recordHistory struct {
	entries []history.Entry
	err     error
}

func (h *recordHistory) Record(_ context.Context, entry history.Entry) error {
	h.entries = append(h.entries, entry)
	return h.err
}

// recordingClock fires every wait immediately and remembers its duration.
type recordingClock struct {
	clockwork.Clock
	waits []time.Duration
}

func newRecordingClock() *recordingClock {
	return &recordingClock{Clock: clockwork.NewFakeClockAt(time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC))}
}

func (c *recordingClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- c.Clock.Now().Add(d)
	return ch
}

type testUI struct {
	success []string
	info    []string
	warn    []string
}

func (u *testUI) Success(msg string) {
	u.success = append(u.success, msg)
}

func (u *testUI) Info(msg string) {
	u.info = append(u.info, msg)
}

func (u *testUI) Warn(msg string) {
	u.warn = append(u.warn, msg)
}

func (u *testUI) Block(_, _ string, _ []ui.KeyValue) {}

func listing(records ...[2]string) cloudapi.ListDeploymentsResult {
	out := cloudapi.ListDeploymentsResult{}
	for _, record := range records {
		out.DataList = append(out.DataList, cloudapi.DeploymentSummary{
			DeploymentId: record[0],
			Status:       cloudapi.DeploymentStatus{Status: record[1]},
		})
	}
	return out
}
