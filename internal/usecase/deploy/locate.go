// Where: cli/internal/usecase/deploy/locate.go
// What: Poll the deployment listing until the created deployment is DEPLOY_INIT.
// Why: The platform needs a moment after upload before a deployment can be activated.
package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/poruru/alicf/cli/internal/domain/deployment"
)

const (
	locateInitialInterval = time.Second
	locateMaxInterval     = 8 * time.Second
	locateMultiplier      = 2
)

// newLocateBackOff yields 1s, 2s, 4s, 8s, 8s... between listing checks.
func newLocateBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = locateInitialInterval
	b.MaxInterval = locateMaxInterval
	b.Multiplier = locateMultiplier
	b.RandomizationFactor = 0
	b.Reset()
	return b
}

// locate checks the listing up to the configured attempts and reports how
// many checks ran and whether the created deployment was found.
func (w Workflow) locate(ctx context.Context, req Request, deploymentID string) (int, bool, error) {
	attempts := req.pollAttempts()
	delays := newLocateBackOff()

	for attempt := 1; ; attempt++ {
		listing, err := w.API.ListDeployments(ctx, req.Function)
		if err != nil {
			return attempt, false, fmt.Errorf("list deployments: %w", err)
		}
		if record, ok := deployment.Locate(listing.Records(), deploymentID); ok {
			w.logger().Debug("deployment located", "deployment", record.DeploymentID, "attempt", attempt)
			return attempt, true, nil
		}
		if attempt >= attempts {
			return attempt, false, nil
		}
		delay := delays.NextBackOff()
		w.logger().Debug("deployment not initialized", "deployment", deploymentID, "attempt", attempt, "retry_in", delay)
		if err := w.wait(ctx, delay); err != nil {
			return attempt, false, err
		}
	}
}

func (r Request) pollAttempts() int {
	switch {
	case r.PollAttempts > 0:
		return r.PollAttempts
	case r.FireAndForget:
		return FireAndForgetPollAttempts
	default:
		return DefaultPollAttempts
	}
}
