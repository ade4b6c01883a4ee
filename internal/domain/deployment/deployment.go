// Where: cli/internal/domain/deployment/deployment.go
// What: Deployment lifecycle states and provider deployment records.
// Why: Keep the lifecycle vocabulary and the locate rule free of transport concerns.
package deployment

// State is a step of the local deployment lifecycle.
type State string

const (
	StateBuilt     State = "BUILT"
	StateCreated   State = "CREATED"
	StateUploaded  State = "UPLOADED"
	StatePending   State = "PENDING"
	StateReady     State = "READY"
	StateTimedOut  State = "TIMED_OUT"
	StateTriggered State = "TRIGGERED"
	StateFailed    State = "FAILED"
)

// StatusInit is the provider status of a deployment that received its
// artifact and waits for activation.
const StatusInit = "DEPLOY_INIT"

// Record is the controller's view of one provider deployment.
// Status is opaque apart from StatusInit.
type Record struct {
	DeploymentID string
	Status       string
}

// Locate returns the record created by this deploy: the one whose id equals
// deploymentID and whose status is StatusInit. Older deployments of the same
// function may be listed in any order, so neither position nor recency counts.
func Locate(records []Record, deploymentID string) (Record, bool) {
	if deploymentID == "" {
		return Record{}, false
	}
	for _, record := range records {
		if record.DeploymentID == deploymentID && record.Status == StatusInit {
			return record, true
		}
	}
	return Record{}, false
}
