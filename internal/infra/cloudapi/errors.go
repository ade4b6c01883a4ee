// Where: cli/internal/infra/cloudapi/errors.go
// What: Typed API error carrying the failing action.
// Why: Let callers report which platform step failed without parsing strings.
package cloudapi

import (
	"errors"
	"fmt"

	"github.com/alibabacloud-go/tea/tea"
)

// APIError reports a failed or malformed platform response.
type APIError struct {
	Action  string
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s failed: %s: %s", e.Action, e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
	default:
		return fmt.Sprintf("%s failed", e.Action)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(action string, err error) *APIError {
	apiErr := &APIError{Action: action, Err: err}
	var sdkErr *tea.SDKError
	if errors.As(err, &sdkErr) {
		apiErr.Code = tea.StringValue(sdkErr.Code)
		apiErr.Message = tea.StringValue(sdkErr.Message)
	}
	return apiErr
}
