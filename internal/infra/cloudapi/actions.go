// Where: cli/internal/infra/cloudapi/actions.go
// What: Typed platform actions built on Gateway.do.
// Why: Give callers concrete request and result shapes per action.
package cloudapi

import (
	"context"
	"encoding/json"
	"fmt"

	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"github.com/poruru/alicf/cli/internal/domain/deployment"
)

type CreateDeploymentResult struct {
	RequestId       string `json:"RequestId"`
	DeploymentId    string `json:"DeploymentId"`
	UploadSignedUrl string `json:"UploadSignedUrl"`
}

type DeploymentStatus struct {
	Status string `json:"Status"`
}

type DeploymentSummary struct {
	DeploymentId string           `json:"DeploymentId"`
	Status       DeploymentStatus `json:"Status"`
}

type ListDeploymentsResult struct {
	RequestId string              `json:"RequestId"`
	DataList  []DeploymentSummary `json:"DataList"`
}

// Records converts the listing to the lifecycle's record view.
func (r ListDeploymentsResult) Records() []deployment.Record {
	out := make([]deployment.Record, 0, len(r.DataList))
	for _, item := range r.DataList {
		out = append(out, deployment.Record{DeploymentID: item.DeploymentId, Status: item.Status.Status})
	}
	return out
}

type DeployFunctionResult struct {
	RequestId string                 `json:"RequestId"`
	Raw       map[string]interface{} `json:"-"`
}

type RunFunctionResult struct {
	RequestId string                 `json:"RequestId"`
	Raw       map[string]interface{} `json:"-"`
}

type CreateFunctionResult struct {
	RequestId string                 `json:"RequestId"`
	Raw       map[string]interface{} `json:"-"`
}

type UpdateFunctionResult struct {
	RequestId string                 `json:"RequestId"`
	Raw       map[string]interface{} `json:"-"`
}

// CreateDeployment opens a deployment for name and returns its upload target.
func (g *Gateway) CreateDeployment(ctx context.Context, name string) (CreateDeploymentResult, error) {
	raw, err := g.do(ctx, call{
		action: ActionCreateDeployment,
		body:   map[string]interface{}{"Name": name},
	})
	if err != nil {
		return CreateDeploymentResult{}, err
	}
	var result CreateDeploymentResult
	if err := decode(ActionCreateDeployment, raw, &result); err != nil {
		return CreateDeploymentResult{}, err
	}
	if result.DeploymentId == "" || result.UploadSignedUrl == "" {
		return CreateDeploymentResult{}, &APIError{
			Action: ActionCreateDeployment,
			Err:    fmt.Errorf("%w: DeploymentId and UploadSignedUrl are required", ErrInvalidResponse),
		}
	}
	return result, nil
}

// ListDeployments lists deployments of name in every status.
func (g *Gateway) ListDeployments(ctx context.Context, name string) (ListDeploymentsResult, error) {
	raw, err := g.do(ctx, call{
		action: ActionListDeployments,
		body:   map[string]interface{}{"Name": name},
		query:  map[string]*string{"Status": tea.String("")},
	})
	if err != nil {
		return ListDeploymentsResult{}, err
	}
	var result ListDeploymentsResult
	if err := decode(ActionListDeployments, raw, &result); err != nil {
		return ListDeploymentsResult{}, err
	}
	return result, nil
}

// DeployFunction activates a previously uploaded deployment.
func (g *Gateway) DeployFunction(ctx context.Context, deploymentID string) (DeployFunctionResult, error) {
	raw, err := g.do(ctx, call{
		action: ActionDeployFunction,
		body:   map[string]interface{}{"DeploymentId": deploymentID},
	})
	if err != nil {
		return DeployFunctionResult{}, err
	}
	result := DeployFunctionResult{Raw: raw}
	if err := decode(ActionDeployFunction, raw, &result); err != nil {
		return DeployFunctionResult{}, err
	}
	return result, nil
}

type invocation struct {
	FunctionTarget string      `json:"functionTarget"`
	FunctionArgs   interface{} `json:"functionArgs"`
}

// RunFunction invokes name with args and returns the response body verbatim.
func (g *Gateway) RunFunction(ctx context.Context, name string, args interface{}) (RunFunctionResult, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	payload, err := json.Marshal(invocation{FunctionTarget: name, FunctionArgs: args})
	if err != nil {
		return RunFunctionResult{}, fmt.Errorf("encode invocation: %w", err)
	}
	raw, err := g.do(ctx, call{
		action:  ActionRunFunction,
		body:    map[string]interface{}{"Body": string(payload)},
		runtime: &util.RuntimeOptions{ReadTimeout: tea.Int(RunReadTimeoutMillis)},
	})
	if err != nil {
		return RunFunctionResult{}, err
	}
	result := RunFunctionResult{Raw: raw}
	if err := decode(ActionRunFunction, raw, &result); err != nil {
		return RunFunctionResult{}, err
	}
	return result, nil
}

// CreateFunction registers name on the platform.
func (g *Gateway) CreateFunction(ctx context.Context, name string) (CreateFunctionResult, error) {
	raw, err := g.do(ctx, call{
		action: ActionCreateFunction,
		body:   map[string]interface{}{"Name": name},
	})
	if err != nil {
		return CreateFunctionResult{}, err
	}
	result := CreateFunctionResult{Raw: raw}
	if err := decode(ActionCreateFunction, raw, &result); err != nil {
		return CreateFunctionResult{}, err
	}
	return result, nil
}

// UpdateFunction sets the timing trigger of name. A string payload is sent
// verbatim; any other value is JSON encoded.
func (g *Gateway) UpdateFunction(ctx context.Context, name, cron string, payload interface{}) (UpdateFunctionResult, error) {
	encoded, err := encodePayload(payload)
	if err != nil {
		return UpdateFunctionResult{}, err
	}
	raw, err := g.do(ctx, call{
		action: ActionUpdateFunction,
		body: map[string]interface{}{
			"TimingTriggerConfig":      cron,
			"TimingTriggerUserPayload": encoded,
			"Name":                     name,
		},
	})
	if err != nil {
		return UpdateFunctionResult{}, err
	}
	result := UpdateFunctionResult{Raw: raw}
	if err := decode(ActionUpdateFunction, raw, &result); err != nil {
		return UpdateFunctionResult{}, err
	}
	return result, nil
}

func encodePayload(payload interface{}) (string, error) {
	switch value := payload.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encode trigger payload: %w", err)
		}
		return string(data), nil
	}
}
