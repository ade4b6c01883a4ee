// Where: cli/internal/infra/cloudapi/gateway.go
// What: RPC gateway for the serverless platform OpenAPI.
// Why: Keep signing, request shape, and response decoding in one adapter.
package cloudapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"github.com/poruru/alicf/cli/internal/meta"
)

const (
	ActionCreateDeployment = "CreateFunctionDeployment"
	ActionListDeployments  = "ListFunctionDeployment"
	ActionDeployFunction   = "DeployFunction"
	ActionRunFunction      = "RunFunction"
	ActionCreateFunction   = "CreateFunction"
	ActionUpdateFunction   = "UpdateFunction"

	// RunReadTimeoutMillis bounds how long an invocation may take to answer.
	RunReadTimeoutMillis = 10 * 1000
)

var (
	ErrMissingCredentials = errors.New("access key id and secret are required")
	ErrMissingSpaceID     = errors.New("space id is required")
	ErrInvalidResponse    = errors.New("invalid api response")
)

// Caller performs one signed OpenAPI request. *openapi.Client satisfies it.
type Caller interface {
	CallApi(params *openapi.Params, request *openapi.OpenApiRequest, runtime *util.RuntimeOptions) (map[string]interface{}, error)
}

// Settings identifies the account and space every request is scoped to.
type Settings struct {
	AccessKeyID     string
	AccessKeySecret string
	SpaceID         string
	Endpoint        string
}

// Gateway issues platform actions. It never retries.
type Gateway struct {
	caller  Caller
	spaceID string
	logger  *slog.Logger
}

// New builds a Gateway backed by the platform SDK client.
func New(settings Settings, logger *slog.Logger) (*Gateway, error) {
	if settings.AccessKeyID == "" || settings.AccessKeySecret == "" {
		return nil, ErrMissingCredentials
	}
	endpoint := settings.Endpoint
	if endpoint == "" {
		endpoint = meta.DefaultEndpoint
	}
	client, err := openapi.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(settings.AccessKeyID),
		AccessKeySecret: tea.String(settings.AccessKeySecret),
		Endpoint:        tea.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return NewWithCaller(client, settings.SpaceID, logger)
}

// NewWithCaller builds a Gateway around an existing Caller.
func NewWithCaller(caller Caller, spaceID string, logger *slog.Logger) (*Gateway, error) {
	if caller == nil {
		return nil, errors.New("api caller is required")
	}
	if spaceID == "" {
		return nil, ErrMissingSpaceID
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{caller: caller, spaceID: spaceID, logger: logger}, nil
}

// SpaceID returns the space every request is scoped to.
func (g *Gateway) SpaceID() string {
	return g.spaceID
}

func apiParams(action string) *openapi.Params {
	return &openapi.Params{
		Action:      tea.String(action),
		Version:     tea.String(meta.APIVersion),
		Protocol:    tea.String("HTTPS"),
		Method:      tea.String("POST"),
		AuthType:    tea.String("AK"),
		Style:       tea.String("RPC"),
		Pathname:    tea.String("/"),
		ReqBodyType: tea.String("formData"),
		BodyType:    tea.String("json"),
	}
}

type call struct {
	action  string
	body    map[string]interface{}
	query   map[string]*string
	runtime *util.RuntimeOptions
}

// do sends one action and returns the decoded response body.
func (g *Gateway) do(ctx context.Context, c call) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body := make(map[string]interface{}, len(c.body)+1)
	for key, value := range c.body {
		body[key] = value
	}
	body["SpaceId"] = g.spaceID

	request := &openapi.OpenApiRequest{Body: body}
	if c.query != nil {
		request.Query = c.query
	}
	runtime := c.runtime
	if runtime == nil {
		runtime = &util.RuntimeOptions{}
	}

	g.logger.Debug("api call", "action", c.action)
	resp, err := g.caller.CallApi(apiParams(c.action), request, runtime)
	if err != nil {
		g.logger.Debug("api call failed", "action", c.action, "error", err)
		return nil, newAPIError(c.action, err)
	}
	raw, _ := resp["body"].(map[string]interface{})
	if raw == nil {
		return nil, &APIError{Action: c.action, Err: fmt.Errorf("%w: missing body", ErrInvalidResponse)}
	}
	return raw, nil
}

func decode(action string, raw map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return &APIError{Action: action, Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Action: action, Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}
	return nil
}
