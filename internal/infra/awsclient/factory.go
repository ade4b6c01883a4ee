// Where: cli/internal/infra/awsclient/factory.go
// What: AWS SDK client construction for the history table and artifact mirror.
// Why: Encapsulate region, endpoint and credential selection for real AWS and local emulators.
package awsclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/alicf/cli/internal/envutil"
)

const defaultAWSRegion = "ap-northeast-1"

// Target selects where a client connects. An empty Endpoint means the
// regional AWS endpoint with the default credential chain.
type Target struct {
	Region   string
	Endpoint string
}

// NewDynamoDB returns a DynamoDB client for target.
func NewDynamoDB(ctx context.Context, target Target) (*dynamodb.Client, error) {
	cfg, err := loadAWSConfig(ctx, target)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if target.Endpoint != "" {
			options.BaseEndpoint = aws.String(target.Endpoint)
		}
	}), nil
}

// NewS3 returns an S3 client for target. Custom endpoints use path-style
// addressing so emulators without wildcard DNS work.
func NewS3(ctx context.Context, target Target) (*s3.Client, error) {
	cfg, err := loadAWSConfig(ctx, target)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(options *s3.Options) {
		if target.Endpoint != "" {
			options.BaseEndpoint = aws.String(target.Endpoint)
			options.UsePathStyle = true
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, target Target) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(resolveRegion(target.Region)),
	}
	if strings.TrimSpace(target.Endpoint) != "" {
		creds := credentials.NewStaticCredentialsProvider(emulatorAccessKey(), emulatorSecretKey(), "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func resolveRegion(region string) string {
	if value := strings.TrimSpace(region); value != "" {
		return value
	}
	if value := os.Getenv("AWS_REGION"); value != "" {
		return value
	}
	return defaultAWSRegion
}

func emulatorAccessKey() string {
	return envutil.HostEnvOrDefault("AWS_ACCESS_KEY", "dummy")
}

func emulatorSecretKey() string {
	return envutil.HostEnvOrDefault("AWS_SECRET_KEY", "dummy")
}
