// Where: cli/internal/infra/mirror/mirror.go
// What: Copy uploaded artifacts to an S3 bucket.
// Why: Keep a retrievable copy of every artifact the platform received.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/alicf/cli/internal/infra/awsclient"
	"github.com/poruru/alicf/cli/internal/infra/config"
)

// S3API is the subset of *s3.Client the mirror uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Mirror uploads artifacts to Bucket under Prefix.
type S3Mirror struct {
	client S3API
	bucket string
	prefix string
}

func New(client S3API, bucket, prefix string) (*S3Mirror, error) {
	if client == nil {
		return nil, errors.New("s3 client is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("mirror bucket is required")
	}
	return &S3Mirror{client: client, bucket: bucket, prefix: prefix}, nil
}

// Open returns a mirror for cfg, or nil when mirroring is disabled.
func Open(ctx context.Context, cfg config.MirrorConfig) (*S3Mirror, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client, err := awsclient.NewS3(ctx, awsclient.Target{Region: cfg.Region, Endpoint: cfg.Endpoint})
	if err != nil {
		return nil, err
	}
	return New(client, cfg.Bucket, cfg.Prefix)
}

// Key returns <prefix><function>/<deploymentID>.zip.
func Key(prefix, function, deploymentID string) string {
	return prefix + path.Join(function, deploymentID+".zip")
}

// Mirror uploads the artifact and returns its s3:// location.
func (m *S3Mirror) Mirror(ctx context.Context, function, deploymentID, artifactPath string) (string, error) {
	file, err := os.Open(artifactPath)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat artifact: %w", err)
	}

	key := Key(m.prefix, function, deploymentID)
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/zip"),
		Metadata: map[string]string{
			"function":      function,
			"deployment-id": deploymentID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", m.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", m.bucket, key), nil
}
