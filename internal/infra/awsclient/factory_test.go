package awsclient

import (
	"context"
	"testing"
)

func TestResolveRegionPriority(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	if got := resolveRegion(""); got != defaultAWSRegion {
		t.Fatalf("expected default region, got %s", got)
	}
	t.Setenv("AWS_REGION", "eu-west-1")
	if got := resolveRegion(""); got != "eu-west-1" {
		t.Fatalf("expected env region, got %s", got)
	}
	if got := resolveRegion("us-east-2"); got != "us-east-2" {
		t.Fatalf("expected explicit region, got %s", got)
	}
}

func TestEmulatorCredentialsFromEnv(t *testing.T) {
	t.Setenv("ALICF_AWS_ACCESS_KEY", "")
	t.Setenv("ALICF_AWS_SECRET_KEY", "")
	if emulatorAccessKey() != "dummy" || emulatorSecretKey() != "dummy" {
		t.Fatalf("expected dummy emulator credentials")
	}
	t.Setenv("ALICF_AWS_ACCESS_KEY", "local")
	t.Setenv("ALICF_AWS_SECRET_KEY", "secret")
	if emulatorAccessKey() != "local" || emulatorSecretKey() != "secret" {
		t.Fatalf("expected env emulator credentials")
	}
}

func TestEndpointClientsUseStaticCredentials(t *testing.T) {
	t.Setenv("ALICF_AWS_ACCESS_KEY", "")
	t.Setenv("ALICF_AWS_SECRET_KEY", "")
	target := Target{Region: "us-east-1", Endpoint: "http://localhost:4566"}
	cfg, err := loadAWSConfig(context.Background(), target)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "dummy" || creds.SecretAccessKey != "dummy" {
		t.Fatalf("expected static credentials, got %+v", creds)
	}
	if cfg.Region != "us-east-1" {
		t.Fatalf("unexpected region: %s", cfg.Region)
	}
	if _, err := NewS3(context.Background(), target); err != nil {
		t.Fatalf("new s3: %v", err)
	}
	if _, err := NewDynamoDB(context.Background(), target); err != nil {
		t.Fatalf("new dynamodb: %v", err)
	}
}
