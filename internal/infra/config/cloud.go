// Where: cli/internal/infra/config/cloud.go
// What: Cloud configuration model and loader.
// Why: Load credentials, space, and triggers once and hand them to constructors explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/poruru/alicf/cli/internal/envutil"
	"github.com/poruru/alicf/cli/internal/meta"
)

var ErrConfigNotFound = errors.New("config file not found")

const (
	HistoryBackendYAML   = "yaml"
	HistoryBackendDynamo = "dynamodb"
)

// CloudConfig is the immutable configuration of one CLI run.
type CloudConfig struct {
	AccessKeyID     string             `json:"accessKeyId"`
	AccessKeySecret string             `json:"accessKeySecret"`
	SpaceID         string             `json:"spaceId"`
	Endpoint        string             `json:"endpoint,omitempty"`
	Triggers        map[string]Trigger `json:"triggers,omitempty"`
	History         HistoryConfig      `json:"history,omitempty"`
	Mirror          MirrorConfig       `json:"mirror,omitempty"`
}

// Trigger is the timing trigger of one function. Payload is either a string
// or any JSON value.
type Trigger struct {
	Cron    string      `json:"cron"`
	Payload interface{} `json:"payload,omitempty"`
}

// HistoryConfig selects where deploy outcomes are recorded.
type HistoryConfig struct {
	Backend  string `json:"backend,omitempty"`
	Table    string `json:"table,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// MirrorConfig enables the S3 artifact mirror when Bucket is set.
type MirrorConfig struct {
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Enabled reports whether artifacts should be mirrored.
func (m MirrorConfig) Enabled() bool {
	return strings.TrimSpace(m.Bucket) != ""
}

// TriggerFor returns the trigger configured for name.
func (c CloudConfig) TriggerFor(name string) (Trigger, bool) {
	trigger, ok := c.Triggers[name]
	return trigger, ok
}

// HistoryBackend returns the configured backend, defaulting to yaml.
func (c CloudConfig) HistoryBackend() string {
	if c.History.Backend == "" {
		return HistoryBackendYAML
	}
	return c.History.Backend
}

// envKeys maps environment suffixes to config keys.
var envKeys = map[string]string{
	"ACCESS_KEY_ID":     "accessKeyId",
	"ACCESS_KEY_SECRET": "accessKeySecret",
	"SPACE_ID":          "spaceId",
	"ENDPOINT":          "endpoint",
}

// Load reads path (JSON, or YAML for .yaml/.yml), validates it against the
// config schema, applies environment overrides and validates the result.
func Load(path string) (CloudConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return CloudConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return CloudConfig{}, fmt.Errorf("stat config: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return CloudConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := validateDocument(content); err != nil {
		return CloudConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	k := koanf.New("/")
	var parser koanf.Parser = json.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return CloudConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := loadEnvironment(k); err != nil {
		return CloudConfig{}, fmt.Errorf("load environment overrides: %w", err)
	}

	var cfg CloudConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return CloudConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return CloudConfig{}, err
	}
	return cfg, nil
}

func loadEnvironment(k *koanf.Koanf) error {
	prefix := meta.EnvPrefix + "_"
	return k.Load(env.ProviderWithValue(prefix, "/", func(key, value string) (string, interface{}) {
		configKey, ok := envKeys[strings.TrimPrefix(key, prefix)]
		if !ok || strings.TrimSpace(value) == "" {
			return "", nil
		}
		return configKey, value
	}), nil)
}

// OverrideKeys lists the environment variables Load honours.
func OverrideKeys() []string {
	keys := make([]string, 0, len(envKeys))
	for _, suffix := range []string{"ACCESS_KEY_ID", "ACCESS_KEY_SECRET", "SPACE_ID", "ENDPOINT"} {
		keys = append(keys, envutil.HostEnvKey(suffix))
	}
	return keys
}
