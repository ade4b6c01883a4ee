// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/alicf/cli/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining the CLI prefix with the given suffix.
// Example: HostEnvKey("ROOT") returns "ALICF_ROOT".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + strings.ToUpper(strings.TrimSpace(suffix))
}

// GetHostEnv retrieves a host-level environment variable with surrounding
// whitespace removed.
// Example: GetHostEnv("ROOT") returns the value of ALICF_ROOT.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// HostEnvOrDefault returns the host-level value or fallback when unset.
func HostEnvOrDefault(suffix, fallback string) string {
	if value := GetHostEnv(suffix); value != "" {
		return value
	}
	return fallback
}
