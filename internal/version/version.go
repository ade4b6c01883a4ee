// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Provide build-time version information (Git commit, state) to the CLI.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/poruru/alicf/cli/internal/meta"
)

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the VCS revision the binary was built from.
// It returns "dev" when no build info or revision is embedded and appends
// "(dirty)" when the tree was modified.
func GetVersion() string {
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}

// Banner returns the application name followed by its version.
func Banner() string {
	return fmt.Sprintf("%s %s", meta.AppName, GetVersion())
}
