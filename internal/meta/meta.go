// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep names, directory layout, and provider identity in one place.
package meta

const (
	// Project Identity
	AppName   = "alicf"
	EnvPrefix = "ALICF"

	// Directory Layout
	FunctionsDir = "cloudfunctions"
	ScratchDir   = ".deploy"
	ConfigFile   = "config.json"
	HistoryFile  = "history.yaml"

	// Host project integration
	PackageManifest = "package.json"
	PackageScript   = "cf"
	PackageCommand  = "alicf"

	// Provider
	DefaultEndpoint = "mpserverless.aliyuncs.com"
	APIVersion      = "2019-06-15"
)
