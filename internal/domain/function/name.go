// Where: cli/internal/domain/function/name.go
// What: Function identity rules.
// Why: A function name doubles as a directory and artifact name, so it must be path-safe.
package function

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidName = errors.New("invalid function name")

// ValidateName reports whether name can identify a function inside a space.
// Names map onto <root>/<name>/ and <root>/.deploy/<name>.zip, so separators,
// dot-prefixed names and surrounding whitespace are rejected.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q must not start with a dot", ErrInvalidName, name)
	}
	return nil
}
