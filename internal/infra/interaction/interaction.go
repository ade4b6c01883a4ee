// Where: cli/internal/infra/interaction/interaction.go
// What: Prompt interface and TTY detection.
// Why: Commands ask for a missing function name only when a human is at the terminal.
package interaction

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

var ErrNoOptions = errors.New("nothing to select")

// Prompter asks the user for input.
type Prompter interface {
	Input(title, placeholder string) (string, error)
	Select(title string, options []string) (string, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
