// Where: cli/internal/infra/interaction/selector_test.go
// What: Tests for the huh prompter adapters.
// Why: Prompt plumbing is verified without a terminal.
package interaction

import (
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestIsTerminalNilAndPipe(t *testing.T) {
	if IsTerminal(nil) {
		t.Fatal("IsTerminal(nil) must be false")
	}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()
	if IsTerminal(r) {
		t.Fatal("IsTerminal(pipe) must be false")
	}
}

func TestHuhPrompterInputUsesRunner(t *testing.T) {
	orig := runInputPrompt
	t.Cleanup(func() { runInputPrompt = orig })

	var gotTitle, gotPlaceholder string
	runInputPrompt = func(title, placeholder string, input *string) error {
		gotTitle = title
		gotPlaceholder = placeholder
		*input = "hello"
		return nil
	}

	got, err := (HuhPrompter{}).Input("Function name", "hello")
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got != "hello" || gotTitle != "Function name" || gotPlaceholder != "hello" {
		t.Fatalf("unexpected input call: got=%q title=%q placeholder=%q", got, gotTitle, gotPlaceholder)
	}
}

func TestHuhPrompterInputWrapsError(t *testing.T) {
	orig := runInputPrompt
	t.Cleanup(func() { runInputPrompt = orig })
	runInputPrompt = func(string, string, *string) error {
		return errors.New("tty unavailable")
	}

	_, err := (HuhPrompter{}).Input("Function name", "")
	if err == nil || err.Error() != "prompt input: tty unavailable" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHuhPrompterSelectUsesRunner(t *testing.T) {
	orig := runSelectPrompt
	t.Cleanup(func() { runSelectPrompt = orig })

	var gotOptions int
	runSelectPrompt = func(title string, options []huh.Option[string], selected *string) error {
		gotOptions = len(options)
		*selected = options[1].Value
		return nil
	}

	got, err := (HuhPrompter{}).Select("Function", []string{"hello", "report"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "report" || gotOptions != 2 {
		t.Fatalf("unexpected selection: %q (%d options)", got, gotOptions)
	}
}

func TestHuhPrompterSelectWithoutOptions(t *testing.T) {
	if _, err := (HuhPrompter{}).Select("Function", nil); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}
