// Where: cli/internal/infra/ui/console.go
// What: Console output helpers for alicf commands.
// Why: Keep emoji, indentation and tables uniform across commands.
package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Console writes formatted lines to Out.
type Console struct {
	Out          io.Writer
	EmojiEnabled bool
}

// NewWithEmoji creates a Console with explicit emoji settings.
func NewWithEmoji(out io.Writer, enabled bool) *Console {
	return &Console{Out: out, EmojiEnabled: enabled}
}

// Header prints a title line.
// Example: 🚀 Deploy hello.
func (c *Console) Header(emoji, title string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.emojiPrefix(emoji), title)
}

// BlockStart separates a block from previous output and prints its header.
func (c *Console) BlockStart(emoji, title string) {
	fmt.Fprintln(c.Out)
	c.Header(emoji, title)
}

// BlockEnd closes a block with a blank line.
func (c *Console) BlockEnd() {
	fmt.Fprintln(c.Out)
}

// Item prints an indented key/value line.
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-20s %v\n", key+":", value)
}

// Table prints aligned columns under an indented header row.
func (c *Console) Table(headers []string, rows [][]string) {
	writer := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "   %s\n", strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintf(writer, "   %s\n", strings.Join(row, "\t"))
	}
	_ = writer.Flush()
}

func (c *Console) Success(msg string) {
	c.prefixed("✅", "[ok] ", msg)
}

func (c *Console) Warn(msg string) {
	c.prefixed("⚠️", "[warn] ", msg)
}

func (c *Console) Error(msg string) {
	c.prefixed("✗", "[error] ", msg)
}

func (c *Console) prefixed(emoji, fallback, msg string) {
	prefix := c.emojiPrefix(emoji)
	if prefix == "" {
		prefix = fallback
	}
	fmt.Fprintf(c.Out, "%s%s\n", prefix, msg)
}

func (c *Console) emojiPrefix(emoji string) string {
	if !c.EmojiEnabled || strings.TrimSpace(emoji) == "" {
		return ""
	}
	return emoji + " "
}
