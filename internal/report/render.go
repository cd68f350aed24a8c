package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Styled applies a lipgloss style unless the terminal has no color support.
func styled(style lipgloss.Style, msg string) string {
	if termenv.ColorProfile() == termenv.Ascii {
		return msg
	}
	return style.Render(msg)
}

// PassLine formats a success summary line.
func PassLine(msg string) string { return styled(passStyle, "✅ "+msg) }

// FailLine formats a failure summary line.
func FailLine(msg string) string { return styled(failStyle, "❌ "+msg) }

// WarnLine formats a warning summary line.
func WarnLine(msg string) string { return styled(warnStyle, "⚠️  "+msg) }

// Render pretty-prints markdown to the terminal. On renderer errors the
// raw markdown is written instead; the report must never be lost to a
// styling failure.
func Render(w io.Writer, markdown string) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprintln(w, markdown)
		return
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		fmt.Fprintln(w, markdown)
		return
	}
	fmt.Fprint(w, out)
}
