package syntax

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Error is a lexing or parsing failure at a position in the source.
type Error struct {
	Filename string
	Line     int
	Column   int
	Length   int // length of the offending token
	Message  string
	Source   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

var (
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	gutterStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("4"))
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Highlight renders the error with the surrounding source lines and a caret
// under the offending token.
func (e *Error) Highlight() string {
	lines := strings.Split(e.Source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return e.Error()
	}

	var result strings.Builder

	fmt.Fprintf(&result, "%s %s\n", errorStyle.Render("Error:"), e.Message)
	fmt.Fprintf(&result, "  %s\n", gutterStyle.Render(fmt.Sprintf("--> %s:%d:%d", e.Filename, e.Line, e.Column)))

	gutter := gutterStyle.Render(fmt.Sprintf(" %s |", padLeft("", 3)))
	result.WriteString(gutter + "\n")

	startLine := max(1, e.Line-2)
	endLine := min(len(lines), e.Line+2)

	for i := startLine; i <= endLine; i++ {
		number := gutterStyle.Render(fmt.Sprintf(" %s |", padLeft(fmt.Sprint(i), 3)))
		if i != e.Line {
			fmt.Fprintf(&result, "%s %s\n", number, dimStyle.Render(lines[i-1]))
			continue
		}
		fmt.Fprintf(&result, "%s %s\n", number, lines[i-1])

		padding := strings.Repeat(" ", 1+3+3+e.Column-1)
		underline := strings.Repeat("^", max(1, e.Length))
		fmt.Fprintf(&result, "%s%s\n", padding, caretStyle.Render(underline))
	}

	result.WriteString(gutter + "\n")

	return result.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
