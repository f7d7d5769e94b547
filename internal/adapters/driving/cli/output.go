package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Status line colours.
var (
	successColour = lipgloss.Color("#A6E3A1")
	warningColour = lipgloss.Color("#F9E2AF")
	errorColour   = lipgloss.Color("#F38BA8")
	mutedColour   = lipgloss.Color("#6C7086")
)

// printer writes status lines, styled when the output is a terminal.
type printer struct {
	cmd    *cobra.Command
	styled bool

	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(cmd *cobra.Command) *printer {
	return &printer{
		cmd:     cmd,
		styled:  !noColor && isTerminal(cmd.OutOrStdout()),
		success: lipgloss.NewStyle().Foreground(successColour),
		warning: lipgloss.NewStyle().Foreground(warningColour).Bold(true),
		err:     lipgloss.NewStyle().Foreground(errorColour).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(mutedColour),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) line(style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.styled {
		msg = style.Render(msg)
	}
	p.cmd.Println(msg)
}

// Success prints a completed action.
func (p *printer) Success(format string, args ...any) {
	p.line(p.success, format, args...)
}

// Warning prints a condition the user should act on.
func (p *printer) Warning(format string, args ...any) {
	p.line(p.warning, format, args...)
}

// Error prints a failure.
func (p *printer) Error(format string, args ...any) {
	p.line(p.err, format, args...)
}

// Muted prints low-importance information.
func (p *printer) Muted(format string, args ...any) {
	p.line(p.muted, format, args...)
}
