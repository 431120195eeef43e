package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared by all views (ANSI 256 codes).
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorHighlight = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("241")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorError     = lipgloss.Color("196")
	ColorBAU       = lipgloss.Color("214")
	ColorPlanned   = lipgloss.Color("42")
)

// OutputMode selects how much terminal styling the CLI applies.
type OutputMode int

const (
	// OutputModePlain writes unstyled text: pipes, files, NO_COLOR, dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss/glamour styled text to a terminal.
	OutputModeStyled
	// OutputModeInteractive runs a bubbletea program; requires a terminal on stdin and stdout.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// DetectOutputMode inspects the process environment. plain forces
// OutputModePlain; interactive requests OutputModeInteractive when both
// stdin and stdout are terminals.
func DetectOutputMode(plain, interactive bool) OutputMode {
	return detectOutputMode(plain, interactive, os.Getenv, isTerminal(os.Stdin), isTerminal(os.Stdout))
}

func detectOutputMode(plain, interactive bool, getenv func(string) string, stdinTTY, stdoutTTY bool) OutputMode {
	if plain || !stdoutTTY {
		return OutputModePlain
	}
	if _, noColor := lookup(getenv, "NO_COLOR"); noColor || getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if interactive && stdinTTY {
		return OutputModeInteractive
	}
	return OutputModeStyled
}

func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	return v, v != ""
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
