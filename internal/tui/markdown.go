package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWrap is the word-wrap column for rendered markdown.
const DefaultWrap = 80

// RenderMarkdown renders md for the terminal. styled selects glamour's
// automatic dark/light style; otherwise the "notty" style is used, which
// keeps the output free of escape sequences.
func RenderMarkdown(md string, width int, styled bool) (string, error) {
	if width <= 0 {
		width = DefaultWrap
	}
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
