// Package output provides styling and layout helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles renders styled strings for a specific writer. Styling degrades to
// plain text when the writer is not a color-capable terminal.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a Styles instance for w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Success returns green bold text.
func (s *Styles) Success(text string) string {
	return s.output.String(text).Foreground(s.output.Color("2")).Bold().String()
}

// Error returns red bold text.
func (s *Styles) Error(text string) string {
	return s.output.String(text).Foreground(s.output.Color("1")).Bold().String()
}

// Warning returns yellow bold text.
func (s *Styles) Warning(text string) string {
	return s.output.String(text).Foreground(s.output.Color("3")).Bold().String()
}

// Category returns yellow text.
func (s *Styles) Category(text string) string {
	return s.output.String(text).Foreground(s.output.Color("3")).String()
}

// Amount returns magenta text.
func (s *Styles) Amount(text string) string {
	return s.output.String(text).Foreground(s.output.Color("5")).String()
}

// Keyword returns bold text.
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim returns faint text.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Status styles a budget status word: over is red, warning is yellow and
// anything else is green.
func (s *Styles) Status(status string) string {
	switch status {
	case "over":
		return s.Error(status)
	case "warning":
		return s.Warning(status)
	default:
		return s.Success(status)
	}
}

// Timing returns red text for slow operations and faint text otherwise.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.output.String(text).Foreground(s.output.Color("1")).String()
	}
	return s.Dim(text)
}
