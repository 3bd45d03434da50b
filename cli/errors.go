package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	finerrors "github.com/robinvdvleuten/finreport/errors"
)

var (
	errMarkerStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	formatter *finerrors.TextFormatter
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	var opts []finerrors.TextFormatterOption
	if source != nil {
		opts = append(opts, finerrors.WithSource(source))
	}
	return &ErrorRenderer{formatter: finerrors.NewTextFormatter(opts...)}
}

// Render formats a single error. The message is styled as an error; context
// lines below it are dimmed, with the failing line marked.
func (r *ErrorRenderer) Render(err error) string {
	text := r.formatter.Format(err)

	message, context, hasContext := strings.Cut(text, "\n\n")

	var buf strings.Builder
	buf.WriteString(errorStyle.Render(message))
	if !hasContext {
		return buf.String()
	}

	buf.WriteString("\n\n")
	for _, line := range strings.SplitAfter(context, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		if marked, ok := strings.CutPrefix(body, " > "); ok {
			buf.WriteString(errMarkerStyle.Render(" > "))
			buf.WriteString(marked)
		} else {
			buf.WriteString(errContextStyle.Render(body))
		}
		if strings.HasSuffix(line, "\n") {
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
