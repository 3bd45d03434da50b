// Package errors renders engine errors for different consumers: a text form
// for the command line and a JSON form for the web API.
//
// Domain error types stay in their packages (report, schedule, loader,
// export, storage); this package only classifies and presents them.
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/robinvdvleuten/finreport/export"
	"github.com/robinvdvleuten/finreport/loader"
	"github.com/robinvdvleuten/finreport/report"
	"github.com/robinvdvleuten/finreport/schedule"
	"github.com/robinvdvleuten/finreport/storage"
)

// Kind classifies an error for presentation.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindNotGenerated  Kind = "not_generated"
	KindUnknownType   Kind = "unknown_report_type"
	KindUnknownFormat Kind = "unknown_format"
	KindParse         Kind = "parse"
	KindGeneration    Kind = "generation"
	KindLocked        Kind = "locked"
	KindInternal      Kind = "internal"
)

// Classify returns the kind of err, looking through wrapped errors.
func Classify(err error) Kind {
	var (
		validation    *schedule.ValidationError
		notFound      *schedule.NotFoundError
		notGenerated  *report.NotGeneratedError
		unknownType   *report.UnknownTypeError
		unknownFormat *export.UnknownFormatError
		parse         *loader.ParseError
		generation    *report.GenerationError
	)

	switch {
	case stderrors.As(err, &validation):
		return KindValidation
	case stderrors.As(err, &notFound), stderrors.Is(err, storage.ErrNotFound):
		return KindNotFound
	case stderrors.As(err, &notGenerated), stderrors.Is(err, export.ErrNoReport):
		return KindNotGenerated
	case stderrors.As(err, &unknownType):
		return KindUnknownType
	case stderrors.As(err, &unknownFormat):
		return KindUnknownFormat
	case stderrors.As(err, &parse):
		return KindParse
	case stderrors.As(err, &generation):
		return KindGeneration
	case stderrors.Is(err, storage.ErrLocked), stderrors.Is(err, storage.ErrWrongPassphrase):
		return KindLocked
	}
	return KindInternal
}

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte // Optional source for parse error context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content shown around CSV parse errors.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Parse errors with a line number are
// followed by the surrounding source lines when source content is set.
func (tf *TextFormatter) Format(err error) string {
	var parse *loader.ParseError
	if stderrors.As(err, &parse) && parse.Line > 0 && tf.sourceContent != nil {
		return tf.formatWithSourceContext(parse.Line, err.Error(), tf.sourceContent)
	}

	var notGenerated *report.NotGeneratedError
	if stderrors.As(err, &notGenerated) {
		return err.Error() + "\n\n   run: finreport report " + string(notGenerated.Type) + " --period " + string(notGenerated.Period)
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext shows the message followed by two lines of source
// before the failing line and one after, marking the failing line.
func (tf *TextFormatter) formatWithSourceContext(line int, message string, sourceContent []byte) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(strings.TrimRight(string(sourceContent), "\n"), "\n")

	startLine := line - 3 // 0-based, two lines before
	endLine := line       // one line after (inclusive)

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		if i == line-1 {
			buf.WriteString(" > ")
		} else {
			buf.WriteString("   ")
		}
		buf.WriteString(sourceLines[i])
		buf.WriteByte('\n')
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Field    string         `json:"field,omitempty"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line,omitempty"`
	Record   *int   `json:"record,omitempty"`
}

// ResponseJSON is the envelope written by FormatAll.
type ResponseJSON struct {
	Errors []ErrorJSON `json:"errors"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as {"errors": [...]}.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.Marshal(ResponseJSON{Errors: jf.FormatAllToSlice(errs)})
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    string(Classify(err)),
		Message: err.Error(),
	}

	var (
		validation    *schedule.ValidationError
		notFound      *schedule.NotFoundError
		notGenerated  *report.NotGeneratedError
		unknownFormat *export.UnknownFormatError
		parse         *loader.ParseError
	)

	switch {
	case stderrors.As(err, &validation):
		errJSON.Field = validation.Field
	case stderrors.As(err, &notFound):
		errJSON.Details = map[string]any{"id": notFound.ID}
	case stderrors.As(err, &notGenerated):
		errJSON.Details = map[string]any{
			"reportType": string(notGenerated.Type),
			"period":     string(notGenerated.Period),
		}
	case stderrors.As(err, &unknownFormat):
		errJSON.Details = map[string]any{"format": unknownFormat.Value}
	case stderrors.As(err, &parse):
		errJSON.Position = &PositionJSON{Filename: parse.File, Line: parse.Line}
		if parse.Line == 0 && parse.Record >= 0 {
			record := parse.Record
			errJSON.Position.Record = &record
		}
	}

	return errJSON
}
