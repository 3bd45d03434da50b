// Package export renders generated reports into portable files.
//
// Three formats are supported: CSV (a single stream of labeled sections),
// XLSX (one sheet per section) and PDF (a titled document). Column order and
// header text are stable so consumers can parse exports back.
//
// Rendered bytes are handed to a Sink, which decides where the file goes:
// a directory, memory, or a Cloud Storage bucket.
//
// Example usage:
//
//	exp, _ := export.ForFormat(export.FormatCSV)
//	name, err := export.Write(ctx, export.NewDirSink("out"), exp, generated)
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/finreport/report"
	"github.com/robinvdvleuten/finreport/telemetry"
)

// Format identifies an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatXLSX, FormatPDF}

// ErrNoReport is returned when an export is attempted without a report.
var ErrNoReport = errors.New("no report to export; generate a report first")

// UnknownFormatError is returned for an unsupported export format.
type UnknownFormatError struct {
	Value string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown export format %q (expected csv, xlsx or pdf)", e.Value)
}

// ParseFormat converts s to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", &UnknownFormatError{Value: s}
}

// Extension returns the file extension without a leading dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Exporter renders a report in one format.
type Exporter interface {
	Format() Format
	Export(w io.Writer, r *report.GeneratedReport) error
}

// ForFormat returns the exporter for f.
func ForFormat(f Format) (Exporter, error) {
	switch f {
	case FormatCSV:
		return CSVExporter{}, nil
	case FormatXLSX:
		return XLSXExporter{}, nil
	case FormatPDF:
		return PDFExporter{}, nil
	}
	return nil, &UnknownFormatError{Value: string(f)}
}

// Filename returns "<type>-report-<period>-<YYYY-MM-DD>.<ext>" for r, dated
// by its generation time.
func Filename(r *report.GeneratedReport, f Format) string {
	return fmt.Sprintf("%s-report-%s-%s.%s", r.Type, r.Period, r.GeneratedAt.Format("2006-01-02"), f.Extension())
}

// Render exports r with e into memory.
func Render(ctx context.Context, e Exporter, r *report.GeneratedReport) ([]byte, error) {
	if r == nil || r.Data == nil {
		return nil, ErrNoReport
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("export.render %s", e.Format()))
	defer timer.End()

	var buf bytes.Buffer
	if err := e.Export(&buf, r); err != nil {
		return nil, fmt.Errorf("render %s export: %w", e.Format(), err)
	}
	return buf.Bytes(), nil
}

// Write renders r with e and hands the file to sink. It returns the filename used.
func Write(ctx context.Context, sink Sink, e Exporter, r *report.GeneratedReport) (string, error) {
	data, err := Render(ctx, e, r)
	if err != nil {
		return "", err
	}

	filename := Filename(r, e.Format())
	if err := sink.Write(ctx, filename, data); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}
