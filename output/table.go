package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment controls how a column pads its cells.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table lays out rows in aligned columns. Widths are measured in terminal
// cells, so wide runes in descriptions and category names stay aligned.
type Table struct {
	headers []string
	align   []Alignment
	rows    [][]string

	// Style, when set, is applied to a cell after padding.
	Style func(col int, cell string) string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		align:   make([]Alignment, len(headers)),
	}
}

// AlignRight right-aligns the given columns.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, col := range cols {
		if col >= 0 && col < len(t.align) {
			t.align[col] = AlignRight
		}
	}
	return t
}

// Append adds a row. Missing cells are rendered empty and extra cells are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the header, a separator and every row to w.
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	if err := t.renderRow(w, t.headers, widths, false); err != nil {
		return err
	}

	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("─", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}

	for _, row := range t.rows {
		if err := t.renderRow(w, row, widths, true); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) renderRow(w io.Writer, cells []string, widths []int, styled bool) error {
	out := make([]string, len(cells))
	for i, cell := range cells {
		var padded string
		if t.align[i] == AlignRight {
			padded = runewidth.FillLeft(cell, widths[i])
		} else {
			padded = runewidth.FillRight(cell, widths[i])
		}
		if styled && t.Style != nil {
			padded = t.Style(i, padded)
		}
		out[i] = padded
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(out, "  "), " "))
	return err
}
