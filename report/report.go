package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Gap separates adjacent columns.
const Gap = "  "

// Table is one titled result set.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// ShapeError is returned when a row and the header disagree on the number of
// columns.
type ShapeError struct {
	Row     int
	Columns int
	Want    int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has %d columns, want %d", e.Row, e.Columns, e.Want)
}

// Widths returns the widest cell of every column, header included.
func (t Table) Widths() ([]int, error) {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for r, row := range t.Rows {
		if len(row) != len(t.Header) {
			return nil, &ShapeError{Row: r, Columns: len(row), Want: len(t.Header)}
		}
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths, nil
}

// Render writes the title, the header and every row with columns padded to a
// common width. Nothing is written for a ragged table.
func Render(w io.Writer, t Table) error {
	widths, err := t.Widths()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if t.Title != "" {
		fmt.Fprintf(bw, "%s:\n", t.Title)
	}
	writeLine(bw, widths, t.Header)
	for _, row := range t.Rows {
		writeLine(bw, widths, row)
	}
	return bw.Flush()
}

func writeLine(w io.Writer, widths []int, cells []string) {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(Gap)
		}
		b.WriteString(cell)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}
