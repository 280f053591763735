package presenter

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	TableMaxWidth     = 9.0
	TableRowHeight    = 0.35
	TableHeaderHeight = 0.4
)

var (
	separatorCellPattern = regexp.MustCompile(`^:?-{3,}:?$`)
	ruleCellPattern      = regexp.MustCompile(`^[:\- ]+$`)
)

// TableParseError reports a block of pipe lines that is not a table.
type TableParseError struct {
	Reason string
}

func (e *TableParseError) Error() string {
	return fmt.Sprintf("table parse: %s", e.Reason)
}

// trimOuterPipes drops one leading and one trailing pipe.
func trimOuterPipes(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	return line
}

func splitCells(line string) []string {
	cells := strings.Split(trimOuterPipes(line), "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// IsTableRow reports whether a trimmed line is a table content row: it has
// a pipe, at least two cells once outer pipes are removed, and at least one
// cell that is not made only of dashes, colons and spaces.
func IsTableRow(line string) bool {
	if line == "" || !strings.Contains(line, "|") {
		return false
	}

	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	if len(cells) < 2 {
		return false
	}

	for _, c := range cells {
		if c != "" && !ruleCellPattern.MatchString(c) {
			return true
		}
	}
	return false
}

// IsTableSeparator reports whether a trimmed line is an alignment row such
// as |:---|:---:|---:|. Every cell must be three or more dashes with
// optional colons on either end.
func IsTableSeparator(line string) bool {
	if line == "" {
		return false
	}
	for _, cell := range splitCells(line) {
		if !separatorCellPattern.MatchString(cell) {
			return false
		}
	}
	return true
}

func isTableLine(line string) bool {
	return IsTableRow(line) || IsTableSeparator(line)
}

func parseAlignments(separator string) []Alignment {
	cells := splitCells(separator)
	alignments := make([]Alignment, 0, len(cells))
	for _, c := range cells {
		switch {
		case strings.HasPrefix(c, ":") && strings.HasSuffix(c, ":"):
			alignments = append(alignments, AlignCenter)
		case strings.HasSuffix(c, ":"):
			alignments = append(alignments, AlignRight)
		default:
			alignments = append(alignments, AlignLeft)
		}
	}
	return alignments
}

func padAlignments(alignments []Alignment, n int) []Alignment {
	for len(alignments) < n {
		alignments = append(alignments, AlignLeft)
	}
	return alignments
}

func padCells(cells []string, n int) []string {
	for len(cells) < n {
		cells = append(cells, "")
	}
	return cells
}

// ParseTable builds a Table from a contiguous block of table lines. The
// first separator row fixes the alignments; the row directly above it, if
// any, is the header. Rows below are data, and later separator rows are
// skipped. Short rows are padded with empty
// cells, and wide rows extend the alignments with left instead of losing
// cells. The only failure is a block without any separator row.
func ParseTable(lines []string) (*Table, error) {
	if len(lines) == 0 {
		return nil, &TableParseError{Reason: "no lines"}
	}

	sepIdx := -1
	for i, line := range lines {
		if IsTableSeparator(strings.TrimSpace(line)) {
			sepIdx = i
			break
		}
	}
	if sepIdx < 0 {
		return nil, &TableParseError{Reason: "separator row not found"}
	}

	t := &Table{
		HasHeader:  sepIdx >= 1,
		Alignments: parseAlignments(lines[sepIdx]),
		Raw:        lines,
	}
	if t.HasHeader {
		t.Headers = splitCells(lines[sepIdx-1])
	}

	for _, line := range lines[sepIdx+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || IsTableSeparator(trimmed) {
			continue
		}
		if !IsTableRow(trimmed) {
			break
		}
		t.Rows = append(t.Rows, splitCells(line))
	}

	width := len(t.Alignments)
	if t.HasHeader && len(t.Headers) > width {
		width = len(t.Headers)
	}
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	t.Alignments = padAlignments(t.Alignments, width)
	if t.HasHeader {
		t.Headers = padCells(t.Headers, width)
	}
	for i := range t.Rows {
		t.Rows[i] = padCells(t.Rows[i], width)
	}
	return t, nil
}

// Columns is the number of columns in the table, at least one.
func (t *Table) Columns() int {
	if len(t.Alignments) > 0 {
		return len(t.Alignments)
	}
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	if len(t.Rows) > 0 && len(t.Rows[0]) > 0 {
		return len(t.Rows[0])
	}
	return 1
}

// TableDimensions is the rendered size of a table in inches.
type TableDimensions struct {
	Rows        int
	Cols        int
	Width       float64
	RowHeights  []float64
	TotalHeight float64
}

func (t *Table) Dimensions() TableDimensions {
	d := TableDimensions{
		Cols:  t.Columns(),
		Width: TableMaxWidth,
	}
	if t.HasHeader && len(t.Headers) > 0 {
		d.RowHeights = append(d.RowHeights, TableHeaderHeight)
	}
	for range t.Rows {
		d.RowHeights = append(d.RowHeights, TableRowHeight)
	}
	d.Rows = len(d.RowHeights)
	if d.Rows < 1 {
		d.Rows = 1
	}
	for _, h := range d.RowHeights {
		d.TotalHeight += h
	}
	if d.TotalHeight == 0 {
		d.TotalHeight = TableRowHeight
	}
	return d
}
