package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a rectangle of cells. Columns are 0-based, rows are 1-based (row 1 is the header).
type Range struct {
	StartCol, StartRow int
	EndCol, EndRow     int
}

// Width is the number of columns in the range.
func (r Range) Width() int { return r.EndCol - r.StartCol + 1 }

// String formats the range in A1 notation.
func (r Range) String() string {
	start := ColumnName(r.StartCol) + strconv.Itoa(r.StartRow)
	if r.StartCol == r.EndCol && r.StartRow == r.EndRow {
		return start
	}
	return start + ":" + ColumnName(r.EndCol) + strconv.Itoa(r.EndRow)
}

// RowRange addresses columns [startCol, endCol] of one row.
func RowRange(row, startCol, endCol int) Range {
	return Range{StartCol: startCol, StartRow: row, EndCol: endCol, EndRow: row}
}

// RecordRow is the sheet row of the record at 0-based index i (header is row 1).
func RecordRow(i int) int { return i + 2 }

// ColumnName converts a 0-based column index to letters: 0 -> A, 25 -> Z, 26 -> AA.
func ColumnName(col int) string {
	var b []byte
	for col >= 0 {
		b = append([]byte{byte('A' + col%26)}, b...)
		col = col/26 - 1
	}
	return string(b)
}

// ParseRange parses "D5" or "B2:C3". Sheet-name prefixes are not accepted.
func ParseRange(addr string) (Range, error) {
	start, end, isRange := strings.Cut(strings.ToUpper(strings.TrimSpace(addr)), ":")
	sc, sr, err := parseCell(start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	r := Range{StartCol: sc, StartRow: sr, EndCol: sc, EndRow: sr}
	if isRange {
		ec, er, err := parseCell(end)
		if err != nil {
			return Range{}, fmt.Errorf("invalid address %q: %w", addr, err)
		}
		r.EndCol, r.EndRow = ec, er
	}
	if r.EndCol < r.StartCol || r.EndRow < r.StartRow {
		return Range{}, fmt.Errorf("invalid address %q: end before start", addr)
	}
	return r, nil
}

func parseCell(s string) (col, row int, err error) {
	i := 0
	col = 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		col = col*26 + int(s[i]-'A'+1)
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("missing column in %q", s)
	}
	row, err = strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid row in %q", s)
	}
	return col - 1, row, nil
}
