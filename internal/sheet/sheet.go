// Package sheet defines the tabular record store the ledger was first built on: named
// collections of rows whose first row is the header, read in full, appended to, and
// updated by A1 cell address.
//
// Implementations: Memory (in process) and gsheets.Client (Google Sheets).
package sheet

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrCollectionNotFound is returned when a collection (sheet tab) does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

// Table is a row-oriented store of named collections.
type Table interface {
	// Header returns the first row of the collection. It is empty for an empty collection.
	Header(ctx context.Context, collection string) ([]string, error)

	// ReadAll returns every row after the header, in order, keyed by header name.
	ReadAll(ctx context.Context, collection string) ([]Record, error)

	// Append adds one row, in column order, after the last row.
	Append(ctx context.Context, collection string, row []string) error

	// UpdateRange overwrites the contiguous cells at address (e.g. "D5" or "B2:C2").
	// Row 1 is the header; the first record is on row 2.
	UpdateRange(ctx context.Context, collection, address string, values []string) error
}

// Kind is the type a cell value was coerced to.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Wire representation of booleans.
const (
	True  = "TRUE"
	False = "FALSE"
)

// Cell is one value read from a collection.
type Cell struct {
	raw  string
	kind Kind
	num  decimal.Decimal
	b    bool
}

// ParseCell coerces a raw cell: "TRUE"/"FALSE" become booleans, numeric text becomes a
// number, anything else (including "") stays a string.
func ParseCell(raw string) Cell {
	switch raw {
	case True:
		return Cell{raw: raw, kind: KindBool, b: true}
	case False:
		return Cell{raw: raw, kind: KindBool}
	case "":
		return Cell{}
	}
	if n, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
		return Cell{raw: raw, kind: KindNumber, num: n}
	}
	return Cell{raw: raw}
}

// Kind reports how the raw value was interpreted.
func (c Cell) Kind() Kind { return c.kind }

// String returns the cell as it was stored.
func (c Cell) String() string { return c.raw }

// IsEmpty reports whether the cell is absent or "".
func (c Cell) IsEmpty() bool { return c.raw == "" }

// Decimal returns the numeric value, or zero when the cell is not a number.
func (c Cell) Decimal() decimal.Decimal {
	if c.kind != KindNumber {
		return decimal.Zero
	}
	return c.num
}

// Bool returns the boolean value, or false when the cell is not a boolean.
func (c Cell) Bool() bool { return c.kind == KindBool && c.b }

// Record is one row keyed by header name. Cells missing from a short row are absent.
type Record map[string]Cell

// Get returns the cell of a column; absent columns read as an empty cell.
func (r Record) Get(column string) Cell { return r[column] }

// NewRecord pairs a header with one row.
func NewRecord(header, row []string) Record {
	rec := make(Record, len(header))
	for i, col := range header {
		if i >= len(row) {
			break
		}
		rec[col] = ParseCell(row[i])
	}
	return rec
}

// FormatBool is the wire form of b.
func FormatBool(b bool) string {
	if b {
		return True
	}
	return False
}
