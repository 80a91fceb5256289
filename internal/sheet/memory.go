package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Ensure Memory implements Table
var _ Table = (*Memory)(nil)

// Memory is an in-process Table. It backs tests and the "memory" store backend.
type Memory struct {
	mu   sync.RWMutex
	tabs map[string][][]string
}

// NewMemory creates a Memory with the given empty collections.
func NewMemory(collections ...string) *Memory {
	m := &Memory{tabs: make(map[string][][]string)}
	for _, c := range collections {
		m.tabs[c] = nil
	}
	return m
}

// Rows returns a copy of every row of a collection, header included.
func (m *Memory) Rows(collection string) [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([][]string, len(m.tabs[collection]))
	for i, r := range m.tabs[collection] {
		rows[i] = append([]string(nil), r...)
	}
	return rows
}

func (m *Memory) rows(collection string) ([][]string, error) {
	rows, ok := m.tabs[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}
	return rows, nil
}

// Header returns the first row of the collection.
func (m *Memory) Header(ctx context.Context, collection string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, err := m.rows(collection)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return append([]string(nil), rows[0]...), nil
}

// ReadAll returns the records of a collection.
func (m *Memory) ReadAll(ctx context.Context, collection string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, err := m.rows(collection)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, NewRecord(rows[0], row))
	}
	return records, nil
}

// Append adds a row at the end of the collection.
func (m *Memory) Append(ctx context.Context, collection string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.rows(collection)
	if err != nil {
		return err
	}
	m.tabs[collection] = append(rows, append([]string(nil), row...))
	return nil
}

// UpdateRange overwrites the cells at address. Rows past the end are created.
func (m *Memory) UpdateRange(ctx context.Context, collection, address string, values []string) error {
	r, err := ParseRange(address)
	if err != nil {
		return err
	}
	if r.StartRow != r.EndRow {
		return fmt.Errorf("multi-row update %q not supported", address)
	}
	if len(values) != r.Width() {
		return fmt.Errorf("update %q: got %d values for %d cells", address, len(values), r.Width())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.rows(collection)
	if err != nil {
		return err
	}
	for len(rows) < r.StartRow {
		rows = append(rows, nil)
	}
	row := rows[r.StartRow-1]
	for len(row) <= r.EndCol {
		row = append(row, "")
	}
	copy(row[r.StartCol:], values)
	rows[r.StartRow-1] = row
	m.tabs[collection] = rows
	return nil
}
