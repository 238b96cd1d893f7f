package tap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Table is a materialized TAP result: a header row plus string cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// ReadCSV parses a CSV result whose first record is the column header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("read csv: empty result (no header)")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: header: %w", err)
	}

	t := &Table{
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.columns[i] = h
		t.index[h] = i
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: row %d: %w", len(t.rows)+1, err)
		}
		t.rows = append(t.rows, rec)
	}

	return t, nil
}

func (t *Table) Columns() []string { return t.columns }

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) cell(row int, col string) (string, error) {
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d out of range [0, %d)", row, len(t.rows))
	}
	i, ok := t.index[col]
	if !ok {
		return "", fmt.Errorf("no column %q", col)
	}
	return t.rows[row][i], nil
}

// String returns the cell with fixed-width padding removed.
func (t *Table) String(row int, col string) (string, error) {
	s, err := t.cell(row, col)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Float parses the cell; empty cells are NaN.
func (t *Table) Float(row int, col string) (float64, error) {
	s, err := t.String(row, col)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q row %d: %w", col, row, err)
	}
	return f, nil
}

// Int parses the cell as a base-10 integer. Empty cells are an error.
func (t *Table) Int(row int, col string) (int64, error) {
	s, err := t.String(row, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q row %d: %w", col, row, err)
	}
	return n, nil
}
