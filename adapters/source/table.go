package source

import (
	"fmt"
	"strconv"
	"strings"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal"
	"godist/internal/errors"
)

// table is a rectangular view of CSV or spreadsheet rows with an optional
// header row
type table struct {
	headers   []string
	rows      [][]string
	hasHeader bool
}

// newTable detects the header row: the first row is a header when any of its
// non-blank cells is not a number.
func newTable(rows [][]string) (*table, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidInput("input has no rows", core.ErrNoNumericData)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	t := &table{headers: make([]string, width)}
	for _, cell := range rows[0] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, err := parseCell(cell); err != nil {
			t.hasHeader = true
			break
		}
	}

	for i := range t.headers {
		t.headers[i] = fmt.Sprintf("column_%d", i+1)
		if t.hasHeader && i < len(rows[0]) && strings.TrimSpace(rows[0][i]) != "" {
			t.headers[i] = strings.TrimSpace(rows[0][i])
		}
	}

	t.rows = rows
	if t.hasHeader {
		t.rows = rows[1:]
	}
	return t, nil
}

// resolve finds a column by header name, then by 1-based position. An empty
// selector picks the first column.
func (t *table) resolve(selector string) (int, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		if len(t.headers) == 0 {
			return 0, errors.InvalidInput("input has no columns", core.ErrNoNumericData)
		}
		return 0, nil
	}
	for i, h := range t.headers {
		if strings.EqualFold(h, selector) {
			return i, nil
		}
	}
	if pos, err := strconv.Atoi(selector); err == nil && pos >= 1 && pos <= len(t.headers) {
		return pos - 1, nil
	}
	return 0, errors.InvalidInput("unknown column", core.NewColumnNotFoundError(selector))
}

// column collects the numeric cells of column idx. Blank cells are skipped;
// any other non-numeric cell fails with its spreadsheet row number.
func (t *table) column(idx int) (stats.Column, error) {
	col := stats.Column{Name: t.headers[idx]}
	offset := 1
	if t.hasHeader {
		offset = 2
	}
	for r, row := range t.rows {
		if idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		v, err := parseCell(cell)
		if err != nil {
			return stats.Column{}, errors.InvalidInput("invalid cell",
				core.NewNotNumericError(r+offset, col.Name, cell))
		}
		col.Values = append(col.Values, v)
	}
	if len(col.Values) == 0 {
		return stats.Column{}, errors.InvalidInput(
			fmt.Sprintf("column %s has no values", col.Name), core.ErrNoNumericData)
	}
	return col, nil
}

// numericColumns returns every column whose non-blank cells are all numbers
func (t *table) numericColumns(logger *internal.Logger) []stats.Column {
	var out []stats.Column
	for i := range t.headers {
		col, err := t.column(i)
		if err != nil {
			logger.Debug("[source] skipping column %s: %v", t.headers[i], err)
			continue
		}
		out = append(out, col)
	}
	return out
}

func parseCell(cell string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}
