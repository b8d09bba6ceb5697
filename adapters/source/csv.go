package source

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"godist/domain/stats"
	"godist/internal"
	"godist/internal/errors"
)

// CSVSource reads one column of a CSV file
type CSVSource struct {
	path   string
	column string
	logger *internal.Logger
}

// NewCSVSource creates a CSV source. column is a header name or a 1-based
// position; empty selects the first column.
func NewCSVSource(path, column string, logger *internal.Logger) *CSVSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CSVSource{path: path, column: column, logger: logger}
}

// Read returns the selected column
func (s *CSVSource) Read(ctx context.Context) (stats.Column, error) {
	t, err := s.load(ctx)
	if err != nil {
		return stats.Column{}, err
	}
	idx, err := t.resolve(s.column)
	if err != nil {
		return stats.Column{}, err
	}
	return t.column(idx)
}

// Columns returns every numeric column
func (s *CSVSource) Columns(ctx context.Context) ([]stats.Column, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return t.numericColumns(s.logger), nil
}

func (s *CSVSource) load(ctx context.Context) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.InvalidInput("failed to open CSV file", err)
	}
	defer file.Close()

	rows, err := readCSV(file)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("[CSVSource] %s read (%d rows)", s.path, len(rows))
	return newTable(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.InvalidInput("failed to read CSV file", err)
	}
	return rows, nil
}
