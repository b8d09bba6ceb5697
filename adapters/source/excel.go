package source

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal"
	"godist/internal/errors"
)

// ExcelSource reads one column of an .xlsx sheet
type ExcelSource struct {
	path   string
	sheet  string
	column string
	logger *internal.Logger
}

// NewExcelSource creates a spreadsheet source. An empty sheet selects the
// first sheet of the workbook.
func NewExcelSource(path, sheet, column string, logger *internal.Logger) *ExcelSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ExcelSource{path: path, sheet: sheet, column: column, logger: logger}
}

// Read returns the selected column
func (s *ExcelSource) Read(ctx context.Context) (stats.Column, error) {
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

// Columns returns every numeric column of the sheet
func (s *ExcelSource) Columns(ctx context.Context) ([]stats.Column, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return t.numericColumns(s.logger), nil
}

func (s *ExcelSource) load(ctx context.Context) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.InvalidInput("failed to open Excel file", err)
	}
	defer f.Close()

	sheet, err := s.pickSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("failed to read sheet %s", sheet), err)
	}
	s.logger.Debug("[ExcelSource] %s!%s read in %.2fms (%d rows)",
		s.path, sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return newTable(rows)
}

func (s *ExcelSource) pickSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.InvalidInput("workbook has no sheets", core.ErrSheetNotFound)
	}
	if s.sheet == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == s.sheet {
			return name, nil
		}
	}
	return "", errors.InvalidInput("unknown sheet", fmt.Errorf("%w: %s", core.ErrSheetNotFound, s.sheet))
}
