package source

import (
	"path/filepath"
	"strings"

	"godist/internal"
	"godist/ports"
)

// Options selects what to read from a file
type Options struct {
	Column string // header name or 1-based position (CSV, XLSX)
	Sheet  string // XLSX only
	Path   string // gjson path (JSON only)
	Logger *internal.Logger
}

// NewFileSource picks a reader by file extension. Anything that is not CSV,
// XLSX or JSON is read as separated text.
func NewFileSource(path string, opts Options) ports.SampleSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVSource(path, opts.Column, opts.Logger)
	case ".xlsx", ".xlsm":
		return NewExcelSource(path, opts.Sheet, opts.Column, opts.Logger)
	case ".json":
		return NewJSONFileSource(path, opts.Path)
	default:
		return NewTextFileSource(path)
	}
}

// NewColumnSource returns a multi-column reader for tabular files, or false
// when the format has no columns
func NewColumnSource(path string, opts Options) (ports.ColumnSource, bool) {
	switch s := NewFileSource(path, opts).(type) {
	case *CSVSource:
		return s, true
	case *ExcelSource:
		return s, true
	default:
		return nil, false
	}
}
