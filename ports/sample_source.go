package ports

import (
	"context"

	"godist/domain/stats"
)

// SampleSource reads one column of numbers from somewhere outside the process
type SampleSource interface {
	Read(ctx context.Context) (stats.Column, error)
}

// ColumnSource reads every numeric column of a tabular input
type ColumnSource interface {
	Columns(ctx context.Context) ([]stats.Column, error)
}
