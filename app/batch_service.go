package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"godist/domain/stats"
	"godist/internal/errors"
)

// ColumnReport is the outcome for one column of a batch. Err holds a
// validation failure for that column only.
type ColumnReport struct {
	Column string        `json:"column"`
	Report *stats.Report `json:"report,omitempty"`
	Err    error         `json:"-"`
}

// BatchService describes many columns concurrently
type BatchService struct {
	describe    *DescribeService
	concurrency int
}

// NewBatchService creates a batch service running at most concurrency
// columns at once
func NewBatchService(describe *DescribeService, concurrency int) *BatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchService{describe: describe, concurrency: concurrency}
}

// DescribeColumns returns one result per column, in input order. A column
// that fails validation records its error and the rest carry on; any other
// failure cancels the batch.
func (b *BatchService) DescribeColumns(ctx context.Context, columns []stats.Column) ([]ColumnReport, error) {
	results := make([]ColumnReport, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, col := range columns {
		results[i].Column = col.Name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := b.describe.DescribeColumn(gctx, col)
			if err != nil {
				if errors.GetCode(err) == errors.CodeInvalidInput {
					results[i].Err = err
					return nil
				}
				return errors.Wrapf(err, "column %s", col.Name)
			}
			results[i].Report = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
