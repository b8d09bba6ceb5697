package ports

import (
	"context"

	"godist/domain/core"
	"godist/domain/stats"
)

// ReportRepository persists computed reports.
// Lookups that find nothing return an error matching core.ErrReportNotFound.
// Save of a sample whose hash is already stored writes nothing and returns
// an error matching core.ErrDuplicateSample.
type ReportRepository interface {
	Save(ctx context.Context, report *stats.Report) error
	GetByID(ctx context.Context, id core.ReportID) (*stats.Report, error)
	FindByHash(ctx context.Context, hash core.SampleHash) (*stats.Report, error)
	List(ctx context.Context, limit int) ([]stats.ReportSummary, error)
}
