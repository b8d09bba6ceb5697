package app

import (
	"context"
	"time"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal"
	"godist/internal/analysis/descriptive"
	"godist/internal/errors"
	"godist/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// DescribeService turns raw samples into stored reports
type DescribeService struct {
	computer *descriptive.Computer
	repo     ports.ReportRepository // nil disables persistence
	logger   *internal.Logger
	now      func() time.Time
}

// NewDescribeService creates a describe service. repo may be nil.
func NewDescribeService(computer *descriptive.Computer, repo ports.ReportRepository, logger *internal.Logger) *DescribeService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DescribeService{
		computer: computer,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
}

// Persistent reports whether reports are stored
func (s *DescribeService) Persistent() bool {
	return s.repo != nil
}

// Describe validates values and returns their report. With a repository
// wired, a sample seen before returns the stored report (matched on the
// sample hash, so the stored name wins) and a new one is saved.
func (s *DescribeService) Describe(ctx context.Context, name string, values []float64) (*stats.Report, error) {
	sample, err := stats.NewSample(values)
	if err != nil {
		return nil, errors.InvalidInput("invalid sample", err)
	}

	if s.repo != nil {
		existing, err := s.repo.FindByHash(ctx, sample.Hash())
		switch {
		case err == nil:
			s.logger.Debug("[DescribeService] sample %s already described as %s", sample.Hash(), existing.ID)
			return existing, nil
		case !core.IsNotFoundError(err):
			return nil, errors.Wrap(err, "failed to look up report")
		}
	}

	report, err := s.computer.Compute(name, sample)
	if err != nil {
		return nil, err
	}
	report.ID = core.NewReportID()
	report.CreatedAt = s.now().UTC()

	if s.repo != nil {
		if err := s.repo.Save(ctx, report); err != nil {
			if !core.IsDuplicateError(err) {
				return nil, errors.Wrap(err, "failed to save report")
			}
			// A concurrent call stored the same sample first.
			stored, err := s.repo.FindByHash(ctx, sample.Hash())
			if err != nil {
				return nil, errors.Wrap(err, "failed to load stored report")
			}
			s.logger.Debug("[DescribeService] sample %s stored concurrently as %s", sample.Hash(), stored.ID)
			return stored, nil
		}
	}

	s.logger.With(map[string]interface{}{
		"report": report.ID.String(),
		"n":      report.Summary.N,
		"bins":   len(report.Bins.Bins),
	}).Info("[DescribeService] sample described")
	return report, nil
}

// DescribeColumn describes a column read from a source
func (s *DescribeService) DescribeColumn(ctx context.Context, col stats.Column) (*stats.Report, error) {
	return s.Describe(ctx, col.Name, col.Values)
}

// Get returns a stored report
func (s *DescribeService) Get(ctx context.Context, id core.ReportID) (*stats.Report, error) {
	if s.repo == nil {
		return nil, persistenceOff()
	}
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.NotFound("report", err)
		}
		return nil, errors.Wrap(err, "failed to load report")
	}
	return report, nil
}

// List returns the newest stored reports. limit defaults to 50 and is capped
// at 500.
func (s *DescribeService) List(ctx context.Context, limit int) ([]stats.ReportSummary, error) {
	if s.repo == nil {
		return nil, persistenceOff()
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	summaries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}
	return summaries, nil
}

func persistenceOff() error {
	return &errors.AppError{
		Code:    errors.CodeConfigInvalid,
		Message: "DATABASE_URL is not set",
		Cause:   core.ErrPersistenceOff,
	}
}
