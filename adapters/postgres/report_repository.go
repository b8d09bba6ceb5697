package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/errors"
	"godist/ports"
)

// ReportRepositoryImpl implements ReportRepository for PostgreSQL. The full
// report lives in the payload column; the scalar columns serve listings.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

type reportRow struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	SampleHash string    `db:"sample_hash"`
	N          int       `db:"n"`
	Min        float64   `db:"min"`
	Max        float64   `db:"max"`
	Range      float64   `db:"sample_range"`
	Mean       float64   `db:"mean"`
	StdDev     float64   `db:"std_dev"`
	Payload    []byte    `db:"payload"`
	CreatedAt  time.Time `db:"created_at"`
}

// Save inserts a report. When the sample hash is already stored the row is
// left alone and core.ErrDuplicateSample is returned.
func (r *ReportRepositoryImpl) Save(ctx context.Context, report *stats.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	row := reportRow{
		ID:         report.ID.String(),
		Name:       report.Name,
		SampleHash: report.Hash.String(),
		N:          report.Summary.N,
		Min:        report.Summary.Min,
		Max:        report.Summary.Max,
		Range:      report.Summary.Range,
		Mean:       report.Summary.Mean,
		StdDev:     report.Summary.StdDev,
		Payload:    payload,
		CreatedAt:  report.CreatedAt,
	}

	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO sample_reports (id, name, sample_hash, n, min, max, sample_range, mean, std_dev, payload, created_at)
		VALUES (:id, :name, :sample_hash, :n, :min, :max, :sample_range, :mean, :std_dev, :payload, :created_at)
		ON CONFLICT (sample_hash) DO NOTHING
	`, row)
	if err != nil {
		return errors.DatabaseError("failed to insert report", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("failed to insert report", err)
	}
	if inserted == 0 {
		return fmt.Errorf("%w: sample %s", core.ErrDuplicateSample, report.Hash)
	}
	return nil
}

// GetByID loads a report by ID
func (r *ReportRepositoryImpl) GetByID(ctx context.Context, id core.ReportID) (*stats.Report, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM sample_reports WHERE id = $1`, id.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, core.NewReportNotFoundError(id)
		}
		return nil, errors.DatabaseError("failed to load report", err)
	}
	return decode(payload)
}

// FindByHash loads the report of a previously described sample
func (r *ReportRepositoryImpl) FindByHash(ctx context.Context, hash core.SampleHash) (*stats.Report, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM sample_reports WHERE sample_hash = $1`, hash.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: sample %s", core.ErrReportNotFound, hash)
		}
		return nil, errors.DatabaseError("failed to look up report", err)
	}
	return decode(payload)
}

// List returns the newest reports first
func (r *ReportRepositoryImpl) List(ctx context.Context, limit int) ([]stats.ReportSummary, error) {
	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, sample_hash, n, min, max, sample_range, mean, std_dev, created_at
		FROM sample_reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list reports", err)
	}

	summaries := make([]stats.ReportSummary, len(rows))
	for i, row := range rows {
		summaries[i] = stats.ReportSummary{
			ID:   core.ReportID(row.ID),
			Name: row.Name,
			Hash: core.SampleHash(row.SampleHash),
			Summary: stats.Summary{
				N:      row.N,
				Min:    row.Min,
				Max:    row.Max,
				Range:  row.Range,
				Mean:   row.Mean,
				StdDev: row.StdDev,
			},
			CreatedAt: row.CreatedAt,
		}
	}
	return summaries, nil
}

func decode(payload []byte) (*stats.Report, error) {
	var report stats.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, errors.DatabaseError("stored report is corrupt", err)
	}
	return &report, nil
}
