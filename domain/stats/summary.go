package stats

import (
	"fmt"
	"strings"
	"time"

	"godist/domain/core"
)

// Column is a named run of raw values read from a source, before validation
type Column struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ReportSummary is the listing view of a stored report
type ReportSummary struct {
	ID        core.ReportID   `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Hash      core.SampleHash `json:"sample_hash" db:"sample_hash"`
	Summary   Summary         `json:"summary"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// SummaryOf projects a report onto its listing view
func SummaryOf(r *Report) ReportSummary {
	return ReportSummary{
		ID:        r.ID,
		Name:      r.Name,
		Hash:      r.Hash,
		Summary:   r.Summary,
		CreatedAt: r.CreatedAt,
	}
}

// ChartKind names one of the three charts derived from a report
type ChartKind string

const (
	ChartECDF      ChartKind = "ecdf"
	ChartHistogram ChartKind = "histogram"
	ChartPolygon   ChartKind = "polygon"
)

// ChartKinds lists every chart in rendering order
var ChartKinds = []ChartKind{ChartECDF, ChartHistogram, ChartPolygon}

// ParseChartKind accepts a chart name case-insensitively
func ParseChartKind(s string) (ChartKind, error) {
	kind := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range ChartKinds {
		if k == kind {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: chart %q", core.ErrUnknownFormat, s)
}
