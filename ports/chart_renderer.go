package ports

import (
	"io"

	"godist/domain/stats"
)

// ChartRenderer draws the charts of a report
type ChartRenderer interface {
	ECDF(w io.Writer, ecdf stats.ECDF) error
	Histogram(w io.Writer, bins stats.BinSummary) error
	Polygon(w io.Writer, bins stats.BinSummary) error

	// Render dispatches on kind
	Render(w io.Writer, kind stats.ChartKind, report *stats.Report) error

	// SaveAll writes every chart to dir as <base>_<kind>.<format> and returns
	// the paths written
	SaveAll(report *stats.Report, dir, base string) ([]string, error)
}
