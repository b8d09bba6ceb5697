package report

import (
	"fmt"
	"io"
	"strings"

	"godist/domain/stats"
	"godist/internal/errors"
)

// Text writes the plain report: raw and sorted sample, the scalar
// statistics, the ECDF as one F(x) line per interval and the bucket table.
func (r *Renderer) Text(w io.Writer, rep *stats.Report) error {
	var b strings.Builder
	h := r.heading.Sprint

	if rep.Name != "" {
		b.WriteString(h("Sample " + rep.Name + ":\n"))
	} else {
		b.WriteString(h("Sample:\n"))
	}
	b.WriteString(joinDoubles(rep.Sample) + "\n")
	b.WriteString(h("Variation series:\n"))
	b.WriteString(joinDoubles(rep.Sorted) + "\n")

	s := rep.Summary
	fmt.Fprintf(&b, "%s%s\n", h("Minimum: "), FormatDouble(s.Min))
	fmt.Fprintf(&b, "%s%s\n", h("Maximum: "), FormatDouble(s.Max))
	fmt.Fprintf(&b, "%s%s\n", h("Range: "), FormatDouble(s.Range))
	fmt.Fprintf(&b, "%s%s\n", h("Mean: "), FormatDouble(s.Mean))
	fmt.Fprintf(&b, "%s%s\n", h("Standard deviation: "), FormatDouble(s.StdDev))

	b.WriteString(h("Empirical distribution function:\n"))
	for _, line := range ecdfLines(rep.ECDF) {
		fmt.Fprintf(&b, "F(x)=%s, for %s\n", line.value, line.interval)
	}

	fmt.Fprintf(&b, "%s%s\n", h("Bin width: "), FormatDouble(rep.Bins.Width))
	for _, bin := range rep.Bins.Bins {
		fmt.Fprintf(&b, "%s\t%d\t%s\n", FormatDouble(bin.Boundary), bin.Count, FormatDouble(bin.Density))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}
