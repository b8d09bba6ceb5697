package report

import (
	"fmt"
	"io"
	"strings"

	"godist/domain/stats"
	"godist/internal/errors"
)

// Markdown writes the report as a markdown document with one table per
// section
func (r *Renderer) Markdown(w io.Writer, rep *stats.Report) error {
	if _, err := io.WriteString(w, markdownDocument(rep)); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}

func markdownDocument(rep *stats.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title(rep))
	fmt.Fprintf(&b, "**Sample:** %s\n\n", joinDoubles(rep.Sample))
	fmt.Fprintf(&b, "**Variation series:** %s\n\n", joinDoubles(rep.Sorted))

	s := rep.Summary
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| n | %d |\n", s.N)
	fmt.Fprintf(&b, "| Minimum | %s |\n", FormatDouble(s.Min))
	fmt.Fprintf(&b, "| Maximum | %s |\n", FormatDouble(s.Max))
	fmt.Fprintf(&b, "| Range | %s |\n", FormatDouble(s.Range))
	fmt.Fprintf(&b, "| Mean | %s |\n", FormatDouble(s.Mean))
	fmt.Fprintf(&b, "| Standard deviation | %s |\n\n", FormatDouble(s.StdDev))

	b.WriteString("## Empirical distribution function\n\n")
	b.WriteString("| Interval | F(x) |\n|---|---|\n")
	for _, line := range ecdfLines(rep.ECDF) {
		fmt.Fprintf(&b, "| `%s` | %s |\n", line.interval, line.value)
	}

	fmt.Fprintf(&b, "\n## Frequency summary\n\nBin width h = %s", FormatDouble(rep.Bins.Width))
	if rep.Bins.Degenerate {
		b.WriteString(" (single distinct value)")
	}
	b.WriteString("\n\n| Boundary | Count | Density |\n|---|---|---|\n")
	for _, bin := range rep.Bins.Bins {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", FormatDouble(bin.Boundary), bin.Count, FormatDouble(bin.Density))
	}
	return b.String()
}

// plainTitle is the report title as text
func plainTitle(rep *stats.Report) string {
	if rep.Name == "" {
		return "Sample report"
	}
	return "Sample report: " + rep.Name
}

// title is the report title as markdown, with the name's metacharacters
// escaped
func title(rep *stats.Report) string {
	if rep.Name == "" {
		return plainTitle(rep)
	}
	return "Sample report: " + escapeMarkdown(rep.Name)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "{", `\{`, "}", `\}`,
	"[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`, "#", `\#`, "+", `\+`,
	"-", `\-`, ".", `\.`, "!", `\!`, "|", `\|`, "<", `\<`, ">", `\>`,
	"&", `\&`, "~", `\~`, "$", `\$`, "\n", " ", "\r", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
