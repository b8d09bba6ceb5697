package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/errors"
)

// Format is an output format for a report
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat accepts text, markdown (md), html or json
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", errors.InvalidInput("unknown report format", fmt.Errorf("%w: %q", core.ErrUnknownFormat, s))
	}
}

// Renderer writes reports in every supported format
type Renderer struct {
	heading *color.Color
}

// NewRenderer creates a renderer. With useColor set, text headings are
// magenta regardless of whether the output is a terminal.
func NewRenderer(useColor bool) *Renderer {
	heading := color.New(color.FgMagenta)
	if useColor {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}
	return &Renderer{heading: heading}
}

// Render dispatches on format
func (r *Renderer) Render(w io.Writer, format Format, rep *stats.Report) error {
	switch format {
	case FormatText:
		return r.Text(w, rep)
	case FormatMarkdown:
		return r.Markdown(w, rep)
	case FormatHTML:
		return r.HTML(w, rep)
	case FormatJSON:
		return r.JSON(w, rep)
	default:
		return errors.InvalidInput("unknown report format", fmt.Errorf("%w: %q", core.ErrUnknownFormat, format))
	}
}

// JSON writes the full report, indented
func (r *Renderer) JSON(w io.Writer, rep *stats.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	return nil
}

// ecdfLine is one interval of the ECDF step function
type ecdfLine struct {
	value    string
	interval string
}

// ecdfLines lists the intervals of the step function, closing with the
// implicit 1 beyond the last key
func ecdfLines(e stats.ECDF) []ecdfLine {
	lines := make([]ecdfLine, 0, len(e.Points)+1)
	for i, p := range e.Points {
		interval := "x<=" + FormatDouble(p.X)
		if i > 0 {
			interval = FormatDouble(e.Points[i-1].X) + "<x<=" + FormatDouble(p.X)
		}
		lines = append(lines, ecdfLine{value: FormatDouble(p.F), interval: interval})
	}
	if len(e.Points) > 0 {
		last := e.Points[len(e.Points)-1].X
		lines = append(lines, ecdfLine{value: "1", interval: "x>" + FormatDouble(last)})
	}
	return lines
}
