package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal"
	"godist/internal/errors"
	"godist/ports"
)

var (
	pinkLace    = color.RGBA{R: 255, G: 211, B: 232, A: 255}
	winterSky   = color.RGBA{R: 245, G: 0, B: 118, A: 255}
	nyanzaLight = color.RGBA{R: 243, G: 255, B: 225, A: 255}
	greenYellow = color.RGBA{R: 190, G: 255, B: 92, A: 255}
	nyanzaDark  = color.RGBA{R: 223, G: 255, B: 214, A: 255}
	neonGreen   = color.RGBA{R: 79, G: 255, B: 31, A: 255}
)

// Config sizes and encodes charts
type Config struct {
	WidthCm  float64
	HeightCm float64
	Format   string // png, svg or pdf
}

// DefaultConfig draws 16cm square PNGs
func DefaultConfig() Config {
	return Config{WidthCm: 16, HeightCm: 16, Format: "png"}
}

// Renderer draws report charts with gonum/plot
type Renderer struct {
	width  vg.Length
	height vg.Length
	format string
	logger *internal.Logger
}

var _ ports.ChartRenderer = (*Renderer)(nil)

// NewRenderer creates a chart renderer
func NewRenderer(cfg Config, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "png"
	}
	return &Renderer{
		width:  vg.Length(cfg.WidthCm) * vg.Centimeter,
		height: vg.Length(cfg.HeightCm) * vg.Centimeter,
		format: format,
		logger: logger,
	}
}

// Format returns the image format, which is also the file extension SaveAll
// uses
func (r *Renderer) Format() string {
	return r.format
}

// ECDF draws the step function. Each segment holds F(k⁻) on (previous key, k],
// which is gonum's pre-step, and the curve ends on a short y = 1 segment.
func (r *Renderer) ECDF(w io.Writer, ecdf stats.ECDF) error {
	p := newPlot("Empirical distribution function", "x", "F(x)", pinkLace)

	line, err := plotter.NewLine(toXYs(ecdf.Series(stats.ECDFTerminalExtension)))
	if err != nil {
		return errors.RenderingFailed(string(stats.ChartECDF), err)
	}
	line.StepStyle = plotter.PreStep
	line.Color = winterSky
	line.Width = vg.Points(2)

	p.Add(line)
	p.Legend.Add("F(x)", line)
	p.Y.Min, p.Y.Max = 0, 1.05

	return r.write(w, p, stats.ChartECDF)
}

// Histogram draws one bar per bucket with height count/h, centred on the
// unrounded bucket midpoint.
func (r *Renderer) Histogram(w io.Writer, bins stats.BinSummary) error {
	p := newPlot("Frequency histogram", "x", "n/h", nyanzaLight)

	half := bins.Width / 2
	hist := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins.Bins)),
		Width:     bins.Width,
		FillColor: greenYellow,
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range bins.Bins {
		hist.Bins[i] = plotter.HistogramBin{Min: b.Center - half, Max: b.Center + half, Weight: b.Density}
	}
	hist.LineStyle.Color = greenYellow

	p.Add(hist)
	p.Legend.Add("histogram", hist)

	return r.write(w, p, stats.ChartHistogram)
}

// Polygon joins the (center, count) points
func (r *Renderer) Polygon(w io.Writer, bins stats.BinSummary) error {
	p := newPlot("Frequency polygon", "x", "n", nyanzaDark)

	line, points, err := plotter.NewLinePoints(centerCounts(bins))
	if err != nil {
		return errors.RenderingFailed(string(stats.ChartPolygon), err)
	}
	line.Color = neonGreen
	line.Width = vg.Points(2)
	points.GlyphStyle.Color = neonGreen

	p.Add(line, points)
	p.Legend.Add("p(x)", line, points)

	return r.write(w, p, stats.ChartPolygon)
}

// Render dispatches on kind
func (r *Renderer) Render(w io.Writer, kind stats.ChartKind, report *stats.Report) error {
	switch kind {
	case stats.ChartECDF:
		return r.ECDF(w, report.ECDF)
	case stats.ChartHistogram:
		return r.Histogram(w, report.Bins)
	case stats.ChartPolygon:
		return r.Polygon(w, report.Bins)
	default:
		return errors.InvalidInput("unknown chart", fmt.Errorf("%w: chart %q", core.ErrUnknownFormat, kind))
	}
}

// SaveAll writes the three charts of report to dir
func (r *Renderer) SaveAll(report *stats.Report, dir, base string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create plot directory")
	}
	if base == "" {
		base = "sample"
	}

	paths := make([]string, 0, len(stats.ChartKinds))
	for _, kind := range stats.ChartKinds {
		var buf bytes.Buffer
		if err := r.Render(&buf, kind, report); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, kind, r.format))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return paths, errors.RenderingFailed(string(kind), err)
		}
		r.logger.Debug("[PlotRenderer] wrote %s (%d bytes)", path, buf.Len())
		paths = append(paths, path)
	}
	return paths, nil
}

func newPlot(title, xLabel, yLabel string, background color.Color) *gplot.Plot {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.BackgroundColor = background
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) write(w io.Writer, p *gplot.Plot, kind stats.ChartKind) error {
	wt, err := p.WriterTo(r.width, r.height, r.format)
	if err != nil {
		return errors.RenderingFailed(string(kind), err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.RenderingFailed(string(kind), err)
	}
	return nil
}

// centerCounts places counts at the unrounded midpoints, which stay distinct
// when rounded labels collide
func centerCounts(bins stats.BinSummary) plotter.XYs {
	xys := make(plotter.XYs, len(bins.Bins))
	for i, b := range bins.Bins {
		xys[i].X = b.Center
		xys[i].Y = float64(b.Count)
	}
	return xys
}

func toXYs(points []stats.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}
