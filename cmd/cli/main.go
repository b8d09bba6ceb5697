package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"godist/adapters/plot"
	"godist/adapters/source"
	"godist/app"
	"godist/domain/stats"
	"godist/internal"
	"godist/internal/analysis/descriptive"
	"godist/internal/config"
	"godist/internal/report"
	"godist/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "godist",
		Short:         "Descriptive statistics, ECDF and histograms for a one-dimensional sample",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newDescribeCmd(),
		newBatchCmd(),
		newPlotCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// inputFlags are shared by every command that reads one sample
type inputFlags struct {
	file   string
	column string
	sheet  string
	path   string
	name   string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Read the sample from a .txt, .csv, .xlsx or .json file")
	cmd.Flags().StringVar(&f.column, "column", "", "Column name or 1-based position (CSV, XLSX)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet name (XLSX, default first sheet)")
	cmd.Flags().StringVar(&f.path, "path", "", "gjson path of the sample array (JSON, default \"sample\")")
	cmd.Flags().StringVar(&f.name, "name", "", "Report name (default: the column or file name)")
}

// source picks values from args, then --file, then stdin
func (f *inputFlags) source(args []string, logger *internal.Logger) ports.SampleSource {
	switch {
	case len(args) > 0:
		return source.NewArgsSource(args)
	case f.file != "":
		return source.NewFileSource(f.file, source.Options{
			Column: f.column,
			Sheet:  f.sheet,
			Path:   f.path,
			Logger: logger,
		})
	default:
		return source.NewTextSource("stdin", os.Stdin)
	}
}

// env is what every command needs from configuration
type env struct {
	cfg      *config.Config
	logger   *internal.Logger
	describe *app.DescribeService
}

func setup(skipPolicy string) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if skipPolicy != "" {
		policy, err := stats.ParseSkipPolicy(skipPolicy)
		if err != nil {
			return nil, fmt.Errorf("invalid --skip-policy: %w", err)
		}
		cfg.Analysis.SkipPolicy = policy
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	computer := descriptive.NewComputer(descriptive.Options{
		SkipPolicy: cfg.Analysis.SkipPolicy,
		Precision:  cfg.Analysis.Precision,
	})

	return &env{
		cfg:      cfg,
		logger:   logger,
		describe: app.NewDescribeService(computer, nil, logger),
	}, nil
}

func newDescribeCmd() *cobra.Command {
	var in inputFlags
	var format string
	var noColor bool
	var plotDir string
	var skipPolicy string

	cmd := &cobra.Command{
		Use:   "describe [values...]",
		Short: "Print the descriptive report of a sample",
		Long: `Compute the variation series, extrema, range, mean, standard deviation,
empirical distribution function and histogram of a sample.

Values come from the arguments, from --file, or from stdin.

Example: godist describe 2 2 3 5 5 5
         godist describe --file heights.csv --column height --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(skipPolicy)
			if err != nil {
				return err
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			useColor := e.cfg.Report.Color && !noColor && f == report.FormatText

			rep, err := in.describe(cmd.Context(), e, args)
			if err != nil {
				return err
			}
			if err := report.NewRenderer(useColor).Render(cmd.OutOrStdout(), f, rep); err != nil {
				return err
			}

			if plotDir != "" {
				return savePlots(e, rep, plotDir, cmd.ErrOrStderr())
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown, html or json")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured headings")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "", "Also write the ECDF, histogram and polygon charts to this directory")
	cmd.Flags().StringVar(&skipPolicy, "skip-policy", "", "Histogram policy for skipped ranges: emit-empty or merge")

	return cmd
}

// describe reads the sample and computes its report. Values from arguments
// or stdin are unnamed unless --name is set.
func (f *inputFlags) describe(ctx context.Context, e *env, args []string) (*stats.Report, error) {
	col, err := f.source(args, e.logger).Read(ctx)
	if err != nil {
		return nil, err
	}
	name := f.name
	if name == "" && len(args) == 0 && f.file != "" {
		name = col.Name
	}
	return e.describe.Describe(ctx, name, col.Values)
}

func savePlots(e *env, rep *stats.Report, dir string, out io.Writer) error {
	renderer := plot.NewRenderer(plot.Config{
		WidthCm:  e.cfg.Plot.WidthCm,
		HeightCm: e.cfg.Plot.HeightCm,
		Format:   e.cfg.Plot.Format,
	}, e.logger)

	base := rep.Name
	if base == "" {
		base = "sample"
	}
	paths, err := renderer.SaveAll(rep, dir, base)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(out, "wrote %s\n", p)
	}
	return nil
}

func newBatchCmd() *cobra.Command {
	var file string
	var sheet string
	var format string
	var noColor bool
	var skipPolicy string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Describe every numeric column of a CSV or XLSX file",
		Long: `Describe every numeric column of a tabular file concurrently
(BATCH_CONCURRENCY columns at a time). Columns with invalid data are
reported on stderr and skipped.

Example: godist batch --file measurements.xlsx --sheet Week1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			e, err := setup(skipPolicy)
			if err != nil {
				return err
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			cols, ok := source.NewColumnSource(file, source.Options{Sheet: sheet, Logger: e.logger})
			if !ok {
				return fmt.Errorf("batch needs a .csv or .xlsx file, got %s", filepath.Base(file))
			}
			columns, err := cols.Columns(cmd.Context())
			if err != nil {
				return err
			}

			results, err := app.NewBatchService(e.describe, e.cfg.Batch.Concurrency).DescribeColumns(cmd.Context(), columns)
			if err != nil {
				return err
			}
			return printBatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), f, e.cfg.Report.Color && !noColor, results)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file to read")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (XLSX, default first sheet)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, markdown, html or json")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable coloured headings")
	cmd.Flags().StringVar(&skipPolicy, "skip-policy", "", "Histogram policy for skipped ranges: emit-empty or merge")

	return cmd
}

func printBatch(out, errOut io.Writer, f report.Format, useColor bool, results []app.ColumnReport) error {
	var ok []app.ColumnReport
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "column %s: %v\n", r.Column, r.Err)
			continue
		}
		ok = append(ok, r)
	}

	if f == report.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ok)
	}

	renderer := report.NewRenderer(useColor && f == report.FormatText)
	for i, r := range ok {
		if i > 0 {
			fmt.Fprintln(out, strings.Repeat("-", 40))
		}
		if err := renderer.Render(out, f, r.Report); err != nil {
			return err
		}
	}
	return nil
}

func newPlotCmd() *cobra.Command {
	var in inputFlags
	var kind string
	var out string
	var skipPolicy string

	cmd := &cobra.Command{
		Use:   "plot [values...]",
		Short: "Render one chart of a sample",
		Long: `Render the ECDF, histogram or frequency polygon of a sample. The image
format follows the --out extension (png, svg or pdf), falling back to
PLOT_FORMAT.

Example: godist plot --kind histogram --out hist.svg 2 2 3 5 5 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			chart, err := stats.ParseChartKind(kind)
			if err != nil {
				return err
			}
			e, err := setup(skipPolicy)
			if err != nil {
				return err
			}

			rep, err := in.describe(cmd.Context(), e, args)
			if err != nil {
				return err
			}
			return writeChart(e, chart, rep, out)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", string(stats.ChartECDF), "Chart: ecdf, histogram or polygon")
	cmd.Flags().StringVar(&out, "out", "", "Output image file")
	cmd.Flags().StringVar(&skipPolicy, "skip-policy", "", "Histogram policy for skipped ranges: emit-empty or merge")

	return cmd
}

func writeChart(e *env, kind stats.ChartKind, rep *stats.Report, out string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	switch format {
	case "png", "svg", "pdf":
	default:
		format = e.cfg.Plot.Format
	}

	renderer := plot.NewRenderer(plot.Config{
		WidthCm:  e.cfg.Plot.WidthCm,
		HeightCm: e.cfg.Plot.HeightCm,
		Format:   format,
	}, e.logger)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := renderer.Render(f, kind, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
