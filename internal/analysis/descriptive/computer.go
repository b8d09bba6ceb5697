package descriptive

import (
	"godist/domain/stats"
	"godist/internal/errors"
)

// Options controls the parts of the computation that have more than one
// reasonable convention.
type Options struct {
	SkipPolicy stats.SkipPolicy
	Precision  int
}

// DefaultOptions emits zero-count buckets for skipped ranges and rounds labels
// to three decimals.
func DefaultOptions() Options {
	return Options{
		SkipPolicy: stats.SkipEmitEmpty,
		Precision:  DefaultPrecision,
	}
}

// Computer derives a full report from a sample. It holds no per-sample state;
// every call recomputes everything from its input.
type Computer struct {
	binner Binner
}

// NewComputer creates a new report computer
func NewComputer(opts Options) *Computer {
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}
	return &Computer{binner: Binner{Policy: opts.SkipPolicy, Precision: opts.Precision}}
}

// ComputeValues validates raw values and computes their report. Empty input
// and non-finite values fail with an INVALID_INPUT error.
func (c *Computer) ComputeValues(name string, values []float64) (*stats.Report, error) {
	sample, err := stats.NewSample(values)
	if err != nil {
		return nil, errors.InvalidInput("invalid sample", err)
	}
	return c.Compute(name, sample)
}

// Compute runs order statistics, moments, the ECDF and the binner in data
// dependency order.
func (c *Computer) Compute(name string, sample stats.Sample) (*stats.Report, error) {
	order := Order(sample)

	moments, err := CentralMoments(sample)
	if err != nil {
		return nil, err
	}

	table := Frequencies(order.Series)

	return &stats.Report{
		Name:   name,
		Hash:   sample.Hash(),
		Sample: sample.Values(),
		Sorted: order.Series,
		Summary: stats.Summary{
			N:      sample.Len(),
			Min:    order.Min,
			Max:    order.Max,
			Range:  order.Range,
			Mean:   moments.Mean,
			StdDev: moments.StdDev,
		},
		Frequencies: table,
		ECDF:        Empirical(order.Series),
		Bins:        c.binner.Bin(table),
	}, nil
}
