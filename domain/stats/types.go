package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"godist/domain/core"
)

// ============================================================================
// INPUT
// ============================================================================

// Sample is a finite, non-empty sequence of real numbers in input order.
// It copies the caller's slice and never exposes its backing array.
type Sample struct {
	values []float64
}

// MaxMagnitude bounds |x| for every sample value. Below it the sum of the
// values, the range, the squared deviations and their sum all stay finite
// for any sample that fits in memory.
const MaxMagnitude = 1e100

// NewSample validates and copies values. Empty input and NaN/±Inf values are
// rejected: both break the total order that sorting and the frequency table
// rely on. Values beyond ±MaxMagnitude are rejected too.
func NewSample(values []float64) (Sample, error) {
	if len(values) == 0 {
		return Sample{}, core.ErrEmptySample
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, core.NewNonFiniteError(i, v)
		}
		if math.Abs(v) > MaxMagnitude {
			return Sample{}, core.NewOutOfRangeError(i, v)
		}
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return Sample{values: cp}, nil
}

// Len returns n
func (s Sample) Len() int { return len(s.values) }

// At returns the i-th value in input order
func (s Sample) At(i int) float64 { return s.values[i] }

// Values returns a copy of the sample in input order
func (s Sample) Values() []float64 {
	cp := make([]float64, len(s.values))
	copy(cp, s.values)
	return cp
}

// Hash fingerprints the sample
func (s Sample) Hash() core.SampleHash { return core.NewSampleHash(s.values) }

// ============================================================================
// DERIVED STRUCTURES
// ============================================================================

// VariationSeries is the sample sorted ascending, duplicates kept
type VariationSeries []float64

// Min is the first element
func (v VariationSeries) Min() float64 { return v[0] }

// Max is the last element
func (v VariationSeries) Max() float64 { return v[len(v)-1] }

// Range is Max - Min
func (v VariationSeries) Range() float64 { return v.Max() - v.Min() }

// ValueCount is one row of a frequency table
type ValueCount struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// FrequencyTable maps each distinct value to its multiplicity, ascending by value
type FrequencyTable struct {
	Entries []ValueCount `json:"entries"`
	N       int          `json:"n"`
}

// Distinct returns k, the number of distinct values
func (t FrequencyTable) Distinct() int { return len(t.Entries) }

// Min returns the smallest key
func (t FrequencyTable) Min() float64 { return t.Entries[0].Value }

// Max returns the largest key
func (t FrequencyTable) Max() float64 { return t.Entries[len(t.Entries)-1].Value }

// Total sums the counts
func (t FrequencyTable) Total() int {
	total := 0
	for _, e := range t.Entries {
		total += e.Count
	}
	return total
}

// CountOf returns the multiplicity of v, 0 when v is not a key
func (t FrequencyTable) CountOf(v float64) int {
	i := sort.Search(len(t.Entries), func(i int) bool { return t.Entries[i].Value >= v })
	if i < len(t.Entries) && t.Entries[i].Value == v {
		return t.Entries[i].Count
	}
	return 0
}

// Point is an (x, y) pair handed to the presentation layer
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StepPoint holds F(x⁻) = P(X < x) at a distinct sample value x
type StepPoint struct {
	X float64 `json:"x"`
	F float64 `json:"f"`
}

// ECDFTerminalExtension is how far past the last key charts draw the y = 1
// segment. It is cosmetic and has no statistical meaning.
const ECDFTerminalExtension = 0.5

// ECDF is the empirical distribution under the left-exclusive convention
// F(x) = P(X < x). The value F(k⁻) stored at key k holds on (previous key, k];
// for x greater than the last key F(x) = 1.
type ECDF struct {
	Points []StepPoint `json:"points"`
	N      int         `json:"n"`
}

// Eval returns P(X < x)
func (e ECDF) Eval(x float64) float64 {
	if len(e.Points) == 0 {
		return 0
	}
	if x > e.Points[len(e.Points)-1].X {
		return 1
	}
	i := sort.Search(len(e.Points), func(i int) bool { return e.Points[i].X >= x })
	return e.Points[i].F
}

// Series returns the chart polyline: every (key, F(key⁻)), then the jump to
// 1 at the last key and the terminal segment to last key + extension.
func (e ECDF) Series(extension float64) []Point {
	if len(e.Points) == 0 {
		return nil
	}
	out := make([]Point, 0, len(e.Points)+2)
	for _, p := range e.Points {
		out = append(out, Point{X: p.X, Y: p.F})
	}
	last := e.Points[len(e.Points)-1].X
	out = append(out, Point{X: last, Y: 1}, Point{X: last + extension, Y: 1})
	return out
}

// SkipPolicy decides what the binner does when a value lies more than one
// bin width past the open bucket.
type SkipPolicy int

const (
	// SkipEmitEmpty closes as many buckets as needed, emitting zero counts
	// for the skipped ranges.
	SkipEmitEmpty SkipPolicy = iota
	// SkipMerge closes one bucket per value, so values that skip ahead are
	// merged into the next bucket. This matches the historical chart output.
	SkipMerge
)

func (p SkipPolicy) String() string {
	switch p {
	case SkipEmitEmpty:
		return "emit-empty"
	case SkipMerge:
		return "merge"
	default:
		return fmt.Sprintf("SkipPolicy(%d)", int(p))
	}
}

// ParseSkipPolicy accepts "emit-empty" or "merge"
func ParseSkipPolicy(s string) (SkipPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "emit-empty", "emit_empty", "empty":
		return SkipEmitEmpty, nil
	case "merge":
		return SkipMerge, nil
	default:
		return 0, fmt.Errorf("%w: %q", core.ErrUnknownPolicy, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p SkipPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (p *SkipPolicy) UnmarshalText(b []byte) error {
	parsed, err := ParseSkipPolicy(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Bin is one bucket of the frequency summary. Boundary is the bucket midpoint
// rounded up to the binner's precision and Center is the same midpoint
// unrounded. When the width is below the rounding step, neighbouring
// Boundary labels can be equal; Center always increases by the width.
// Density is Count divided by the bin width.
type Bin struct {
	Boundary float64 `json:"boundary"`
	Center   float64 `json:"center"`
	Count    int     `json:"count"`
	Density  float64 `json:"density"`
}

// BinSummary is the bucketed frequency summary shared by the histogram and
// the frequency polygon.
type BinSummary struct {
	Width      float64    `json:"width"`
	Distinct   int        `json:"distinct"`
	Degenerate bool       `json:"degenerate"`
	Policy     SkipPolicy `json:"policy"`
	Bins       []Bin      `json:"bins"`
}

// Total sums the raw counts
func (b BinSummary) Total() int {
	total := 0
	for _, bin := range b.Bins {
		total += bin.Count
	}
	return total
}

// DensitySeries is the histogram view: (boundary, count/width)
func (b BinSummary) DensitySeries() []Point {
	out := make([]Point, len(b.Bins))
	for i, bin := range b.Bins {
		out[i] = Point{X: bin.Boundary, Y: bin.Density}
	}
	return out
}

// CountSeries is the frequency-polygon view: (boundary, count)
func (b BinSummary) CountSeries() []Point {
	out := make([]Point, len(b.Bins))
	for i, bin := range b.Bins {
		out[i] = Point{X: bin.Boundary, Y: float64(bin.Count)}
	}
	return out
}

// ============================================================================
// REPORT
// ============================================================================

// Summary contains the scalar descriptive statistics
type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Range  float64 `json:"range"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Report bundles every artifact derived from one sample
type Report struct {
	ID          core.ReportID   `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Hash        core.SampleHash `json:"sample_hash"`
	Sample      []float64       `json:"sample"`
	Sorted      VariationSeries `json:"variation_series"`
	Summary     Summary         `json:"summary"`
	Frequencies FrequencyTable  `json:"frequencies"`
	ECDF        ECDF            `json:"ecdf"`
	Bins        BinSummary      `json:"bins"`
	CreatedAt   time.Time       `json:"created_at"`
}
