package descriptive

import (
	"math"

	"godist/domain/stats"
)

// DefaultPrecision is the number of decimal places bucket labels are rounded
// up to.
const DefaultPrecision = 3

// degenerateWidth is the bin width used when the rule-of-thumb width is zero
// (a single distinct value) or not finite.
const degenerateWidth = 1.0

// Binner partitions a frequency table into equal-width buckets.
//
// The width follows Sturges' rule, h = (max - min) / (1 + log2 k), with k the
// number of distinct values. Buckets are walked with a running right edge
// that starts at min + h/2; the bucket closed at edge c is labelled
// ceil((c - h/2) * 10^p) / 10^p and holds the values in (c - h, c].
type Binner struct {
	Policy    stats.SkipPolicy
	Precision int
}

// NewBinner returns a binner with the given skip policy and three-decimal
// labels.
func NewBinner(policy stats.SkipPolicy) Binner {
	return Binner{Policy: policy, Precision: DefaultPrecision}
}

// Width returns Sturges' bin width for the table
func Width(table stats.FrequencyTable) float64 {
	k := float64(table.Distinct())
	return (table.Max() - table.Min()) / (1 + math.Log(k)/math.Log(2))
}

// RoundUp rounds x up to the given number of decimal places. It never rounds
// down: RoundUp(2.49999, 3) == 2.5 and RoundUp(1.0001, 3) == 1.001.
func RoundUp(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Ceil(x*scale) / scale
}

// Bin buckets the table. Every count lands in exactly one bucket, so the
// bucket counts always sum to table.Total().
func (b Binner) Bin(table stats.FrequencyTable) stats.BinSummary {
	summary := stats.BinSummary{
		Distinct: table.Distinct(),
		Policy:   b.Policy,
	}
	if table.Distinct() == 0 {
		return summary
	}

	h := Width(table)
	if table.Distinct() == 1 || !(h > 0) || math.IsInf(h, 0) {
		total := table.Total()
		summary.Width = degenerateWidth
		summary.Degenerate = true
		summary.Bins = []stats.Bin{{
			Boundary: RoundUp(table.Min(), b.Precision),
			Center:   table.Min(),
			Count:    total,
			Density:  float64(total) / degenerateWidth,
		}}
		return summary
	}
	summary.Width = h

	// Sturges' rule yields 1 + log2 k buckets. The cap keeps emit-empty
	// termination independent of float accumulation in current.
	maxBins := int(math.Ceil(1+math.Log(float64(table.Distinct()))/math.Log(2))) + 1

	current := table.Min() + h/2
	counter := 0
	bin := func(count int) stats.Bin {
		return stats.Bin{
			Boundary: RoundUp(current-h/2, b.Precision),
			Center:   current - h/2,
			Count:    count,
			Density:  float64(count) / h,
		}
	}
	emit := func(count int) {
		summary.Bins = append(summary.Bins, bin(count))
		current += h
	}

	for _, entry := range table.Entries {
		if entry.Value > current {
			emit(counter)
			counter = 0
			if b.Policy == stats.SkipEmitEmpty {
				for entry.Value > current && len(summary.Bins) < maxBins-1 {
					emit(0)
				}
			}
		}
		counter += entry.Count
	}

	summary.Bins = append(summary.Bins, bin(counter))
	return summary
}
