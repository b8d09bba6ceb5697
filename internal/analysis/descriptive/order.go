package descriptive

import (
	"math"
	"sort"

	"godist/domain/stats"

	mstats "github.com/montanaflynn/stats"
)

// OrderStatistics holds the variation series and its extremes
type OrderStatistics struct {
	Series stats.VariationSeries
	Min    float64
	Max    float64
	Range  float64
}

// signedOrder sorts ascending with -0 before +0
type signedOrder struct {
	mstats.Float64Data
}

func (s signedOrder) Less(i, j int) bool {
	a, b := s.Float64Data[i], s.Float64Data[j]
	if a == b {
		return math.Signbit(a) && !math.Signbit(b)
	}
	return a < b
}

// Order sorts a copy of the sample ascending, -0 before +0
func Order(sample stats.Sample) OrderStatistics {
	sorted := signedOrder{mstats.Float64Data(sample.Values())}
	sort.Sort(sorted)

	series := stats.VariationSeries(sorted.Float64Data)
	return OrderStatistics{
		Series: series,
		Min:    series.Min(),
		Max:    series.Max(),
		Range:  series.Range(),
	}
}
