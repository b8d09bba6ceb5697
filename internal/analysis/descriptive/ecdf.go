package descriptive

import (
	"godist/domain/stats"
)

// Frequencies collapses runs of equal values in the variation series into a
// value -> count table.
func Frequencies(series stats.VariationSeries) stats.FrequencyTable {
	table := stats.FrequencyTable{N: len(series)}
	for i := 0; i < len(series); {
		j := i
		for j < len(series) && series[j] == series[i] {
			j++
		}
		table.Entries = append(table.Entries, stats.ValueCount{Value: series[i], Count: j - i})
		i = j
	}
	return table
}

// Empirical builds the ECDF from the variation series. Each distinct value v
// maps to the index of its first occurrence over n, which is the share of
// the sample strictly below v.
func Empirical(series stats.VariationSeries) stats.ECDF {
	n := float64(len(series))
	ecdf := stats.ECDF{N: len(series)}
	for i := 0; i < len(series); {
		ecdf.Points = append(ecdf.Points, stats.StepPoint{X: series[i], F: float64(i) / n})
		j := i + 1
		for j < len(series) && series[j] == series[i] {
			j++
		}
		i = j
	}
	return ecdf
}
