package descriptive

import (
	"godist/domain/stats"
	"godist/internal/errors"

	mstats "github.com/montanaflynn/stats"
)

// Moments holds the mean and the population standard deviation
type Moments struct {
	Mean   float64
	StdDev float64
}

// CentralMoments computes the arithmetic mean over all n raw values and the
// population (divide-by-n) standard deviation. The deviation sum is a second
// pass over the data after the mean is known.
func CentralMoments(sample stats.Sample) (Moments, error) {
	data := mstats.Float64Data(sample.Values())

	mean, err := mstats.Mean(data)
	if err != nil {
		return Moments{}, errors.Wrap(err, "failed to compute mean")
	}

	stdDev, err := mstats.StandardDeviationPopulation(data)
	if err != nil {
		return Moments{}, errors.Wrap(err, "failed to compute standard deviation")
	}

	return Moments{Mean: mean, StdDev: stdDev}, nil
}
