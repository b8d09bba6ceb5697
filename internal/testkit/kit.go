package testkit

import (
	"math/rand/v2"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fixture is a named sample used across package tests
type Fixture struct {
	Name   string
	Values []float64
}

// Fixtures returns deterministic samples covering the shapes the analysis has
// to handle: duplicates, a constant sample, wide gaps between distinct
// values, negatives, and seeded draws from continuous distributions.
func Fixtures() []Fixture {
	return []Fixture{
		{Name: "single", Values: []float64{42}},
		{Name: "constant", Values: []float64{1, 1, 1, 1}},
		{Name: "duplicates", Values: []float64{2, 2, 3, 5, 5, 5}},
		{Name: "shuffled", Values: []float64{5, 2, 5, 3, 2, 5}},
		{Name: "integers", Values: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
		{Name: "two_points", Values: []float64{1, 100}},
		{Name: "wide_gap", Values: []float64{0, 0.1, 0.2, 10}},
		{Name: "negatives", Values: []float64{-3.5, -1, -1, 0, 2.25, 7}},
		{Name: "normal", Values: NormalSample(200, 10, 2, 7)},
		{Name: "normal_rounded", Values: RoundedSample(NormalSample(500, 0, 1, 11), 1)},
		{Name: "uniform", Values: UniformSample(300, -5, 5, 3)},
	}
}

// NormalSample draws n values from N(mu, sigma²) with a fixed seed
func NormalSample(n int, mu, sigma float64, seed uint64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewPCG(seed, seed+1)}
	return draw(n, dist.Rand)
}

// UniformSample draws n values from U(min, max) with a fixed seed
func UniformSample(n int, min, max float64, seed uint64) []float64 {
	dist := distuv.Uniform{Min: min, Max: max, Src: rand.NewPCG(seed, seed+1)}
	return draw(n, dist.Rand)
}

// RoundedSample rounds every value to the given number of decimal places,
// which turns a continuous draw into one with many ties.
func RoundedSample(values []float64, places int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		r, err := mstats.Round(v, places)
		if err != nil {
			r = v
		}
		out[i] = r
	}
	return out
}

func draw(n int, next func() float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = next()
	}
	return out
}
