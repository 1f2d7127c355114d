// Package bootstrap defines option, distribution, and sentinel-error types
// for the block-bootstrap MSD estimator.
package bootstrap

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for bootstrap operations.
var (
	// ErrNoIntervals indicates an empty interval set.
	ErrNoIntervals = errors.New("bootstrap: interval set must be non-empty")
	// ErrNoMobileAtoms indicates the displacement array carries no mobile atoms.
	ErrNoMobileAtoms = errors.New("bootstrap: no mobile atoms to resample")
	// ErrIntervalOutOfRange indicates an interval ≤ 0 or ≥ the frame count.
	ErrIntervalOutOfRange = errors.New("bootstrap: interval must satisfy 0 < dt < nsteps")
	// ErrNoSamples indicates a distribution was built from an empty sample set.
	ErrNoSamples = errors.New("bootstrap: distribution requires at least one sample")
	// ErrBadConfidence indicates a confidence level outside (0, 1).
	ErrBadConfidence = errors.New("bootstrap: confidence must lie in (0, 1)")
	// ErrBadResamples indicates a negative resample count.
	ErrBadResamples = errors.New("bootstrap: resample count must be positive")
	// ErrBadAxes indicates an axis mask selecting bits outside x, y, z.
	ErrBadAxes = errors.New("bootstrap: axis mask must be a subset of xyz")
)

// Axes selects which spatial dimensions contribute to the squared
// displacement. Combine with bitwise OR.
type Axes uint8

const (
	// AxisX includes the first Cartesian component.
	AxisX Axes = 1 << iota
	// AxisY includes the second Cartesian component.
	AxisY
	// AxisZ includes the third Cartesian component.
	AxisZ

	// AxesXYZ is the full three-dimensional displacement (default).
	AxesXYZ = AxisX | AxisY | AxisZ
)

// Count returns the number of selected dimensions.
func (a Axes) Count() int {
	n := 0
	for k := 0; k < 3; k++ {
		if a&(1<<k) != 0 {
			n++
		}
	}
	return n
}

// Default option values.
const (
	// DefaultResamples is the bootstrap resample count per interval.
	DefaultResamples = 1000
	// DefaultConfidence is the two-sided confidence level for the reported bounds.
	DefaultConfidence = 0.95
)

// Options configures the MSD bootstrap.
type Options struct {
	// Resamples is the number of bootstrap resamples per interval (default 1000).
	Resamples int
	// Confidence is the two-sided confidence level of the bounds (default 0.95).
	Confidence float64
	// Dims selects the spatial dimensions to sum over (default AxesXYZ).
	Dims Axes
	// Seed drives all resampling; 0 selects a fixed default seed.
	Seed int64
	// Workers bounds the number of goroutines evaluating intervals in
	// parallel; values < 2 keep the estimator sequential. Results are
	// identical either way (per-interval RNG substreams).
	Workers int
}

// DefaultOptions returns Options with the package defaults.
func DefaultOptions() Options {
	return Options{
		Resamples:  DefaultResamples,
		Confidence: DefaultConfidence,
		Dims:       AxesXYZ,
	}
}

// Distribution is an empirical sample set with cached summary statistics:
// the mean and a two-sided percentile interval. It is a small value type;
// build it once and treat it as read-only.
type Distribution struct {
	// Samples, sorted ascending.
	Samples []float64
	// Mean of the samples.
	Mean float64
	// Low and High are the two-sided interval bounds at Confidence.
	Low, High float64
	// Confidence is the two-sided level the bounds were computed at.
	Confidence float64
}

// NewDistribution builds a Distribution from samples at the given two-sided
// confidence level. The input slice is copied and sorted; the caller keeps
// ownership of samples.
//
// Errors: ErrNoSamples for an empty input, ErrBadConfidence for a level
// outside (0, 1).
//
// Complexity: O(n log n) time, O(n) space.
func NewDistribution(samples []float64, confidence float64) (Distribution, error) {
	if len(samples) == 0 {
		return Distribution{}, ErrNoSamples
	}
	if confidence <= 0 || confidence >= 1 {
		return Distribution{}, ErrBadConfidence
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	tail := (1 - confidence) / 2
	d := Distribution{
		Samples:    sorted,
		Mean:       sum / float64(len(sorted)),
		Confidence: confidence,
	}
	d.Low = d.Percentile(100 * tail)
	d.High = d.Percentile(100 * (1 - tail))
	return d, nil
}

// Percentile returns the p-th percentile (0 ≤ p ≤ 100) of the sorted samples
// using linear interpolation between closest ranks. Out-of-range p clamps to
// the extremes.
//
// Complexity: O(1).
func (d Distribution) Percentile(p float64) float64 {
	n := len(d.Samples)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return d.Samples[0]
	}
	if p >= 100 {
		return d.Samples[n-1]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return d.Samples[lo]
	}
	frac := rank - float64(lo)
	return d.Samples[lo]*(1-frac) + d.Samples[hi]*frac
}

// Std returns the sample standard deviation of the distribution.
//
// Complexity: O(n).
func (d Distribution) Std() float64 {
	n := len(d.Samples)
	if n < 2 {
		return 0
	}
	var ss float64
	for _, v := range d.Samples {
		dv := v - d.Mean
		ss += dv * dv
	}
	return math.Sqrt(ss / float64(n-1))
}
