// Package intervals - bounded time-interval sampling for MSD evaluation.
//
// Evaluating the mean-squared displacement at every possible frame offset is
// O(n²) in trajectory length and mostly redundant: neighboring offsets share
// almost all their time origins. This package picks a bounded, evenly spaced
// subset of offsets instead:
//
//	minDT = MinTime / (StepSkip·TimeStep)   // skip intervals too short to matter
//	maxDT = min(nMobile·nsteps/MinObs, nsteps)
//	step  = max(1, (maxDT-minDT)/MaxPoints)
//
// The lower bound discards offsets shorter than one full period of real time;
// the upper bound guarantees each retained offset still has at least MinObs
// independent (atom, origin) observations. Spacing is linear in frame-index
// space.
package intervals

import "errors"

// ErrInsufficientData indicates the interval bounds cannot be satisfied:
// too few frames or mobile atoms for the requested minimum observation count.
var ErrInsufficientData = errors.New("intervals: not enough data to calculate diffusivity")

// ErrBadOptions indicates a non-positive time base or observation threshold.
var ErrBadOptions = errors.New("intervals: options must be strictly positive")

// Default option values.
const (
	// DefaultMinObs is the minimum number of (atom, origin) observations each
	// retained interval must support.
	DefaultMinObs = 30
	// DefaultMaxPoints caps the number of sampled intervals regardless of
	// trajectory length.
	DefaultMaxPoints = 200
	// DefaultMinTime is the shortest real-time span worth evaluating, in the
	// time units of TimeStep.
	DefaultMinTime = 1000.0
)

// Options configures interval selection.
type Options struct {
	// TimeStep is the MD integrator time step.
	TimeStep float64
	// StepSkip is the number of integrator steps between stored frames.
	StepSkip float64
	// MinObs is the minimum observation count per interval (default 30).
	MinObs int
	// MaxPoints caps the sampled interval count (default 200).
	MaxPoints int
	// MinTime is the real-time lower bound for intervals (default 1000).
	MinTime float64
}

// DefaultOptions returns Options with the package defaults and a unit
// time base (TimeStep=1, StepSkip=1).
func DefaultOptions() Options {
	return Options{
		TimeStep:  1,
		StepSkip:  1,
		MinObs:    DefaultMinObs,
		MaxPoints: DefaultMaxPoints,
		MinTime:   DefaultMinTime,
	}
}

// Choose selects a strictly increasing set of integer frame offsets for MSD
// evaluation.
//
// Contracts:
//   - nsteps is the number of stored frames; nMobile the mobile atom count.
//   - opts.TimeStep, opts.StepSkip, opts.MinObs must be positive (ErrBadOptions;
//     zero MinObs/MaxPoints/MinTime fall back to the package defaults first).
//   - Returns ErrInsufficientData when minDT >= maxDT.
//
// Every returned offset Δ satisfies 1 ≤ Δ < nsteps, and the sequence is
// strictly increasing with a constant stride.
//
// Complexity: O(k) time and space for k returned offsets (k ≤ MaxPoints+1).
func Choose(nsteps, nMobile int, opts Options) ([]int, error) {
	if opts.MinObs == 0 {
		opts.MinObs = DefaultMinObs
	}
	if opts.MaxPoints == 0 {
		opts.MaxPoints = DefaultMaxPoints
	}
	if opts.MinTime == 0 {
		opts.MinTime = DefaultMinTime
	}
	if opts.TimeStep <= 0 || opts.StepSkip <= 0 || opts.MinObs < 0 || opts.MaxPoints < 0 || opts.MinTime < 0 {
		return nil, ErrBadOptions
	}

	minDT := int(opts.MinTime / (opts.StepSkip * opts.TimeStep))
	if minDT < 1 {
		minDT = 1
	}
	maxDT := nMobile * nsteps / opts.MinObs
	if maxDT > nsteps {
		maxDT = nsteps
	}
	if minDT >= maxDT {
		return nil, ErrInsufficientData
	}

	step := (maxDT - minDT) / opts.MaxPoints
	if step < 1 {
		step = 1
	}

	set := make([]int, 0, (maxDT-minDT)/step+1)
	for dt := minDT; dt < maxDT; dt += step {
		set = append(set, dt)
	}
	return set, nil
}

// Times scales a set of frame offsets onto the real-time dt axis:
// dt[i] = set[i]·timeStep·stepSkip.
//
// Complexity: O(k).
func Times(set []int, timeStep, stepSkip float64) []float64 {
	out := make([]float64, len(set))
	unit := timeStep * stepSkip
	for i, dt := range set {
		out[i] = float64(dt) * unit
	}
	return out
}
