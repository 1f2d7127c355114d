// Package diffusion defines option, state, and sentinel-error types for the
// Einstein-relation regression stage.
package diffusion

import (
	"errors"
	"time"
)

// Sentinel errors for diffusion operations.
var (
	// ErrDimensionMismatch indicates dt and distribution counts differ, or an
	// unsupported spatial dimensionality was requested.
	ErrDimensionMismatch = errors.New("diffusion: dt axis and MSD distributions must align")
	// ErrZeroVariance indicates a degenerate input: fewer than two distinct dt
	// values, so the linear likelihood is singular.
	ErrZeroVariance = errors.New("diffusion: degenerate inputs yield a singular likelihood")
	// ErrBadBounds indicates an empty or inverted parameter bound.
	ErrBadBounds = errors.New("diffusion: parameter bounds must satisfy min < max")
	// ErrFitBounds indicates the optimizer found no finite-likelihood solution
	// within the supplied bounds.
	ErrFitBounds = errors.New("diffusion: no solution within parameter bounds")
	// ErrNotFitted indicates SamplePosterior was called before FitMaxLikelihood.
	ErrNotFitted = errors.New("diffusion: maximum-likelihood fit must run before posterior sampling")
	// ErrAlreadySampled indicates the relationship reached its terminal state;
	// fitting and sampling cannot run again on the same instance.
	ErrAlreadySampled = errors.New("diffusion: posterior already sampled")
	// ErrNonFinite indicates a non-finite MSD summary in the input.
	ErrNonFinite = errors.New("diffusion: MSD distributions must be finite")
)

// State tracks the fitting lifecycle of a Relationship.
// Transitions are strictly Unfit → MaxLikelihoodFit → PosteriorSampled;
// no transition is skipped and the final state is terminal.
type State int

const (
	// Unfit: constructed, no parameters estimated yet.
	Unfit State = iota
	// MaxLikelihoodFit: point estimate available, posterior not yet sampled.
	MaxLikelihoodFit
	// PosteriorSampled: terminal; parameter distributions available.
	PosteriorSampled
)

// String implements fmt.Stringer for diagnostics.
func (s State) String() string {
	switch s {
	case Unfit:
		return "unfit"
	case MaxLikelihoodFit:
		return "max-likelihood-fit"
	case PosteriorSampled:
		return "posterior-sampled"
	default:
		return "unknown"
	}
}

// Bounds is a closed parameter range [Min, Max] used both as optimizer
// search space and as flat prior support.
type Bounds struct {
	Min, Max float64
}

// valid reports Min < Max.
func (b Bounds) valid() bool { return b.Min < b.Max }

// width returns Max-Min.
func (b Bounds) width() float64 { return b.Max - b.Min }

// contains reports whether v lies inside the closed range.
func (b Bounds) contains(v float64) bool { return v >= b.Min && v <= b.Max }

// Default parameter bounds for the gradient/intercept fit.
var (
	// DefaultGradientBounds bounds the MSD-vs-time slope.
	DefaultGradientBounds = Bounds{Min: 0, Max: 100}
	// DefaultInterceptBounds bounds the ordinate offset.
	DefaultInterceptBounds = Bounds{Min: -10, Max: 10}
)

// Default fit and sampling knobs.
const (
	// DefaultDims is the spatial dimensionality of the Einstein relation.
	DefaultDims = 3
	// DefaultPopulation is the differential-evolution population size.
	DefaultPopulation = 30
	// DefaultGenerations caps differential-evolution generations.
	DefaultGenerations = 400
	// DefaultMutation is the differential-evolution scale factor F.
	DefaultMutation = 0.8
	// DefaultRecombination is the differential-evolution crossover rate CR.
	DefaultRecombination = 0.9
	// DefaultWalkers is the ensemble-sampler walker count.
	DefaultWalkers = 32
	// DefaultBurnIn is the per-walker burn-in step count.
	DefaultBurnIn = 500
	// DefaultSteps is the per-walker retained step count.
	DefaultSteps = 500
	// DefaultThin keeps every DefaultThin-th retained step.
	DefaultThin = 1
	// DefaultStretch is the Goodman–Weare stretch-move parameter a.
	DefaultStretch = 2.0
)

// FitOptions configures FitMaxLikelihood.
type FitOptions struct {
	// Population is the differential-evolution population size (default 30).
	Population int
	// Generations caps the evolution loop (default 400).
	Generations int
	// Mutation is the scale factor F in (0, 2] (default 0.8).
	Mutation float64
	// Recombination is the crossover rate CR in (0, 1] (default 0.9).
	Recombination float64
	// Seed drives population initialization and evolution; 0 selects the
	// fixed default seed.
	Seed int64
	// TimeLimit, when positive, stops the evolution loop early once the
	// budget is exhausted; the best point found so far is returned.
	TimeLimit time.Duration
}

// DefaultFitOptions returns FitOptions with the package defaults.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Population:    DefaultPopulation,
		Generations:   DefaultGenerations,
		Mutation:      DefaultMutation,
		Recombination: DefaultRecombination,
	}
}

// SampleOptions configures SamplePosterior.
type SampleOptions struct {
	// Walkers is the ensemble size (default 32; minimum 4).
	Walkers int
	// BurnIn is the discarded per-walker step count (default 500).
	BurnIn int
	// Steps is the retained per-walker step count (default 500).
	Steps int
	// Thin keeps every Thin-th retained step (default 1).
	Thin int
	// Stretch is the Goodman–Weare move parameter a > 1 (default 2).
	Stretch float64
	// Seed drives walker initialization and moves; 0 selects the fixed
	// default seed.
	Seed int64
}

// DefaultSampleOptions returns SampleOptions with the package defaults.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Walkers: DefaultWalkers,
		BurnIn:  DefaultBurnIn,
		Steps:   DefaultSteps,
		Thin:    DefaultThin,
		Stretch: DefaultStretch,
	}
}
