// Package diffusion - the Einstein-relation regression model.
//
// A Relationship binds the sampled dt axis to the bootstrap MSD
// distributions and fits MSD = gradient·t + intercept under a
// heteroscedastic likelihood. The lifecycle is a strict three-state machine:
//
//	Unfit → MaxLikelihoodFit → PosteriorSampled (terminal)
//
// FitMaxLikelihood seeds the posterior sampler with a bounded
// differential-evolution point estimate; SamplePosterior then draws
// ensemble-MCMC samples under flat priors spanning the same bounds. The
// diffusion coefficient is the gradient scaled by 1/(2·d) for spatial
// dimensionality d.
//
// Design principles:
//   - Deterministic: explicit seeds throughout; no time-based randomness.
//   - Strict sentinels from types.go; no logging, no panics on user input.
//   - Distributions are samples-based end to end, so bootstrap skew survives
//     into the fitted parameters.
package diffusion

import (
	"math"

	"github.com/katalvlaran/kinisigo/bootstrap"
)

// sigmaFloor keeps the likelihood finite for degenerate-but-valid data, e.g.
// a stationary atom whose MSD distributions are exactly zero-width.
const sigmaFloor = 1e-12

// Relationship models the linear MSD-vs-time diffusion relation.
// Construct with NewRelationship; zero value is not usable.
type Relationship struct {
	// dt is the time axis.
	dt []float64
	// y holds the per-interval MSD means.
	y []float64
	// sigLo and sigHi are the per-interval lower/upper Gaussian scales,
	// recovered from the asymmetric bootstrap bounds.
	sigLo, sigHi []float64

	// gradBounds and ceptBounds are the optimizer search space and the flat
	// prior support.
	gradBounds, ceptBounds Bounds

	// dims is the spatial dimensionality d; D = gradient/(2·d).
	dims int

	// state is the lifecycle position.
	state State

	// mlGradient and mlIntercept hold the maximum-likelihood point estimate.
	mlGradient, mlIntercept float64

	// gradient and intercept hold the posterior samples after SamplePosterior.
	gradient, intercept bootstrap.Distribution
}

// NewRelationship builds an unfitted Relationship from the dt axis and the
// bootstrap MSD distributions.
//
// Contracts:
//   - len(dt) == len(dists) and ≥ 2 (ErrDimensionMismatch).
//   - dt must contain at least two distinct values (ErrZeroVariance: a single
//     abscissa makes the linear likelihood singular).
//   - distribution summaries must be finite (ErrNonFinite).
//   - gradBounds/ceptBounds must satisfy Min < Max (ErrBadBounds);
//     dims must be 1, 2, or 3 (ErrDimensionMismatch).
//
// The per-interval Gaussian scales are recovered from the two-sided bounds:
// sigHi=(High−Mean)/z and sigLo=(Mean−Low)/z with z the normal quantile of
// the distribution's confidence level. Zero-width distributions are floored
// at a tiny scale so exact data (stationary atoms) still fits cleanly.
//
// Complexity: O(k) for k intervals.
func NewRelationship(dt []float64, dists []bootstrap.Distribution, gradBounds, ceptBounds Bounds, dims int) (*Relationship, error) {
	if len(dt) != len(dists) || len(dt) < 2 {
		return nil, ErrDimensionMismatch
	}
	if dims < 1 || dims > 3 {
		return nil, ErrDimensionMismatch
	}
	if !gradBounds.valid() || !ceptBounds.valid() {
		return nil, ErrBadBounds
	}

	distinct := false
	for i := 1; i < len(dt); i++ {
		if dt[i] != dt[0] {
			distinct = true
			break
		}
	}
	if !distinct {
		return nil, ErrZeroVariance
	}

	r := &Relationship{
		dt:         append([]float64(nil), dt...),
		y:          make([]float64, len(dists)),
		sigLo:      make([]float64, len(dists)),
		sigHi:      make([]float64, len(dists)),
		gradBounds: gradBounds,
		ceptBounds: ceptBounds,
		dims:       dims,
		state:      Unfit,
	}
	for i, d := range dists {
		if !isFinite(d.Mean) || !isFinite(d.Low) || !isFinite(d.High) {
			return nil, ErrNonFinite
		}
		conf := d.Confidence
		if conf <= 0 || conf >= 1 {
			conf = bootstrap.DefaultConfidence
		}
		// z: two-sided normal quantile, e.g. 1.96 for 95 %.
		z := math.Sqrt2 * math.Erfinv(conf)
		r.y[i] = d.Mean
		r.sigLo[i] = floorSigma((d.Mean - d.Low) / z)
		r.sigHi[i] = floorSigma((d.High - d.Mean) / z)
	}
	return r, nil
}

// State returns the lifecycle position of the relationship.
func (r *Relationship) State() State { return r.state }

// Dt returns a copy of the time axis.
func (r *Relationship) Dt() []float64 { return append([]float64(nil), r.dt...) }

// MSD returns a copy of the per-interval MSD means.
func (r *Relationship) MSD() []float64 { return append([]float64(nil), r.y...) }

// logLikelihood evaluates the split-Gaussian log-likelihood of
// (gradient, intercept) over all intervals. Residuals above the mean are
// scaled by sigHi, residuals below by sigLo, so the asymmetric bootstrap
// bounds weight the fit directly. Returns -Inf outside the bounds.
//
// Complexity: O(k).
func (r *Relationship) logLikelihood(gradient, intercept float64) float64 {
	if !r.gradBounds.contains(gradient) || !r.ceptBounds.contains(intercept) {
		return math.Inf(-1)
	}
	var ll float64
	for i := range r.dt {
		model := gradient*r.dt[i] + intercept
		res := model - r.y[i]
		sig := r.sigHi[i]
		if res < 0 {
			sig = r.sigLo[i]
		}
		// Split-normal density: 2/(√(2π)(σLo+σHi))·exp(−res²/(2σ²_side)).
		ll += -0.5*(res/sig)*(res/sig) - math.Log(r.sigLo[i]+r.sigHi[i])
	}
	return ll
}

// FitMaxLikelihood estimates (gradient, intercept) by bounded differential
// evolution and advances the state machine to MaxLikelihoodFit.
//
// Contracts:
//   - Valid only in the Unfit state (ErrAlreadySampled after sampling;
//     refitting after a successful fit restarts the search and is allowed).
//   - Returns ErrFitBounds when no finite-likelihood point exists within the
//     bounds after the full generation budget.
//
// Complexity: O(Generations·Population·k).
func (r *Relationship) FitMaxLikelihood(opts FitOptions) (gradient, intercept float64, err error) {
	if r.state == PosteriorSampled {
		return 0, 0, ErrAlreadySampled
	}

	best, bestLL, err := differentialEvolution(
		r.logLikelihood,
		[2]Bounds{r.gradBounds, r.ceptBounds},
		opts,
	)
	if err != nil {
		return 0, 0, err
	}
	if math.IsInf(bestLL, -1) || math.IsNaN(bestLL) {
		return 0, 0, ErrFitBounds
	}

	r.mlGradient, r.mlIntercept = best[0], best[1]
	r.state = MaxLikelihoodFit
	return best[0], best[1], nil
}

// SamplePosterior draws ensemble-MCMC samples for (gradient, intercept),
// seeded at the maximum-likelihood point, and advances the state machine to
// its terminal PosteriorSampled state.
//
// Contracts:
//   - Valid only in the MaxLikelihoodFit state (ErrNotFitted before fitting,
//     ErrAlreadySampled afterwards).
//
// Complexity: O((BurnIn+Steps)·Walkers·k).
func (r *Relationship) SamplePosterior(opts SampleOptions) error {
	switch r.state {
	case Unfit:
		return ErrNotFitted
	case PosteriorSampled:
		return ErrAlreadySampled
	}

	chain, err := ensembleSample(
		r.logLikelihood,
		[2]Bounds{r.gradBounds, r.ceptBounds},
		[2]float64{r.mlGradient, r.mlIntercept},
		opts,
	)
	if err != nil {
		return err
	}

	grad := make([]float64, len(chain))
	cept := make([]float64, len(chain))
	for i, p := range chain {
		grad[i] = p[0]
		cept[i] = p[1]
	}
	if r.gradient, err = bootstrap.NewDistribution(grad, bootstrap.DefaultConfidence); err != nil {
		return err
	}
	if r.intercept, err = bootstrap.NewDistribution(cept, bootstrap.DefaultConfidence); err != nil {
		return err
	}
	r.state = PosteriorSampled
	return nil
}

// Gradient returns the posterior gradient distribution.
// Valid only in the PosteriorSampled state (ErrNotFitted otherwise).
func (r *Relationship) Gradient() (bootstrap.Distribution, error) {
	if r.state != PosteriorSampled {
		return bootstrap.Distribution{}, ErrNotFitted
	}
	return r.gradient, nil
}

// Intercept returns the posterior intercept (offset) distribution.
// Valid only in the PosteriorSampled state (ErrNotFitted otherwise).
func (r *Relationship) Intercept() (bootstrap.Distribution, error) {
	if r.state != PosteriorSampled {
		return bootstrap.Distribution{}, ErrNotFitted
	}
	return r.intercept, nil
}

// DiffusionCoefficient returns the posterior distribution of the
// self-diffusion coefficient D = gradient/(2·d).
// Valid only in the PosteriorSampled state (ErrNotFitted otherwise).
//
// Complexity: O(n log n) for n posterior samples (re-summarized after scaling).
func (r *Relationship) DiffusionCoefficient() (bootstrap.Distribution, error) {
	if r.state != PosteriorSampled {
		return bootstrap.Distribution{}, ErrNotFitted
	}
	scale := 1.0 / (2.0 * float64(r.dims))
	scaled := make([]float64, len(r.gradient.Samples))
	for i, v := range r.gradient.Samples {
		scaled[i] = v * scale
	}
	return bootstrap.NewDistribution(scaled, r.gradient.Confidence)
}

// MaxLikelihood returns the stored point estimate.
// Valid once the state is at least MaxLikelihoodFit (ErrNotFitted otherwise).
func (r *Relationship) MaxLikelihood() (gradient, intercept float64, err error) {
	if r.state == Unfit {
		return 0, 0, ErrNotFitted
	}
	return r.mlGradient, r.mlIntercept, nil
}

// floorSigma clamps non-positive or sub-floor scales up to sigmaFloor.
func floorSigma(s float64) float64 {
	if s < sigmaFloor || math.IsNaN(s) {
		return sigmaFloor
	}
	return s
}

// isFinite reports v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
