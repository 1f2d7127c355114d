// Package analyze - the orchestration facade.
//
// Run sequences the four core stages with explicit data handoffs:
//
//	trajectory.Build → intervals.Choose → bootstrap.MSD →
//	diffusion.NewRelationship → FitMaxLikelihood → SamplePosterior
//
// The facade adds no semantics of its own: core errors surface unchanged
// (wrapped with %w, so errors.Is still matches the sentinels), nothing is
// retried, and nothing is logged.
package analyze

import (
	"fmt"
	"io"

	"github.com/katalvlaran/kinisigo/bootstrap"
	"github.com/katalvlaran/kinisigo/diffusion"
	"github.com/katalvlaran/kinisigo/intervals"
	"github.com/katalvlaran/kinisigo/trajectory"
)

// Result exposes everything one analysis run produced.
type Result struct {
	// Dt is the sampled time axis (real time units).
	Dt []float64
	// MSD holds one bootstrap distribution per dt entry.
	MSD []bootstrap.Distribution
	// Relationship is the fitted model in its terminal state.
	Relationship *diffusion.Relationship
	// D is the posterior self-diffusion-coefficient distribution.
	D bootstrap.Distribution
	// Offset is the posterior intercept distribution.
	Offset bootstrap.Distribution
}

// Run executes a full analysis of t under cfg.
//
// Stage errors carry a stage prefix but wrap the core sentinels, so callers
// can still match with errors.Is (e.g. intervals.ErrInsufficientData).
func Run(t *trajectory.Trajectory, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	axes, err := cfg.axes()
	if err != nil {
		return nil, err
	}

	disp, err := trajectory.Build(t, cfg.Specie)
	if err != nil {
		return nil, fmt.Errorf("analyze: displacements: %w", err)
	}

	iopts := intervals.Options{
		TimeStep:  cfg.TimeStep,
		StepSkip:  cfg.StepSkip,
		MinObs:    cfg.MinObs,
		MaxPoints: cfg.MaxPoints,
		MinTime:   cfg.MinTime,
	}
	set, err := intervals.Choose(t.NSteps(), len(disp.Mobile), iopts)
	if err != nil {
		return nil, fmt.Errorf("analyze: intervals: %w", err)
	}

	bopts := bootstrap.Options{
		Resamples:  cfg.Resamples,
		Confidence: cfg.Confidence,
		Dims:       axes,
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
	}
	dists, err := bootstrap.MSD(disp, set, bopts)
	if err != nil {
		return nil, fmt.Errorf("analyze: bootstrap: %w", err)
	}

	gradB := diffusion.DefaultGradientBounds
	ceptB := diffusion.DefaultInterceptBounds
	if cfg.GradientBounds != ([2]float64{}) {
		gradB = diffusion.Bounds{Min: cfg.GradientBounds[0], Max: cfg.GradientBounds[1]}
	}
	if cfg.InterceptBounds != ([2]float64{}) {
		ceptB = diffusion.Bounds{Min: cfg.InterceptBounds[0], Max: cfg.InterceptBounds[1]}
	}

	dt := intervals.Times(set, cfg.TimeStep, cfg.StepSkip)
	rel, err := diffusion.NewRelationship(dt, dists, gradB, ceptB, axes.Count())
	if err != nil {
		return nil, fmt.Errorf("analyze: relationship: %w", err)
	}

	fopts := diffusion.DefaultFitOptions()
	fopts.Seed = cfg.Seed
	if _, _, err = rel.FitMaxLikelihood(fopts); err != nil {
		return nil, fmt.Errorf("analyze: max likelihood: %w", err)
	}

	sopts := diffusion.DefaultSampleOptions()
	sopts.Seed = cfg.Seed
	if cfg.Walkers != 0 {
		sopts.Walkers = cfg.Walkers
	}
	if cfg.BurnIn != 0 {
		sopts.BurnIn = cfg.BurnIn
	}
	if cfg.Steps != 0 {
		sopts.Steps = cfg.Steps
	}
	if err = rel.SamplePosterior(sopts); err != nil {
		return nil, fmt.Errorf("analyze: posterior: %w", err)
	}

	res := &Result{Dt: dt, MSD: dists, Relationship: rel}
	if res.D, err = rel.DiffusionCoefficient(); err != nil {
		return nil, err
	}
	if res.Offset, err = rel.Intercept(); err != nil {
		return nil, err
	}
	return res, nil
}

// WriteReport renders a plain-text summary: the MSD table with credible
// bounds, then the diffusion coefficient and offset posteriors.
func (r *Result) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%14s %14s %14s %14s\n", "dt", "msd", "lower", "upper"); err != nil {
		return err
	}
	for i := range r.Dt {
		d := r.MSD[i]
		if _, err := fmt.Fprintf(w, "%14.6g %14.6g %14.6g %14.6g\n", r.Dt[i], d.Mean, d.Low, d.High); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nD      = %.6g  [%.6g, %.6g] (%.0f%% CI)\n",
		r.D.Mean, r.D.Low, r.D.High, r.D.Confidence*100); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "offset = %.6g  [%.6g, %.6g] (%.0f%% CI)\n",
		r.Offset.Mean, r.Offset.Low, r.Offset.High, r.Offset.Confidence*100)
	return err
}
