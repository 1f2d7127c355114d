package diffusion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinisigo/bootstrap"
	"github.com/katalvlaran/kinisigo/diffusion"
)

// lineDists builds one narrow bootstrap distribution per dt point around
// y = gradient·t + intercept, with a ±noise spread.
func lineDists(t *testing.T, dt []float64, gradient, intercept, noise float64) []bootstrap.Distribution {
	t.Helper()
	out := make([]bootstrap.Distribution, len(dt))
	for i, x := range dt {
		y := gradient*x + intercept
		d, err := bootstrap.NewDistribution([]float64{y - noise, y, y + noise}, 0.95)
		require.NoError(t, err)
		out[i] = d
	}
	return out
}

// axis returns 1..n as floats.
func axis(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// TestNewRelationship_Guards verifies the construction sentinels.
func TestNewRelationship_Guards(t *testing.T) {
	dt := axis(5)
	dists := lineDists(t, dt, 2, 1, 0.1)

	_, err := diffusion.NewRelationship(dt[:4], dists,
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	assert.ErrorIs(t, err, diffusion.ErrDimensionMismatch, "axis/distribution length mismatch")

	_, err = diffusion.NewRelationship(dt, dists,
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 4)
	assert.ErrorIs(t, err, diffusion.ErrDimensionMismatch, "dims must be 1..3")

	_, err = diffusion.NewRelationship(dt, dists,
		diffusion.Bounds{Min: 1, Max: 1}, diffusion.DefaultInterceptBounds, 3)
	assert.ErrorIs(t, err, diffusion.ErrBadBounds)

	flat := []float64{3, 3, 3, 3, 3}
	_, err = diffusion.NewRelationship(flat, dists,
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	assert.ErrorIs(t, err, diffusion.ErrZeroVariance, "a single abscissa is singular")
}

// TestRelationship_StateMachine verifies the strict Unfit →
// MaxLikelihoodFit → PosteriorSampled lifecycle.
func TestRelationship_StateMachine(t *testing.T) {
	dt := axis(8)
	rel, err := diffusion.NewRelationship(dt, lineDists(t, dt, 2, 1, 0.1),
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	require.NoError(t, err)
	assert.Equal(t, diffusion.Unfit, rel.State())

	// Sampling before fitting is rejected.
	err = rel.SamplePosterior(diffusion.DefaultSampleOptions())
	assert.ErrorIs(t, err, diffusion.ErrNotFitted)
	_, err = rel.Gradient()
	assert.ErrorIs(t, err, diffusion.ErrNotFitted)
	_, _, err = rel.MaxLikelihood()
	assert.ErrorIs(t, err, diffusion.ErrNotFitted)

	fopts := diffusion.DefaultFitOptions()
	fopts.Seed = 3
	_, _, err = rel.FitMaxLikelihood(fopts)
	require.NoError(t, err)
	assert.Equal(t, diffusion.MaxLikelihoodFit, rel.State())

	// Distributions are still unavailable before sampling.
	_, err = rel.DiffusionCoefficient()
	assert.ErrorIs(t, err, diffusion.ErrNotFitted)

	sopts := diffusion.DefaultSampleOptions()
	sopts.Seed = 3
	sopts.BurnIn, sopts.Steps = 100, 100
	require.NoError(t, rel.SamplePosterior(sopts))
	assert.Equal(t, diffusion.PosteriorSampled, rel.State())

	// The terminal state rejects every further transition.
	err = rel.SamplePosterior(sopts)
	assert.ErrorIs(t, err, diffusion.ErrAlreadySampled)
	_, _, err = rel.FitMaxLikelihood(fopts)
	assert.ErrorIs(t, err, diffusion.ErrAlreadySampled)
}

// TestFitMaxLikelihood_RecoversLine verifies the optimizer lands on the
// generating parameters of a tight synthetic line.
func TestFitMaxLikelihood_RecoversLine(t *testing.T) {
	dt := axis(20)
	rel, err := diffusion.NewRelationship(dt, lineDists(t, dt, 2.5, 0.75, 0.05),
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	require.NoError(t, err)

	opts := diffusion.DefaultFitOptions()
	opts.Seed = 11
	gradient, intercept, err := rel.FitMaxLikelihood(opts)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, gradient, 0.02)
	assert.InDelta(t, 0.75, intercept, 0.05)
}

// TestSamplePosterior_TracksMaxLikelihood verifies the posterior means sit
// near the ML point and the coefficient distribution is the gradient scaled
// by 1/(2·d).
func TestSamplePosterior_TracksMaxLikelihood(t *testing.T) {
	dt := axis(20)
	rel, err := diffusion.NewRelationship(dt, lineDists(t, dt, 3, -0.5, 0.05),
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	require.NoError(t, err)

	fopts := diffusion.DefaultFitOptions()
	fopts.Seed = 17
	gradient, _, err := rel.FitMaxLikelihood(fopts)
	require.NoError(t, err)

	sopts := diffusion.DefaultSampleOptions()
	sopts.Seed = 17
	require.NoError(t, rel.SamplePosterior(sopts))

	grad, err := rel.Gradient()
	require.NoError(t, err)
	assert.InDelta(t, gradient, grad.Mean, 0.05)
	assert.LessOrEqual(t, grad.Low, grad.Mean)
	assert.GreaterOrEqual(t, grad.High, grad.Mean)

	D, err := rel.DiffusionCoefficient()
	require.NoError(t, err)
	assert.InDelta(t, grad.Mean/6, D.Mean, 1e-9, "D = gradient/(2·3)")

	offset, err := rel.Intercept()
	require.NoError(t, err)
	assert.InDelta(t, -0.5, offset.Mean, 0.1)
}

// TestSamplePosterior_Deterministic verifies identical seeds reproduce the
// posterior exactly.
func TestSamplePosterior_Deterministic(t *testing.T) {
	run := func() bootstrap.Distribution {
		dt := axis(10)
		rel, err := diffusion.NewRelationship(dt, lineDists(t, dt, 2, 1, 0.1),
			diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
		require.NoError(t, err)

		fopts := diffusion.DefaultFitOptions()
		fopts.Seed = 5
		_, _, err = rel.FitMaxLikelihood(fopts)
		require.NoError(t, err)

		sopts := diffusion.DefaultSampleOptions()
		sopts.Seed = 5
		sopts.BurnIn, sopts.Steps = 200, 200
		require.NoError(t, rel.SamplePosterior(sopts))

		grad, err := rel.Gradient()
		require.NoError(t, err)
		return grad
	}

	assert.Equal(t, run(), run())
}

// TestFitMaxLikelihood_StationaryData verifies exactly-zero data (a
// stationary atom) fits cleanly to gradient≈0, intercept≈0 with a tight
// posterior, instead of erroring on the zero variance.
func TestFitMaxLikelihood_StationaryData(t *testing.T) {
	dt := axis(10)
	dists := make([]bootstrap.Distribution, len(dt))
	for i := range dists {
		d, err := bootstrap.NewDistribution([]float64{0, 0, 0}, 0.95)
		require.NoError(t, err)
		dists[i] = d
	}

	rel, err := diffusion.NewRelationship(dt, dists,
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	require.NoError(t, err)

	fopts := diffusion.DefaultFitOptions()
	fopts.Seed = 2
	gradient, intercept, err := rel.FitMaxLikelihood(fopts)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gradient, 1e-3)
	assert.InDelta(t, 0.0, intercept, 1e-2)

	sopts := diffusion.DefaultSampleOptions()
	sopts.Seed = 2
	require.NoError(t, rel.SamplePosterior(sopts))

	D, err := rel.DiffusionCoefficient()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, D.Mean, 5e-3)
	assert.Less(t, D.High-D.Low, 2e-2, "posterior stays tight around zero")
}

// TestFitOptions_Validation verifies nonsensical optimizer knobs are rejected.
func TestFitOptions_Validation(t *testing.T) {
	dt := axis(5)
	rel, err := diffusion.NewRelationship(dt, lineDists(t, dt, 2, 1, 0.1),
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	require.NoError(t, err)

	opts := diffusion.DefaultFitOptions()
	opts.Mutation = 3
	_, _, err = rel.FitMaxLikelihood(opts)
	assert.ErrorIs(t, err, diffusion.ErrBadBounds)
}

// TestSampleOptions_Validation verifies nonsensical sampler knobs are rejected.
func TestSampleOptions_Validation(t *testing.T) {
	dt := axis(5)
	rel, err := diffusion.NewRelationship(dt, lineDists(t, dt, 2, 1, 0.1),
		diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
	require.NoError(t, err)

	fopts := diffusion.DefaultFitOptions()
	fopts.Seed = 1
	_, _, err = rel.FitMaxLikelihood(fopts)
	require.NoError(t, err)

	sopts := diffusion.DefaultSampleOptions()
	sopts.Stretch = 0.5
	err = rel.SamplePosterior(sopts)
	assert.ErrorIs(t, err, diffusion.ErrBadBounds)
}

// TestState_String covers the lifecycle labels.
func TestState_String(t *testing.T) {
	assert.Equal(t, "unfit", diffusion.Unfit.String())
	assert.Equal(t, "max-likelihood-fit", diffusion.MaxLikelihoodFit.String())
	assert.Equal(t, "posterior-sampled", diffusion.PosteriorSampled.String())
}
