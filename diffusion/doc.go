// Package diffusion fits the Einstein relation to block-bootstrap MSD data
// with full posterior uncertainty.
//
// 🚀 What does it do?
//
//	Given the sampled dt axis and one bootstrap MSD distribution per
//	interval, a Relationship fits MSD = gradient·t + intercept:
//	  • bounded differential evolution finds the maximum-likelihood point
//	  • an affine-invariant ensemble sampler draws the posterior under flat
//	    priors spanning the same bounds
//	  • the self-diffusion coefficient is gradient/(2·d) for dimensionality d
//
// The likelihood is heteroscedastic and asymmetric: each interval's Gaussian
// scale comes from its bootstrap credible bounds, with separate scales above
// and below the mean, so bootstrap skew weights the fit and survives into the
// fitted parameter distributions.
//
// Lifecycle (strict, no skipping):
//
//	Unfit → MaxLikelihoodFit → PosteriorSampled (terminal)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/kinisigo/diffusion"
//
//	rel, err := diffusion.NewRelationship(dt, dists,
//	  diffusion.DefaultGradientBounds, diffusion.DefaultInterceptBounds, 3)
//	if err != nil { ... }
//	if _, _, err = rel.FitMaxLikelihood(diffusion.DefaultFitOptions()); err != nil { ... }
//	if err = rel.SamplePosterior(diffusion.DefaultSampleOptions()); err != nil { ... }
//	D, _ := rel.DiffusionCoefficient()
//
// Performance:
//
//   - Fit:    O(Generations·Population·k) likelihood evaluations
//   - Sample: O((BurnIn+Steps)·Walkers·k) likelihood evaluations
package diffusion
