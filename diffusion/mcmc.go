// Package diffusion - affine-invariant ensemble sampler.
//
// A Goodman–Weare stretch-move sampler over the 2-parameter likelihood.
// The bounds act as flat priors: proposals outside the box carry zero
// posterior density and are rejected. Walkers start in a small deterministic
// ball around the maximum-likelihood point, clamped into the box.
//
// Design principles:
//   - Deterministic: all randomness flows from SampleOptions.Seed.
//   - Strict sentinels from types.go; no logging, no panics on user input.
//   - The returned chain is the flattened post-burn-in ensemble, thinned.
package diffusion

import (
	"math"
	"math/rand"
)

// initBallScale sizes the walker start ball relative to each bound's width.
const initBallScale = 1e-4

// ensembleSample draws posterior samples for the 2-parameter model, starting
// from the given seed point.
//
// Contracts:
//   - Zero-valued SampleOptions fields fall back to the package defaults.
//   - Walkers must be ≥ 4 (pairs are needed for stretch moves) and Stretch > 1,
//     otherwise ErrBadBounds.
//
// Complexity: O((BurnIn+Steps)·Walkers) objective evaluations;
// O(Steps·Walkers/Thin) space for the chain.
func ensembleSample(fn objective, bounds [2]Bounds, start [2]float64, opts SampleOptions) ([][2]float64, error) {
	if opts.Walkers == 0 {
		opts.Walkers = DefaultWalkers
	}
	if opts.BurnIn == 0 {
		opts.BurnIn = DefaultBurnIn
	}
	if opts.Steps == 0 {
		opts.Steps = DefaultSteps
	}
	if opts.Thin == 0 {
		opts.Thin = DefaultThin
	}
	if opts.Stretch == 0 {
		opts.Stretch = DefaultStretch
	}
	if opts.Walkers < 4 || opts.BurnIn < 0 || opts.Steps < 1 || opts.Thin < 1 || opts.Stretch <= 1 {
		return nil, ErrBadBounds
	}

	rng := rngFromSeed(opts.Seed)
	nw := opts.Walkers

	// Stage 1: initialize walkers in a tiny Gaussian ball around the ML point.
	walkers := make([][2]float64, nw)
	logp := make([]float64, nw)
	for w := 0; w < nw; w++ {
		for d := 0; d < 2; d++ {
			v := start[d] + rng.NormFloat64()*initBallScale*bounds[d].width()
			if v < bounds[d].Min {
				v = bounds[d].Min
			} else if v > bounds[d].Max {
				v = bounds[d].Max
			}
			walkers[w][d] = v
		}
		logp[w] = fn(walkers[w][0], walkers[w][1])
	}

	a := opts.Stretch
	chain := make([][2]float64, 0, nw*opts.Steps/opts.Thin)

	// Stage 2: stretch moves. Each walker stretches toward a random partner;
	// z ~ g(z) ∝ 1/√z on [1/a, a] via inverse-CDF sampling.
	total := opts.BurnIn + opts.Steps
	for step := 0; step < total; step++ {
		for w := 0; w < nw; w++ {
			partner := rng.Intn(nw - 1)
			if partner >= w {
				partner++
			}

			z := zStretch(rng, a)

			var prop [2]float64
			for d := 0; d < 2; d++ {
				prop[d] = walkers[partner][d] + z*(walkers[w][d]-walkers[partner][d])
			}

			pl := fn(prop[0], prop[1])
			// Acceptance: min(1, z^(dim-1)·exp(Δlogp)) with dim=2.
			logAccept := math.Log(z) + pl - logp[w]
			if pl > math.Inf(-1) && math.Log(rng.Float64()) < logAccept {
				walkers[w] = prop
				logp[w] = pl
			}

			if step >= opts.BurnIn && (step-opts.BurnIn)%opts.Thin == 0 {
				chain = append(chain, walkers[w])
			}
		}
	}

	return chain, nil
}

// zStretch draws the stretch factor z with density g(z) ∝ 1/√z on [1/a, a]
// by inverting the CDF: z = ((u·(√a − 1/√a) + 1/√a))².
//
// Complexity: O(1).
func zStretch(rng *rand.Rand, a float64) float64 {
	s := math.Sqrt(a)
	v := rng.Float64()*(s-1/s) + 1/s
	return v * v
}
