// Package diffusion - bounded differential-evolution optimizer.
//
// A small, deterministic rand/1/bin differential-evolution loop used to seed
// the posterior sampler with a maximum-likelihood point. The objective is a
// log-likelihood to MAXIMIZE; candidates outside the bounds are clamped back
// onto the box, so every evaluated point is feasible by construction.
//
// Design principles:
//   - Deterministic: all randomness flows from FitOptions.Seed.
//   - Strict sentinels from types.go; no logging, no panics on user input.
//   - Optional wall-clock budget (FitOptions.TimeLimit) checked once per
//     generation; the best point so far is returned on expiry.
package diffusion

import (
	"math"
	"math/rand"
	"time"
)

// objective is a log-likelihood over a fixed-dimension parameter point.
type objective func(gradient, intercept float64) float64

// differentialEvolution maximizes fn over the 2-parameter box described by
// bounds, returning the best point and its log-likelihood.
//
// Contracts:
//   - Zero-valued FitOptions fields fall back to the package defaults.
//   - Mutation must lie in (0, 2] and Recombination in (0, 1] (ErrBadBounds).
//
// Complexity: O(Generations·Population) objective evaluations.
func differentialEvolution(fn objective, bounds [2]Bounds, opts FitOptions) ([2]float64, float64, error) {
	if opts.Population == 0 {
		opts.Population = DefaultPopulation
	}
	if opts.Generations == 0 {
		opts.Generations = DefaultGenerations
	}
	if opts.Mutation == 0 {
		opts.Mutation = DefaultMutation
	}
	if opts.Recombination == 0 {
		opts.Recombination = DefaultRecombination
	}
	if opts.Population < 4 || opts.Generations < 1 ||
		opts.Mutation <= 0 || opts.Mutation > 2 ||
		opts.Recombination <= 0 || opts.Recombination > 1 {
		return [2]float64{}, 0, ErrBadBounds
	}

	rng := rngFromSeed(opts.Seed)
	np := opts.Population

	// Stage 1: uniform initialization across the box.
	pop := make([][2]float64, np)
	fit := make([]float64, np)
	bestIdx := 0
	for i := 0; i < np; i++ {
		for d := 0; d < 2; d++ {
			pop[i][d] = bounds[d].Min + rng.Float64()*bounds[d].width()
		}
		fit[i] = fn(pop[i][0], pop[i][1])
		if fit[i] > fit[bestIdx] {
			bestIdx = i
		}
	}

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	// Stage 2: rand/1/bin evolution with clamp-to-box repair.
	for g := 0; g < opts.Generations; g++ {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			break
		}
		for i := 0; i < np; i++ {
			a, b, c := pickThree(rng, np, i)
			jRand := rng.Intn(2)

			var trial [2]float64
			for d := 0; d < 2; d++ {
				if d == jRand || rng.Float64() < opts.Recombination {
					v := pop[a][d] + opts.Mutation*(pop[b][d]-pop[c][d])
					if v < bounds[d].Min {
						v = bounds[d].Min
					} else if v > bounds[d].Max {
						v = bounds[d].Max
					}
					trial[d] = v
				} else {
					trial[d] = pop[i][d]
				}
			}

			if tf := fn(trial[0], trial[1]); tf > fit[i] {
				pop[i], fit[i] = trial, tf
				if tf > fit[bestIdx] {
					bestIdx = i
				}
			}
		}
	}

	if math.IsInf(fit[bestIdx], -1) || math.IsNaN(fit[bestIdx]) {
		return [2]float64{}, fit[bestIdx], ErrFitBounds
	}
	return pop[bestIdx], fit[bestIdx], nil
}

// pickThree draws three distinct population indices, all different from i.
//
// Complexity: O(1) expected.
func pickThree(rng *rand.Rand, np, i int) (a, b, c int) {
	a = rng.Intn(np)
	for a == i {
		a = rng.Intn(np)
	}
	b = rng.Intn(np)
	for b == i || b == a {
		b = rng.Intn(np)
	}
	c = rng.Intn(np)
	for c == i || c == a || c == b {
		c = rng.Intn(np)
	}
	return a, b, c
}
