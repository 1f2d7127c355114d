// Package bootstrap - block-bootstrap estimation of the mean-squared
// displacement.
//
// For each sampled interval Δ the estimator forms the population of squared
// displacements over every (mobile atom, time origin) pair, then resamples it
// with replacement to build an empirical distribution of the MSD:
//
//   - whole atoms are drawn with replacement (atoms are independent replicates),
//   - within each drawn atom, time origins are drawn with replacement
//     (origins of one atom share trajectory segments, so they stay blocked
//     under their atom),
//   - each resample's mean is one sample of the MSD distribution.
//
// Distributions are independent across intervals conditional on the shared
// displacement data; no cross-interval correlation is modeled here. The
// regression stage accounts for that by weighting with the per-interval
// credible bounds.
//
// Design principles:
//   - Deterministic: per-interval RNG substreams from one seed (rng.go);
//     the parallel path draws exactly the same numbers as the sequential one.
//   - Strict sentinels from types.go; no logging, no panics on user input.
//   - The displacement array is read-only here; each interval writes only its
//     own output slot, so the worker pool needs no locks.
package bootstrap

import (
	"math/rand"
	"sync"

	"github.com/katalvlaran/kinisigo/trajectory"
)

// MSD computes one bootstrap MSD distribution per interval in set.
//
// Contracts:
//   - disp must be non-nil with at least one mobile atom (ErrNoMobileAtoms).
//   - set must be non-empty (ErrNoIntervals) with every Δ in (0, nsteps)
//     (ErrIntervalOutOfRange).
//   - Zero-valued Options fields fall back to the package defaults; a
//     negative resample count (ErrBadResamples) or an axis mask outside
//     AxesXYZ (ErrBadAxes) is rejected.
//
// The returned slice preserves the order of set. Every distribution satisfies
// Low ≤ Mean ≤ High.
//
// Complexity: O(Σ_Δ atoms·origins(Δ)·(1+Resamples)) time;
// O(atoms·max origins) scratch space per worker.
func MSD(disp *trajectory.Displacements, set []int, opts Options) ([]Distribution, error) {
	if disp == nil || disp.NAtoms() == 0 || len(disp.Mobile) == 0 {
		return nil, ErrNoMobileAtoms
	}
	if len(set) == 0 {
		return nil, ErrNoIntervals
	}
	nSteps := disp.NSteps()
	for _, dt := range set {
		if dt <= 0 || dt >= nSteps {
			return nil, ErrIntervalOutOfRange
		}
	}

	if opts.Resamples == 0 {
		opts.Resamples = DefaultResamples
	}
	if opts.Resamples < 0 {
		return nil, ErrBadResamples
	}
	if opts.Confidence == 0 {
		opts.Confidence = DefaultConfidence
	}
	if opts.Confidence <= 0 || opts.Confidence >= 1 {
		return nil, ErrBadConfidence
	}
	if opts.Dims == 0 {
		opts.Dims = AxesXYZ
	}
	if opts.Dims&^AxesXYZ != 0 {
		return nil, ErrBadAxes
	}

	out := make([]Distribution, len(set))
	errs := make([]error, len(set))

	workers := opts.Workers
	if workers > len(set) {
		workers = len(set)
	}
	if workers < 2 {
		// Sequential path.
		for i, dt := range set {
			out[i], errs[i] = resampleInterval(disp, dt, opts, intervalRNG(opts.Seed, i))
		}
	} else {
		// Parallel path: one independent RNG substream per interval keeps the
		// drawn numbers identical to the sequential path.
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					out[i], errs[i] = resampleInterval(disp, set[i], opts, intervalRNG(opts.Seed, i))
				}
			}()
		}
		for i := range set {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Means extracts the point MSD estimate (distribution mean) per interval,
// in lockstep with the input order.
//
// Complexity: O(k).
func Means(dists []Distribution) []float64 {
	out := make([]float64, len(dists))
	for i, d := range dists {
		out[i] = d.Mean
	}
	return out
}

// resampleInterval builds the squared-displacement population for one
// interval and bootstraps it into an MSD distribution.
//
// Complexity: O(atoms·origins·(1+Resamples)).
func resampleInterval(disp *trajectory.Displacements, dt int, opts Options, rng *rand.Rand) (Distribution, error) {
	nOrigins := disp.NSteps() - dt
	nMobile := len(disp.Mobile)

	// Population: sq[m][f] is the squared displacement of mobile atom m
	// between frames f and f+dt, summed over the selected axes.
	sq := make([][]float64, nMobile)
	for m, a := range disp.Mobile {
		row := make([]float64, nOrigins)
		atom := disp.Disp[a]
		for f := 0; f < nOrigins; f++ {
			var s float64
			for k := 0; k < 3; k++ {
				if opts.Dims&(1<<k) == 0 {
					continue
				}
				d := atom[f+dt][k] - atom[f][k]
				s += d * d
			}
			row[f] = s
		}
		sq[m] = row
	}

	// Block bootstrap: atoms with replacement, then origins with replacement
	// under each drawn atom.
	samples := make([]float64, opts.Resamples)
	norm := 1.0 / float64(nMobile*nOrigins)
	for r := 0; r < opts.Resamples; r++ {
		var total float64
		for i := 0; i < nMobile; i++ {
			row := sq[rng.Intn(nMobile)]
			for j := 0; j < nOrigins; j++ {
				total += row[rng.Intn(nOrigins)]
			}
		}
		samples[r] = total * norm
	}

	return NewDistribution(samples, opts.Confidence)
}
