// Package bootstrap estimates the mean-squared displacement and its
// uncertainty by block-bootstrap resampling.
//
// 🚀 What does it do?
//
//	For every sampled time interval it resamples the (atom, time-origin)
//	squared-displacement population — whole atoms with replacement, origins
//	with replacement inside each drawn atom — and summarizes the resulting
//	empirical MSD distribution with a mean and asymmetric percentile bounds.
//	The output is a distribution per interval, not just a point and a
//	variance, so the regression stage can inherit any skew.
//
// ✨ Key features:
//   - block resampling that preserves atom-level independence
//   - Distribution value type: sorted samples + cached mean/percentiles
//   - deterministic under a seed, including the parallel path
//   - optional worker pool across intervals (Options.Workers)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/kinisigo/bootstrap"
//
//	opts := bootstrap.DefaultOptions()
//	opts.Seed = 42
//	dists, err := bootstrap.MSD(disp, set, opts)
//
// Performance:
//
//   - Time: O(Σ atoms·origins·resamples) over the interval set
//   - Memory: O(atoms·origins) scratch per worker
package bootstrap
