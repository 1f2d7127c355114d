// Package kinisigo estimates self-diffusion coefficients from
// molecular-dynamics trajectories — with honest uncertainties.
//
// 🚀 What is kinisigo?
//
//	A pipeline that takes raw simulation frames and returns a posterior
//	distribution over the diffusion coefficient:
//		• Displacements: minimum-image unwrapping + framework drift correction
//		• Intervals: bounded, evenly spaced time-interval sampling
//		• Bootstrap: block-bootstrapped MSD distributions per interval
//		• Diffusion: Einstein-relation fit (differential evolution) and
//		  posterior sampling (affine-invariant ensemble MCMC)
//
// ✨ Why choose kinisigo?
//
//   - Uncertainty-first – every MSD value is a resampled distribution,
//     not a bare mean
//   - Deterministic – a fixed seed reproduces every draw, even across
//     worker counts
//   - Pure Go – no cgo, no external solvers
//   - Composable – each stage is a standalone package; the analyze facade
//     wires them for the common case
//
// Under the hood, the pipeline is organized as:
//
//	trajectory/ — frames → drift-corrected displacement arrays
//	intervals/  — which time intervals to evaluate
//	bootstrap/  — MSD distributions via block bootstrap
//	diffusion/  — gradient/intercept fit + posterior over D
//	xdatcar/    — VASP XDATCAR reader
//	analyze/    — YAML-configured facade over the whole chain
//	cmd/        — the kinisigo CLI
//
// ⚙️ Quick start:
//
//	traj, _ := xdatcar.ReadFile("XDATCAR", 2.0, 50)
//	cfg := analyze.Config{Specie: "Li", TimeStep: 2.0, StepSkip: 50}
//	res, err := analyze.Run(traj, cfg)
//	if err != nil {
//	  // every stage returns typed sentinel errors
//	}
//	fmt.Println(res.D.Mean, res.D.Low, res.D.High)
package kinisigo
