// Package trajectory turns raw molecular-dynamics frames into the
// drift-corrected displacement arrays the rest of the pipeline consumes.
//
// 🚀 What does it do?
//
//	Given an ordered sequence of frames (fractional coordinates + cell
//	matrix) and a mobile-species label, Build produces the cumulative
//	unwrapped Cartesian displacement of every atom relative to frame 0:
//	  • minimum-image unwrapping of periodic-boundary jumps
//	  • per-frame (NPT) or constant (NVT) lattice handling
//	  • drift correction against the framework sub-lattice mean
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/kinisigo/trajectory"
//
//	disp, err := trajectory.Build(traj, "Li")
//	if err != nil {
//	  // ErrTooFewFrames, ErrSpeciesNotFound, ...
//	}
//	_ = disp.Mobile // indices of the diffusing atoms
//
// The returned Displacements array is immutable by convention: the bootstrap
// stage reads it concurrently without locks.
//
// Performance:
//
//   - Time:   O(atoms·frames)
//   - Memory: O(atoms·frames)
package trajectory
