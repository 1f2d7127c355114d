// Package trajectory - displacement building with drift correction.
//
// This file converts per-frame fractional coordinates into cumulative
// unwrapped Cartesian displacements:
//
//  1. Wrap consecutive fractional deltas into [-0.5, 0.5) (minimum-image
//     convention) to undo periodic-boundary jumps.
//  2. Cumulatively sum the wrapped deltas, then map to Cartesian space using
//     each frame's lattice (or frame 0's lattice when the cell is constant).
//  3. Subtract, per frame, the mean displacement of the framework sub-lattice
//     from every atom, removing rigid-body drift of the cell.
//
// Design principles:
//   - Deterministic, side-effect free; no logging, no panics on user input.
//   - Strict sentinels from types.go.
//   - One pass per stage; no hidden allocations in the inner loops.
package trajectory

import "math"

// Build converts t into a drift-corrected Displacements array for the given
// mobile specie.
//
// Contracts:
//   - t must hold at least two frames (ErrTooFewFrames).
//   - every frame must hold the same atom count as frame 0 (ErrAtomCountMismatch).
//   - len(t.Species) must equal the atom count (ErrSpeciesLengthMismatch).
//   - specie must match at least one atom (ErrSpeciesNotFound).
//
// When the trajectory has no framework atoms (every atom is mobile), drift
// correction is a no-op: there is no reference sub-lattice to subtract.
//
// Complexity: O(atoms·frames) time, O(atoms·frames) space for the output.
func Build(t *Trajectory, specie string) (*Displacements, error) {
	if t == nil || len(t.Frames) < 2 {
		return nil, ErrTooFewFrames
	}

	nAtoms := len(t.Frames[0].Coords)
	for _, fr := range t.Frames {
		if len(fr.Coords) != nAtoms {
			return nil, ErrAtomCountMismatch
		}
	}
	if len(t.Species) != nAtoms {
		return nil, ErrSpeciesLengthMismatch
	}

	// Partition atoms into mobile and framework sets.
	var mobile, framework []int
	for i, s := range t.Species {
		if s == specie {
			mobile = append(mobile, i)
		} else {
			framework = append(framework, i)
		}
	}
	if len(mobile) == 0 {
		return nil, ErrSpeciesNotFound
	}

	// Stage 1: unwrap. Fractional deltas between consecutive frames are
	// wrapped into [-0.5, 0.5) and cumulatively summed per atom.
	nSteps := len(t.Frames)
	frac := make([][][3]float64, nAtoms)
	for a := 0; a < nAtoms; a++ {
		frac[a] = make([][3]float64, nSteps)
	}
	for f := 1; f < nSteps; f++ {
		prev := t.Frames[f-1].Coords
		curr := t.Frames[f].Coords
		for a := 0; a < nAtoms; a++ {
			for k := 0; k < 3; k++ {
				d := curr[a][k] - prev[a][k]
				d -= math.Round(d)
				frac[a][f][k] = frac[a][f-1][k] + d
			}
		}
	}

	// Stage 2: fractional → Cartesian. NVT runs repeat the cell verbatim, so
	// exact first==last equality selects the constant-lattice fast path.
	constCell := t.Frames[0].Cell.Equal(t.Frames[nSteps-1].Cell)
	disp := make([][][3]float64, nAtoms)
	for a := 0; a < nAtoms; a++ {
		disp[a] = make([][3]float64, nSteps)
		for f := 1; f < nSteps; f++ {
			cell := t.Frames[0].Cell
			if !constCell {
				cell = t.Frames[f].Cell
			}
			disp[a][f] = cell.Cartesian(frac[a][f])
		}
	}

	// Stage 3: drift correction. Subtract the framework mean displacement at
	// each frame from every atom; the framework mean itself becomes zero.
	if len(framework) > 0 {
		inv := 1.0 / float64(len(framework))
		for f := 1; f < nSteps; f++ {
			var mean [3]float64
			for _, a := range framework {
				for k := 0; k < 3; k++ {
					mean[k] += disp[a][f][k]
				}
			}
			for k := 0; k < 3; k++ {
				mean[k] *= inv
			}
			for a := 0; a < nAtoms; a++ {
				for k := 0; k < 3; k++ {
					disp[a][f][k] -= mean[k]
				}
			}
		}
	}

	return &Displacements{Disp: disp, Mobile: mobile, Framework: framework}, nil
}
