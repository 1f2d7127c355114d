// Package trajectory defines core types and sentinel errors for converting
// raw molecular-dynamics frames into drift-corrected Cartesian displacements.
package trajectory

import "errors"

// Sentinel errors for trajectory operations.
var (
	// ErrTooFewFrames indicates fewer than two frames were supplied;
	// displacements are deltas between frames, so one frame carries no signal.
	ErrTooFewFrames = errors.New("trajectory: at least two frames are required")
	// ErrSpeciesNotFound indicates the mobile-species selector matched no atoms.
	ErrSpeciesNotFound = errors.New("trajectory: mobile species matches zero atoms")
	// ErrAtomCountMismatch indicates a frame whose atom count differs from frame 0.
	ErrAtomCountMismatch = errors.New("trajectory: atom count must be constant across frames")
	// ErrSpeciesLengthMismatch indicates len(species) differs from the per-frame atom count.
	ErrSpeciesLengthMismatch = errors.New("trajectory: species labels must cover every atom")
)

// Lattice is a 3×3 cell matrix with rows as lattice vectors, so a fractional
// coordinate f maps to Cartesian space as f·L (row-vector convention).
type Lattice [3][3]float64

// Equal reports exact element-wise equality. Constant-lattice (NVT) runs are
// detected by exact equality of the first and last frame lattices, matching
// the convention of VASP-style trajectory writers that repeat the header
// verbatim when the cell does not change.
func (l Lattice) Equal(other Lattice) bool {
	return l == other
}

// Cartesian maps the fractional vector f into Cartesian space: f·L.
func (l Lattice) Cartesian(f [3]float64) [3]float64 {
	var out [3]float64
	for k := 0; k < 3; k++ {
		out[k] = f[0]*l[0][k] + f[1]*l[1][k] + f[2]*l[2][k]
	}
	return out
}

// Frame holds one snapshot of the simulation: fractional coordinates for
// every atom plus the cell matrix in effect for that snapshot. For NPT-style
// runs the lattice varies per frame; for NVT runs it is repeated unchanged.
type Frame struct {
	// Coords[a] is the fractional coordinate of atom a in this frame.
	Coords [][3]float64
	// Cell is the lattice matrix of this frame.
	Cell Lattice
}

// Trajectory is an ordered sequence of frames with per-atom species labels
// and the real-time spacing between stored frames. Atom count and ordering
// are constant across frames (validated by Build).
type Trajectory struct {
	// Frames, ordered in sequence of the run.
	Frames []Frame
	// Species[a] is the chemical symbol of atom a, e.g. "Li".
	Species []string
	// TimeStep is the MD integrator time step.
	TimeStep float64
	// StepSkip is how many integrator steps separate stored frames; the real
	// time between frames is TimeStep*StepSkip.
	StepSkip float64
}

// NSteps returns the number of stored frames.
func (t *Trajectory) NSteps() int { return len(t.Frames) }

// FrameTime returns the real time between consecutive stored frames.
func (t *Trajectory) FrameTime() float64 { return t.TimeStep * t.StepSkip }

// MobileIndices returns the indices of atoms whose species label equals specie.
func (t *Trajectory) MobileIndices(specie string) []int {
	var idx []int
	for i, s := range t.Species {
		if s == specie {
			idx = append(idx, i)
		}
	}
	return idx
}

// Displacements is the cumulative, drift-corrected, unwrapped Cartesian
// displacement of each atom relative to its position at frame 0.
// Shape: [atoms][frames][3]. Built once by Build; read-only afterward.
type Displacements struct {
	// Disp[a][f] is the displacement of atom a at frame f.
	Disp [][][3]float64
	// Mobile holds the indices of the mobile-species atoms.
	Mobile []int
	// Framework holds the indices of all remaining atoms.
	Framework []int
}

// NAtoms returns the number of atoms covered by the array.
func (d *Displacements) NAtoms() int { return len(d.Disp) }

// NSteps returns the number of frames covered by the array.
func (d *Displacements) NSteps() int {
	if len(d.Disp) == 0 {
		return 0
	}
	return len(d.Disp[0])
}
