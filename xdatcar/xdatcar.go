// Package xdatcar reads VASP XDATCAR trajectory files into the trajectory
// types consumed by the estimation pipeline.
//
// Supported layout:
//
//	Title
//	1.0                     ← scale factor applied to the lattice
//	a1x a1y a1z
//	a2x a2y a2z
//	a3x a3y a3z
//	Li O                    ← species names
//	8 16                    ← per-species atom counts
//	Direct configuration=     1
//	  fx fy fz              ← one fractional coordinate per atom
//	  ...
//	Direct configuration=     2
//	  ...
//
// NPT-style writers repeat the full header (title through counts) before
// every configuration; both layouts are handled. Coordinates are fractional
// (“Direct”); Cartesian XDATCAR output is not supported.
//
// This is facade glue: the core pipeline consumes trajectory.Trajectory and
// never touches file formats.
package xdatcar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/kinisigo/trajectory"
)

// Sentinel errors for XDATCAR parsing.
var (
	// ErrBadHeader indicates a malformed title/scale/lattice/species header.
	ErrBadHeader = errors.New("xdatcar: malformed header")
	// ErrBadFrame indicates a malformed or truncated configuration block.
	ErrBadFrame = errors.New("xdatcar: malformed configuration block")
	// ErrNoFrames indicates the file holds no configuration blocks.
	ErrNoFrames = errors.New("xdatcar: no configurations found")
)

// header is the parsed fixed-size preamble of an XDATCAR block.
type header struct {
	cell    trajectory.Lattice
	species []string // expanded per-atom labels
}

// Read parses an XDATCAR stream into a Trajectory with the given time base.
//
// Contracts:
//   - timeStep and stepSkip describe the real time between stored frames
//     (timeStep·stepSkip) and are copied verbatim onto the result.
//   - Returns ErrBadHeader/ErrBadFrame on malformed input, ErrNoFrames when
//     the stream holds a header but no configurations.
//
// Complexity: O(atoms·frames) time and space.
func Read(r io.Reader, timeStep, stepSkip float64) (*trajectory.Trajectory, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	hdr, err := readHeader(sc)
	if err != nil {
		return nil, err
	}

	t := &trajectory.Trajectory{
		Species:  hdr.species,
		TimeStep: timeStep,
		StepSkip: stepSkip,
	}

	// Configuration loop. A "Direct configuration=" line opens a coordinate
	// block; anything else restarts the header (NPT layout).
	for {
		line, ok := nextLine(sc)
		if !ok {
			break
		}
		if !strings.HasPrefix(strings.TrimSpace(line), "Direct") {
			// NPT layout: the writer repeated the header. The title line was
			// just consumed, so parse the remaining header lines.
			hdr, err = readHeaderAfterTitle(sc)
			if err != nil {
				return nil, err
			}
			if line, ok = nextLine(sc); !ok || !strings.HasPrefix(strings.TrimSpace(line), "Direct") {
				return nil, ErrBadFrame
			}
		}

		coords := make([][3]float64, len(hdr.species))
		for a := range coords {
			cl, ok := nextLine(sc)
			if !ok {
				return nil, ErrBadFrame
			}
			fields := strings.Fields(cl)
			if len(fields) < 3 {
				return nil, ErrBadFrame
			}
			for k := 0; k < 3; k++ {
				v, perr := strconv.ParseFloat(fields[k], 64)
				if perr != nil {
					return nil, fmt.Errorf("%w: %v", ErrBadFrame, perr)
				}
				coords[a][k] = v
			}
		}
		t.Frames = append(t.Frames, trajectory.Frame{Coords: coords, Cell: hdr.cell})
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	if len(t.Frames) == 0 {
		return nil, ErrNoFrames
	}
	return t, nil
}

// ReadFile opens path and delegates to Read.
func ReadFile(path string, timeStep, stepSkip float64) (*trajectory.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, timeStep, stepSkip)
}

// readHeader parses a full header starting at the title line.
func readHeader(sc *bufio.Scanner) (header, error) {
	if _, ok := nextLine(sc); !ok { // title, ignored
		return header{}, ErrBadHeader
	}
	return readHeaderAfterTitle(sc)
}

// readHeaderAfterTitle parses scale, lattice, species names, and counts.
// The scale factor multiplies every lattice vector, per the POSCAR/XDATCAR
// convention.
func readHeaderAfterTitle(sc *bufio.Scanner) (header, error) {
	line, ok := nextLine(sc)
	if !ok {
		return header{}, ErrBadHeader
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil || scale <= 0 {
		return header{}, ErrBadHeader
	}

	var h header
	for i := 0; i < 3; i++ {
		if line, ok = nextLine(sc); !ok {
			return header{}, ErrBadHeader
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return header{}, ErrBadHeader
		}
		for k := 0; k < 3; k++ {
			v, perr := strconv.ParseFloat(fields[k], 64)
			if perr != nil {
				return header{}, ErrBadHeader
			}
			h.cell[i][k] = v * scale
		}
	}

	line, ok = nextLine(sc)
	if !ok {
		return header{}, ErrBadHeader
	}
	names := strings.Fields(line)
	if len(names) == 0 {
		return header{}, ErrBadHeader
	}

	line, ok = nextLine(sc)
	if !ok {
		return header{}, ErrBadHeader
	}
	counts := strings.Fields(line)
	if len(counts) != len(names) {
		return header{}, ErrBadHeader
	}
	for i, c := range counts {
		n, perr := strconv.Atoi(c)
		if perr != nil || n <= 0 {
			return header{}, ErrBadHeader
		}
		for j := 0; j < n; j++ {
			h.species = append(h.species, names[i])
		}
	}
	return h, nil
}

// nextLine advances the scanner past blank lines and returns the next
// non-empty line.
func nextLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			return sc.Text(), true
		}
	}
	return "", false
}
