package xdatcar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinisigo/xdatcar"
)

const nvtSample = `unknown system
           1
    10.000000    0.000000    0.000000
     0.000000   10.000000    0.000000
     0.000000    0.000000   10.000000
   Li   O
     1     2
Direct configuration=     1
   0.00000000  0.00000000  0.00000000
   0.25000000  0.25000000  0.25000000
   0.75000000  0.75000000  0.75000000
Direct configuration=     2
   0.10000000  0.00000000  0.00000000
   0.25000000  0.25000000  0.25000000
   0.75000000  0.75000000  0.75000000
`

// nptSample repeats the full header before every configuration and changes
// the cell between frames.
const nptSample = `run
1.0
10.0 0.0 0.0
0.0 10.0 0.0
0.0 0.0 10.0
Li
1
Direct configuration=     1
0.0 0.0 0.0
run
1.0
12.0 0.0 0.0
0.0 12.0 0.0
0.0 0.0 12.0
Li
1
Direct configuration=     2
0.1 0.0 0.0
`

// TestRead_NVT verifies the constant-lattice layout: one header, two frames,
// expanded species labels, scaled lattice.
func TestRead_NVT(t *testing.T) {
	traj, err := xdatcar.Read(strings.NewReader(nvtSample), 2, 50)
	require.NoError(t, err)

	assert.Equal(t, 2, traj.NSteps())
	assert.Equal(t, []string{"Li", "O", "O"}, traj.Species)
	assert.Equal(t, 100.0, traj.FrameTime())
	assert.Equal(t, 10.0, traj.Frames[0].Cell[0][0])
	assert.True(t, traj.Frames[0].Cell.Equal(traj.Frames[1].Cell))
	assert.InDelta(t, 0.10, traj.Frames[1].Coords[0][0], 1e-12)
}

// TestRead_NPT verifies the repeated-header layout with a varying cell.
func TestRead_NPT(t *testing.T) {
	traj, err := xdatcar.Read(strings.NewReader(nptSample), 1, 1)
	require.NoError(t, err)

	require.Equal(t, 2, traj.NSteps())
	assert.Equal(t, 10.0, traj.Frames[0].Cell[0][0])
	assert.Equal(t, 12.0, traj.Frames[1].Cell[0][0])
	assert.False(t, traj.Frames[0].Cell.Equal(traj.Frames[1].Cell))
}

// TestRead_ScaleFactor verifies the scale factor multiplies the lattice.
func TestRead_ScaleFactor(t *testing.T) {
	scaled := strings.Replace(nvtSample, "           1\n", "           2\n", 1)
	traj, err := xdatcar.Read(strings.NewReader(scaled), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, traj.Frames[0].Cell[0][0])
}

// TestRead_Errors verifies the malformed-input sentinels.
func TestRead_Errors(t *testing.T) {
	_, err := xdatcar.Read(strings.NewReader(""), 1, 1)
	assert.ErrorIs(t, err, xdatcar.ErrBadHeader, "empty stream")

	_, err = xdatcar.Read(strings.NewReader("title\nnot-a-number\n"), 1, 1)
	assert.ErrorIs(t, err, xdatcar.ErrBadHeader, "bad scale factor")

	// Header only, no configurations.
	headerOnly := strings.SplitAfter(nvtSample, "     1     2\n")[0]
	_, err = xdatcar.Read(strings.NewReader(headerOnly), 1, 1)
	assert.ErrorIs(t, err, xdatcar.ErrNoFrames)

	// Truncated coordinate block.
	truncated := nvtSample[:strings.Index(nvtSample, "   0.75000000  0.75000000  0.75000000")]
	_, err = xdatcar.Read(strings.NewReader(truncated), 1, 1)
	assert.ErrorIs(t, err, xdatcar.ErrBadFrame)

	// Species/count arity mismatch.
	mismatch := strings.Replace(nvtSample, "     1     2\n", "     1\n", 1)
	_, err = xdatcar.Read(strings.NewReader(mismatch), 1, 1)
	assert.ErrorIs(t, err, xdatcar.ErrBadHeader)
}
