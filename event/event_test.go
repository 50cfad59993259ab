package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/sctview/geom"
	"github.com/decibelcooper/sctview/mctree"
)

func TestRecord(t *testing.T) {
	evt := makeEvents(1)[0]
	r := evt.Record()

	require.NoError(t, mctree.Validate(r))
	assert.Equal(t, []int{511, 211, -321}, r.PID)
	assert.Equal(t, []int{-1, 0, 0}, r.Mother)
	assert.Equal(t, []float64{1000, 500, 400}, r.PZ)
	assert.Equal(t, 1, r.NPrimaryVertices)

	tree, err := mctree.Build(r)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.N)
}

func TestDaughterVertices(t *testing.T) {
	evt := makeEvents(1)[0]
	evt.MC = append(evt.MC, MCParticle{Mother: 42})

	dv := evt.DaughterVertices()
	require.Len(t, dv, 4)
	assert.Equal(t, []geom.Vec3{{Z: 10}, {Z: 12}}, dv[0])
	assert.Empty(t, dv[1])
	assert.Empty(t, dv[3])
}

func TestPoints(t *testing.T) {
	evt := makeEvents(3)[2]
	assert.Equal(t, []geom.Vec3{{X: 2}, {X: 2, Y: 1, Z: -5}, {Y: -1, Z: 20}}, evt.Points())
	assert.Len(t, evt.MCPoints(), 3)
	assert.True(t, evt.HasMC())
	assert.False(t, (&Event{}).HasMC())
}

func TestMemSource(t *testing.T) {
	src := NewMemSource(makeEvents(5))
	assert.EqualValues(t, 5, src.Len())

	evts, err := src.Read(1, 3)
	require.NoError(t, err)
	require.Len(t, evts, 2)
	assert.EqualValues(t, 1, evts[0].Index)
	assert.EqualValues(t, 2, evts[1].Index)

	evts, err = src.Read(5, 5)
	require.NoError(t, err)
	assert.Empty(t, evts)

	_, err = src.Read(3, 6)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = src.Read(-1, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = src.Read(3, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.NoError(t, src.Close())
}

func TestOpenUnknownExtension(t *testing.T) {
	_, err := Open("events.txt")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestOpenROOTNotROOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.root")
	require.NoError(t, os.WriteFile(path, []byte("not a ROOT file"), 0o644))
	_, err := Open(path)
	assert.Error(t, err)
}
