package display

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/geom"
	"github.com/decibelcooper/sctview/mctree"
)

var testBounds = geom.Bounds{
	X: geom.Range{Min: -10, Max: 10},
	Y: geom.Range{Min: -10, Max: 10},
	Z: geom.Range{Min: -100, Max: 400},
}

// testEvent has one vertex at the origin, one Long and one VELO track, and
// a K0_S decaying to two pions at z = 50.
func testEvent() *event.Event {
	return &event.Event{
		Index:    6,
		Vertices: []event.Vertex{{X: 0, Y: 0, Z: 0}},
		Long:     []event.Track{{PX: 0, PY: 1, PZ: 10}},
		Velo:     []event.Track{{Z: 5, PX: -1, PY: 0, PZ: -10}},
		MC: []event.MCParticle{
			{Track: event.Track{PZ: 1000}, M: 497.6, PID: 310, Mother: -1},
			{Track: event.Track{Z: 50, PX: 100, PZ: 500}, M: 139.6, PID: 211, Mother: 0, Flag: mctree.FinalState},
			{Track: event.Track{Z: 50, PX: -100, PZ: 500}, M: 139.6, PID: -211, Mother: 0, Flag: mctree.FinalState},
			{Track: event.Track{PY: 50, PZ: 100}, M: 0, PID: 22, Mother: -1},
		},
		NMCVertices: 1,
	}
}

func all() Categories {
	cs, _ := ParseCategories("all")
	return cs
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestBuildScene(t *testing.T) {
	s, err := BuildScene(testEvent(), testBounds, Options{Show: all(), NEvents: 10})
	require.NoError(t, err)

	assert.EqualValues(t, 6, s.Index)
	assert.Equal(t, "Event 7 / 10    n_vtx = 1    n_VELO = 1    n_Long = 1", s.Title)
	require.Len(t, s.Panels, 3)

	xy := s.Panel(geom.XY)
	require.NotNil(t, xy)
	assert.Equal(t, testBounds.X, xy.H)
	assert.Equal(t, testBounds.Y, xy.V)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}}, xy.Vertices)

	// Long track leaves through +y at z = 100.
	zy := s.Panel(geom.ZY)
	want := []geom.Segment2{{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 100, Y: 10}}}
	if diff := cmp.Diff(want, zy.Segments[Long], approx); diff != "" {
		t.Fatalf("long segments (-want +got):\n%s", diff)
	}

	// VELO track runs backwards and leaves through -x at z = -95.
	zx := s.Panel(geom.ZX)
	want = []geom.Segment2{{From: geom.Point{X: 5, Y: 0}, To: geom.Point{X: -95, Y: -10}}}
	if diff := cmp.Diff(want, zx.Segments[Velo], approx); diff != "" {
		t.Fatalf("velo segments (-want +got):\n%s", diff)
	}
}

func TestBuildSceneProjected(t *testing.T) {
	s, err := BuildScene(testEvent(), testBounds, Options{Show: Categories(Long)})
	require.NoError(t, err)
	want := []geom.Segment2{{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 100, Y: 0}}}
	if diff := cmp.Diff(want, s.Panel(geom.ZX).Segments[Long], approx); diff != "" {
		t.Fatalf("3D clipped (-want +got):\n%s", diff)
	}

	// Without the y face the zx projection runs to the end of the z range.
	s, err = BuildScene(testEvent(), testBounds, Options{Show: Categories(Long), Projected: true})
	require.NoError(t, err)
	want = []geom.Segment2{{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 400, Y: 0}}}
	if diff := cmp.Diff(want, s.Panel(geom.ZX).Segments[Long], approx); diff != "" {
		t.Fatalf("projected (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.Panel(geom.ZX).Segments[Velo])
}

func TestBuildSceneMCTruncation(t *testing.T) {
	s, err := BuildScene(testEvent(), testBounds, Options{Show: Categories(MC)})
	require.NoError(t, err)

	zx := s.Panel(geom.ZX)
	want := []geom.Segment2{
		// K0_S ends at its decay vertex.
		{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 50, Y: 0}},
		// Pions have no daughters and leave through +-x at z = 100.
		{From: geom.Point{X: 50, Y: 0}, To: geom.Point{X: 100, Y: 10}},
		{From: geom.Point{X: 50, Y: 0}, To: geom.Point{X: 100, Y: -10}},
		// The photon leaves through +y at z = 20.
		{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 20, Y: 0}},
	}
	if diff := cmp.Diff(want, zx.Segments[MC], approx); diff != "" {
		t.Fatalf("mc segments (-want +got):\n%s", diff)
	}

	assert.Empty(t, zx.Vertices)
	assert.NotContains(t, zx.Segments, Long)
	assert.NotContains(t, zx.Segments, Velo)
}

func TestBuildSceneMCFilter(t *testing.T) {
	s, err := BuildScene(testEvent(), testBounds, Options{Show: Categories(MC), MC: FinalStateMC})
	require.NoError(t, err)
	assert.Len(t, s.Panel(geom.XY).Segments[MC], 2)

	// K0_S, both pions and the photon are long-lived.
	s, err = BuildScene(testEvent(), testBounds, Options{Show: Categories(MC), MC: LongLivedMC})
	require.NoError(t, err)
	assert.Len(t, s.Panel(geom.XY).Segments[MC], 4)

	ev := testEvent()
	ev.MC[0].PID = 511
	s, err = BuildScene(ev, testBounds, Options{Show: Categories(MC), MC: LongLivedMC})
	require.NoError(t, err)
	assert.Len(t, s.Panel(geom.XY).Segments[MC], 3)
}

func TestBuildSceneInvalidMC(t *testing.T) {
	ev := testEvent()
	ev.MC[0].Mother = 1
	ev.MC[1].Mother = 0
	_, err := BuildScene(ev, testBounds, Options{Show: all()})
	assert.ErrorIs(t, err, mctree.ErrCycle)

	// MC is not validated when it is not drawn.
	_, err = BuildScene(ev, testBounds, Options{Show: Categories(Long)})
	assert.NoError(t, err)
}

func TestBuildSceneSkipsZeroMomentum(t *testing.T) {
	ev := testEvent()
	ev.Long = append(ev.Long, event.Track{X: 1})
	s, err := BuildScene(ev, testBounds, Options{Show: Categories(Long)})
	require.NoError(t, err)
	assert.Len(t, s.Panel(geom.XY).Segments[Long], 1)
}

func TestParseCategories(t *testing.T) {
	cs, err := ParseCategories("vtx, trk")
	require.NoError(t, err)
	assert.True(t, cs.Has(Vertices))
	assert.True(t, cs.Has(Long))
	assert.False(t, cs.Has(Velo))
	assert.False(t, cs.Has(MC))
	assert.Equal(t, "vtx,trk", cs.String())

	cs, err = ParseCategories("long,velo", "mc")
	require.NoError(t, err)
	assert.Equal(t, "trk,vtrk,mc", cs.String())
	assert.Equal(t, "trk,mc", cs.Without(Velo).String())

	cs, err = ParseCategories("")
	require.NoError(t, err)
	assert.Zero(t, cs)

	assert.Equal(t, "vtx,trk,vtrk,mc", all().String())

	_, err = ParseCategories("vtx,tracks")
	assert.Error(t, err)
}

func TestParseMCFilter(t *testing.T) {
	for in, want := range map[string]MCFilter{
		"":          AllMC,
		"all":       AllMC,
		"final":     FinalStateMC,
		"LongLived": LongLivedMC,
	} {
		got, err := ParseMCFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMCFilter("prompt")
	assert.Error(t, err)
}
