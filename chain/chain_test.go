package chain

import (
	"testing"

	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChart(measures int) *model.Chart {
	c := &model.Chart{Header: model.Header{BPM: 120}}
	c.Extend(measures - 1)
	return c
}

func put(c *model.Chart, measure, tick int, evts ...model.NoteEvent) {
	slot := &c.Measures[measure].Ticks[tick]
	*slot = append(*slot, evts...)
}

func pos(measure, tick uint32) timing.Position {
	return timing.Position{Measure: measure, Tick: tick}
}

func edge(left, right int32) *model.Edge {
	return &model.Edge{Left: left, Right: right}
}

func TestResolvesSlideInSameMeasure(t *testing.T) {
	c := newChart(1)
	put(c, 0, 10, model.HoldStart{ID: 1, Lane: 0, Width: 1})
	put(c, 0, 50, model.SlideEnd{ID: 1, Lane: 4, Width: 2})

	path := Resolve(c, Start{Pos: pos(0, 10), ID: 1, Family: Slide, Edge: model.NewEdge(0, 1)})

	assert := assert.New(t)
	assert.True(path.Terminated)
	assert.Equal(timing.MeasureTickToMs(0, 50, 120), path.EndMs)
	assert.Equal([]Point{{
		Pos:    pos(0, 50),
		TimeMs: 520,
		Edge:   model.Edge{Left: 16384, Right: 24576},
	}}, path.Points)
}

func TestResolvesAcrossMeasureBoundary(t *testing.T) {
	c := newChart(4)
	put(c, 2, 190, model.HoldStart{ID: 5, Lane: 1, Width: 1})
	put(c, 2, 191, model.SlideWaypoint{ID: 5, Lane: 2, Width: 1})
	put(c, 3, 5, model.SlideEnd{ID: 5, Lane: 3, Width: 1})

	path := Resolve(c, Start{Pos: pos(2, 190), ID: 5, Family: Slide})

	require.Len(t, path.Points, 2)
	assert.Equal(t, pos(2, 191), path.Points[0].Pos)
	assert.Equal(t, pos(3, 5), path.Points[1].Pos)
	assert.True(t, path.Terminated)
	assert.Equal(t, timing.MeasureTickToMs(3, 5, 120), path.EndMs)
}

func TestUnterminatedChainEndsAtStart(t *testing.T) {
	c := newChart(3)
	put(c, 1, 0, model.HoldStart{ID: 7})
	put(c, 1, 20, model.SlideWaypoint{ID: 7, Lane: 1, Width: 1})

	path := Resolve(c, Start{Pos: pos(1, 0), ID: 7, Family: Slide})
	assert.False(t, path.Terminated)
	assert.Equal(t, uint32(2000), path.EndMs)
	assert.Len(t, path.Points, 1)

	empty := Resolve(c, Start{Pos: pos(2, 0), ID: 9, Family: Slide})
	assert.False(t, empty.Terminated)
	assert.Equal(t, uint32(4000), empty.EndMs)
	assert.Empty(t, empty.Points)
}

func TestFirstTerminatorWins(t *testing.T) {
	c := newChart(2)
	put(c, 0, 0, model.HoldStart{ID: 1})
	put(c, 0, 20, model.SlideEnd{ID: 1, Lane: 1})
	put(c, 1, 0, model.SlideEnd{ID: 1, Lane: 2})

	path := Resolve(c, Start{Pos: pos(0, 0), ID: 1, Family: Slide})
	require.Len(t, path.Points, 1)
	assert.Equal(t, pos(0, 20), path.Points[0].Pos)
}

func TestStartTickIsScannedInclusively(t *testing.T) {
	c := newChart(1)
	put(c, 0, 96, model.SlideEnd{ID: 2, Lane: 0, Width: 1}, model.HoldStart{ID: 2})

	path := Resolve(c, Start{Pos: pos(0, 96), ID: 2, Family: Slide})
	assert.True(t, path.Terminated)
	assert.Equal(t, uint32(1000), path.EndMs)
	assert.Len(t, path.Points, 1)
}

func TestFamiliesDoNotCrossResolve(t *testing.T) {
	c := newChart(1)
	put(c, 0, 0, model.HoldStart{ID: 1})
	put(c, 0, 10, model.SlideWaypoint{ID: 1, Lane: 1, Width: 1})
	put(c, 0, 20, model.SimpleSkidWaypoint{ID: 1, Lane: 2, Width: 1})
	put(c, 0, 30, model.SlideEnd{ID: 1, Lane: 3, Width: 1})

	slide := Resolve(c, Start{Pos: pos(0, 0), ID: 1, Family: Slide})
	require.Len(t, slide.Points, 2)
	assert.Equal(t, pos(0, 10), slide.Points[0].Pos)
	assert.Equal(t, pos(0, 30), slide.Points[1].Pos)
	assert.True(t, slide.Terminated)

	skid := Resolve(c, Start{Pos: pos(0, 0), ID: 1, Family: SimpleSkid})
	require.Len(t, skid.Points, 1)
	assert.Equal(t, pos(0, 20), skid.Points[0].Pos)
	assert.False(t, skid.Terminated)

	complexSkid := Resolve(c, Start{Pos: pos(0, 0), ID: 1, Family: ComplexSkid})
	assert.Empty(t, complexSkid.Points)

	unresolved := Resolve(c, Start{Pos: pos(0, 0), ID: 1, Family: Unresolved})
	assert.Empty(t, unresolved.Points)
}

func TestIdsDoNotMatchOtherIds(t *testing.T) {
	c := newChart(1)
	put(c, 0, 0, model.HoldStart{ID: 1})
	put(c, 0, 10, model.SlideEnd{ID: 2})

	path := Resolve(c, Start{Pos: pos(0, 0), ID: 1, Family: Slide})
	assert.Empty(t, path.Points)
	assert.False(t, path.Terminated)
}

func TestDetectFamily(t *testing.T) {
	c := newChart(2)
	put(c, 0, 10, model.SlideWaypoint{ID: 1})
	put(c, 0, 20, model.SimpleSkidWaypoint{ID: 1})
	put(c, 1, 0, model.ComplexSkidEnd{ID: 4})

	f, ok := DetectFamily(c, pos(0, 0), 1)
	assert.True(t, ok)
	assert.Equal(t, Slide, f)

	f, ok = DetectFamily(c, pos(0, 15), 1)
	assert.True(t, ok)
	assert.Equal(t, SimpleSkid, f)

	f, ok = DetectFamily(c, pos(0, 0), 4)
	assert.True(t, ok)
	assert.Equal(t, ComplexSkid, f)

	f, ok = DetectFamily(c, pos(0, 0), 8)
	assert.False(t, ok)
	assert.Equal(t, Unresolved, f)
}

func TestSkidEdgeLeansTowardNewSide(t *testing.T) {
	assert.Equal(t, model.Edge{Left: 10240, Right: 12288},
		SkidEdge(model.Edge{Left: 0, Right: 4096}, model.Edge{Left: 8192, Right: 12288}))
	assert.Equal(t, model.Edge{Left: 0, Right: 4096},
		SkidEdge(model.Edge{Left: 8192, Right: 16384}, model.Edge{Left: 0, Right: 8192}))
	// an equal right edge doesn't count as extending right
	assert.Equal(t, model.Edge{Left: 4096, Right: 6144},
		SkidEdge(model.Edge{Left: 0, Right: 8192}, model.Edge{Left: 4096, Right: 8192}))
}

func TestSimpleSkidContinuesFromLastEdge(t *testing.T) {
	c := newChart(1)
	put(c, 0, 0, model.HoldStart{ID: 3, Lane: 0, Width: 1})
	put(c, 0, 48, model.SimpleSkidWaypoint{ID: 3, Lane: 2, Width: 1})
	put(c, 0, 96, model.SimpleSkidEnd{ID: 3, Lane: 0, Width: 2})

	path := Resolve(c, Start{Pos: pos(0, 0), ID: 3, Family: SimpleSkid, Edge: model.NewEdge(0, 1)})

	assert.Equal(t, []Point{
		{Pos: pos(0, 48), TimeMs: 500, Edge: model.Edge{Left: 0, Right: 4096}, End: edge(10240, 12288)},
		{Pos: pos(0, 96), TimeMs: 1000, Edge: model.Edge{Left: 10240, Right: 12288}, End: edge(0, 4096)},
	}, path.Points)
}

func TestComplexSkidCarriesBothEdges(t *testing.T) {
	c := newChart(1)
	put(c, 0, 0, model.HoldStart{ID: 3, Lane: 0, Width: 1})
	put(c, 0, 48, model.ComplexSkidWaypoint{ID: 3, LaneStart: 0, WidthStart: 2, LaneEnd: 4, WidthEnd: 2})
	put(c, 0, 96, model.ComplexSkidEnd{ID: 3, LaneStart: 4, WidthStart: 2, LaneEnd: 8, WidthEnd: 8})

	path := Resolve(c, Start{Pos: pos(0, 0), ID: 3, Family: ComplexSkid, Edge: model.NewEdge(0, 1)})

	assert.Equal(t, []Point{
		{Pos: pos(0, 48), TimeMs: 500, Edge: model.Edge{Left: 0, Right: 8192}, End: edge(16384, 24576)},
		{Pos: pos(0, 96), TimeMs: 1000, Edge: model.Edge{Left: 16384, Right: 24576}, End: edge(32768, 65536)},
	}, path.Points)
	assert.Equal(t, uint32(1000), path.EndMs)
}

func TestResolveAllKeepsGridOrderAndReusesIds(t *testing.T) {
	c := newChart(2)
	put(c, 0, 0, model.HoldStart{Side: model.Left, ID: 1, Lane: 0, Width: 1})
	put(c, 0, 10, model.SlideEnd{ID: 1, Lane: 1, Width: 1})
	put(c, 0, 20, model.HoldStart{Side: model.Right, ID: 1, Lane: 2, Width: 1})
	put(c, 1, 0, model.SimpleSkidEnd{ID: 1, Lane: 3, Width: 1})
	put(c, 1, 5, model.HoldStart{Side: model.Right, ID: 9})

	chains := ResolveAll(c)
	require.Len(t, chains, 3)

	assert.Equal(t, Slide, chains[0].Start.Family)
	assert.Equal(t, pos(0, 0), chains[0].Start.Pos)
	assert.Equal(t, uint32(104), chains[0].Path.EndMs)

	assert.Equal(t, model.Right, chains[1].Hold.Side)
	assert.Equal(t, SimpleSkid, chains[1].Start.Family)
	assert.Equal(t, uint32(2000), chains[1].Path.EndMs)

	assert.Equal(t, Unresolved, chains[2].Start.Family)
	assert.False(t, chains[2].Path.Terminated)
	assert.Equal(t, chains[2].Path.EndMs, timing.MeasureTickToMs(1, 5, 120))
}

func TestConcurrentChainsShareIdAcrossFamilies(t *testing.T) {
	c := newChart(1)
	put(c, 0, 0, model.HoldStart{Side: model.Left, ID: 1, Lane: 1, Width: 1}, model.HoldStart{Side: model.Right, ID: 1, Lane: 8, Width: 2})
	put(c, 0, 48, model.SlideWaypoint{ID: 1, Lane: 2, Width: 1}, model.SimpleSkidWaypoint{ID: 1, Lane: 10, Width: 2})
	put(c, 0, 96, model.SlideEnd{ID: 1, Lane: 3, Width: 1}, model.SimpleSkidEnd{ID: 1, Lane: 12, Width: 2})

	chains := ResolveAll(c)
	require.Len(t, chains, 2)

	assert.Equal(t, Slide, chains[0].Start.Family)
	assert.Equal(t, SimpleSkid, chains[1].Start.Family)
	for _, ch := range chains {
		assert.True(t, ch.Path.Terminated)
		assert.Len(t, ch.Path.Points, 2)
	}
}

func TestClosedChainReleasesItsFamily(t *testing.T) {
	c := newChart(1)
	put(c, 0, 0, model.HoldStart{ID: 1})
	put(c, 0, 10, model.SlideEnd{ID: 1})
	put(c, 0, 20, model.HoldStart{ID: 1})
	put(c, 0, 30, model.SlideEnd{ID: 1})

	_, starts := Starts(c)
	require.Len(t, starts, 2)
	assert.Equal(t, Slide, starts[0].Family)
	assert.Equal(t, Slide, starts[1].Family)
}
