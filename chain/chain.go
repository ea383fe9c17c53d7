package chain

import (
	"runtime"

	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/timing"
	"github.com/remeh/sizedwaitgroup"
)

type Family uint8

const (
	// Unresolved is a hold with no waypoint or end carrying its id.
	Unresolved Family = iota
	Slide
	SimpleSkid
	ComplexSkid
)

func (f Family) String() string {
	switch f {
	case Slide:
		return "Slide"
	case SimpleSkid:
		return "SimpleSkid"
	case ComplexSkid:
		return "ComplexSkid"
	}
	return "Unresolved"
}

type Start struct {
	Pos    timing.Position
	ID     uint8
	Family Family
	Edge   model.Edge
}

type Point struct {
	Pos    timing.Position
	TimeMs uint32
	Edge   model.Edge
	End    *model.Edge
}

type Path struct {
	Points []Point

	// EndMs equals the start time when no end marker was found.
	EndMs      uint32
	Terminated bool
}

// Chain is a resolved hold start.
type Chain struct {
	Hold  model.HoldStart
	Start Start
	Path  Path
}

// member reports the chain family and id of waypoint and end events.
func member(evt model.NoteEvent) (f Family, id uint8, end bool, ok bool) {
	switch n := evt.(type) {
	case model.SlideWaypoint:
		return Slide, n.ID, false, true
	case model.SlideEnd:
		return Slide, n.ID, true, true
	case model.SimpleSkidWaypoint:
		return SimpleSkid, n.ID, false, true
	case model.SimpleSkidEnd:
		return SimpleSkid, n.ID, true, true
	case model.ComplexSkidWaypoint:
		return ComplexSkid, n.ID, false, true
	case model.ComplexSkidEnd:
		return ComplexSkid, n.ID, true, true
	}
	return Unresolved, 0, false, false
}

// SkidEdge infers the far edge of a simple skid point, which only carries one
// lane/width pair. The ribbon leans toward the side the new pair extends.
func SkidEdge(prev, next model.Edge) model.Edge {
	mid := (next.Left + next.Right) / 2
	if next.Right > prev.Right {
		return model.Edge{Left: mid, Right: next.Right}
	}
	return model.Edge{Left: next.Left, Right: mid}
}

// place sets the point's edges and returns the edge the next point continues from.
func place(evt model.NoteEvent, p *Point, last model.Edge) model.Edge {
	switch n := evt.(type) {
	case model.SlideWaypoint:
		p.Edge = model.NewEdge(n.Lane, n.Width)
	case model.SlideEnd:
		p.Edge = model.NewEdge(n.Lane, n.Width)
	case model.ComplexSkidWaypoint:
		p.Edge = model.NewEdge(n.LaneStart, n.WidthStart)
		end := model.NewEdge(n.LaneEnd, n.WidthEnd)
		p.End = &end
	case model.ComplexSkidEnd:
		p.Edge = model.NewEdge(n.LaneStart, n.WidthStart)
		end := model.NewEdge(n.LaneEnd, n.WidthEnd)
		p.End = &end
	case model.SimpleSkidWaypoint:
		p.Edge = last
		end := SkidEdge(last, model.NewEdge(n.Lane, n.Width))
		p.End = &end
	case model.SimpleSkidEnd:
		p.Edge = last
		end := SkidEdge(last, model.NewEdge(n.Lane, n.Width))
		p.End = &end
	}

	if p.End != nil {
		return *p.End
	}
	return p.Edge
}

// walk visits events from pos onward: the rest of pos's measure starting at
// its tick, then every later measure from tick 0. It stops when fn returns false.
func walk(c *model.Chart, from timing.Position, fn func(timing.Position, model.NoteEvent) bool) {
	tick := from.Tick
	for m := int(from.Measure); m < len(c.Measures); m++ {
		ticks := &c.Measures[m].Ticks
		for ; int(tick) < len(ticks); tick++ {
			for _, evt := range ticks[tick] {
				if !fn(timing.Position{Measure: uint32(m), Tick: tick}, evt) {
					return
				}
			}
		}
		tick = 0
	}
}

// DetectFamily finds the family of the chain opened at pos with the given id.
// Hold starts don't encode one, so the first waypoint or end sharing the id
// decides it.
func DetectFamily(c *model.Chart, pos timing.Position, id uint8) (Family, bool) {
	return detect(c, pos, id, nil)
}

// detect is DetectFamily ignoring events of families for which taken is true.
func detect(c *model.Chart, pos timing.Position, id uint8, taken func(Family) bool) (Family, bool) {
	found := Unresolved
	walk(c, pos, func(_ timing.Position, evt model.NoteEvent) bool {
		f, evtID, _, ok := member(evt)
		if !ok || evtID != id || (taken != nil && taken(f)) {
			return true
		}
		found = f
		return false
	})
	return found, found != Unresolved
}

// terminator finds the position of the end marker closing s, if any.
func terminator(c *model.Chart, s Start) (timing.Position, bool) {
	var at timing.Position
	found := false
	walk(c, s.Pos, func(pos timing.Position, evt model.NoteEvent) bool {
		f, id, end, ok := member(evt)
		if ok && end && f == s.Family && id == s.ID {
			at, found = pos, true
			return false
		}
		return true
	})
	return at, found
}

// Resolve collects the waypoints of the chain opened by s up to and including
// the first matching end. Only events of s's family with s's id match.
func Resolve(c *model.Chart, s Start) Path {
	clock := timing.Clock{BPM: c.Header.BPM}
	path := Path{EndMs: clock.Ms(s.Pos)}
	last := s.Edge

	walk(c, s.Pos, func(pos timing.Position, evt model.NoteEvent) bool {
		f, id, end, ok := member(evt)
		if !ok || f != s.Family || id != s.ID {
			return true
		}

		p := Point{Pos: pos, TimeMs: clock.Ms(pos)}
		last = place(evt, &p, last)
		path.Points = append(path.Points, p)
		if end {
			path.EndMs = p.TimeMs
			path.Terminated = true
			return false
		}
		return true
	})

	return path
}

// claim is a resolved family held by an earlier start until its end marker.
type claim struct {
	start Start
	end   timing.Position
	open  bool
}

// Starts lists every hold start of the chart in grid order. A start skips the
// families of same-id chains that are still open at its position, so chains of
// different families can share an id at the same time.
func Starts(c *model.Chart) ([]model.HoldStart, []Start) {
	var holds []model.HoldStart
	var starts []Start
	var claims []claim
	for m := range c.Measures {
		for tick, slot := range c.Measures[m].Ticks {
			for _, evt := range slot {
				hold, ok := evt.(model.HoldStart)
				if !ok {
					continue
				}
				pos := timing.Position{Measure: uint32(m), Tick: uint32(tick)}
				taken := func(f Family) bool {
					for _, cl := range claims {
						if cl.start.ID == hold.ID && cl.start.Family == f && (cl.open || !cl.end.Less(pos)) {
							return true
						}
					}
					return false
				}
				family, _ := detect(c, pos, hold.ID, taken)
				s := Start{
					Pos:    pos,
					ID:     hold.ID,
					Family: family,
					Edge:   model.NewEdge(hold.Lane, hold.Width),
				}
				if family != Unresolved {
					end, ok := terminator(c, s)
					claims = append(claims, claim{start: s, end: end, open: !ok})
				}
				holds = append(holds, hold)
				starts = append(starts, s)
			}
		}
	}
	return holds, starts
}

// ResolveAll resolves every hold start of the chart, in grid order. Chains
// only read the grid so they are resolved concurrently.
func ResolveAll(c *model.Chart) []Chain {
	holds, starts := Starts(c)
	res := make([]Chain, len(starts))

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for i := range starts {
		wg.Add()
		go func(i int) {
			defer wg.Done()
			res[i] = Chain{Hold: holds[i], Start: starts[i], Path: Resolve(c, starts[i])}
		}(i)
	}
	wg.Wait()

	return res
}
