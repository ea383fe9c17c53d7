package sequence

import (
	"github.com/jsphweid/ssfconv/chain"
	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/timing"
)

// step kinds as the engine numbers them
const (
	KindLeft  = 1
	KindRight = 2
	KindDown  = 3
	KindJump  = 4
)

const (
	CategoryStep = 0
	CategoryLong = 1
)

const (
	PlayerStep = 0
	PlayerBoth = 4
)

var fullWidth = model.Edge{Left: 0, Right: constants.FullWidth}

func sideKind(s model.Side) int32 {
	if s == model.Right {
		return KindRight
	}
	return KindLeft
}

type emitter struct {
	clock  timing.Clock
	chains []chain.Chain
	next   int
	steps  []model.SequenceStep
}

func (e *emitter) instant(pos timing.Position, kind int32, edge model.Edge, player int32) {
	ms := e.clock.Ms(pos)
	dt := e.clock.Delta(ms)
	e.steps = append(e.steps, model.SequenceStep{
		StartMs:  ms,
		EndMs:    ms,
		StartDt:  dt,
		EndDt:    dt,
		Category: CategoryStep,
		Edge:     edge,
		Kind:     kind,
		PlayerID: player,
	})
}

func (e *emitter) long(hold model.HoldStart) {
	// chains come back in the same grid order the emitter walks
	c := e.chains[e.next]
	e.next++

	startMs := e.clock.Ms(c.Start.Pos)
	step := model.SequenceStep{
		StartMs:  startMs,
		EndMs:    c.Path.EndMs,
		StartDt:  e.clock.Delta(startMs),
		EndDt:    e.clock.Delta(c.Path.EndMs),
		Category: CategoryLong,
		Edge:     c.Start.Edge,
		Kind:     sideKind(hold.Side),
		PlayerID: PlayerStep,
	}
	for _, p := range c.Path.Points {
		step.LongPoints = append(step.LongPoints, model.LongPoint{TimeMs: p.TimeMs, Edge: p.Edge, End: p.End})
	}
	e.steps = append(e.steps, step)
}

// Build walks the chart once and emits a step for every instantaneous note
// and every hold start. Waypoints and ends only show up as long points.
func Build(c *model.Chart) model.Sequence {
	e := emitter{
		clock:  timing.Clock{BPM: c.Header.BPM},
		chains: chain.ResolveAll(c),
	}

	for m := range c.Measures {
		for tick, slot := range c.Measures[m].Ticks {
			pos := timing.Position{Measure: uint32(m), Tick: uint32(tick)}
			for _, evt := range slot {
				switch n := evt.(type) {
				case model.Step:
					e.instant(pos, sideKind(n.Side), model.NewEdge(n.Lane, n.Width), PlayerStep)
				case model.Jump:
					e.instant(pos, KindJump, fullWidth, PlayerBoth)
				case model.Down:
					e.instant(pos, KindDown, fullWidth, PlayerBoth)
				case model.HoldStart:
					e.long(n)
				}
			}
		}
	}

	return model.Sequence{
		Version: constants.SeqVersion,
		Tick:    constants.EngineTick,
		BPM:     c.Header.BPM,
		Steps:   e.steps,
	}
}
