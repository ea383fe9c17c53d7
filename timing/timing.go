package timing

import (
	"fmt"

	"github.com/jsphweid/ssfconv/constants"
)

type Position struct {
	Measure uint32
	Tick    uint32
}

func (p Position) Less(o Position) bool {
	if p.Measure != o.Measure {
		return p.Measure < o.Measure
	}
	return p.Tick < o.Tick
}

func (p Position) String() string {
	return fmt.Sprintf("%v:%v", p.Measure, p.Tick)
}

// MeasureTickToMs assumes 4/4 regardless of the chart's declared meter.
// Every step truncates.
func MeasureTickToMs(measure, tick, bpm uint32) uint32 {
	msPerBeat := 60000 / bpm
	msPerMeasure := msPerBeat * constants.BeatsPerBar
	msPerTick := float64(msPerMeasure) / constants.TicksPerMeasure
	return uint32(float64(measure)*float64(msPerMeasure) + float64(tick)*msPerTick)
}

// MsToDeltaTime converts to the engine's tempo-scaled unit, which works out
// to ticks at 480 per quarter note.
func MsToDeltaTime(ms, bpm uint32) uint32 {
	return uint32(float32(ms) * float32(0.008) * float32(bpm))
}

type Clock struct {
	BPM uint32
}

func (c Clock) Ms(p Position) uint32 {
	return MeasureTickToMs(p.Measure, p.Tick, c.BPM)
}

func (c Clock) Delta(ms uint32) uint32 {
	return MsToDeltaTime(ms, c.BPM)
}
