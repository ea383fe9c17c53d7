package model

import "github.com/jsphweid/ssfconv/constants"

type Edge struct {
	Left  int32
	Right int32
}

// NewEdge scales a lane/width pair onto the playing field.
func NewEdge(lane, width uint8) Edge {
	return Edge{
		Left:  int32(lane) * constants.PosScale,
		Right: (int32(lane) + int32(width)) * constants.PosScale,
	}
}

type LongPoint struct {
	TimeMs uint32
	Edge   Edge

	// only set for skid points, which carry a start and an end edge
	End *Edge
}

type SequenceStep struct {
	StartMs  uint32
	EndMs    uint32
	StartDt  uint32
	EndDt    uint32
	Category int32
	Edge     Edge
	Kind     int32
	Var      int32
	PlayerID int32

	LongPoints []LongPoint
}

type Sequence struct {
	Version int32
	Tick    int32
	BPM     uint32
	Steps   []SequenceStep
}
