package model

import "github.com/jsphweid/ssfconv/constants"

type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	}
	return "Unknown"
}

type Header struct {
	Title       string
	Artist      string
	Designer    string
	Difficulty  Difficulty
	PlayLevel   string
	SongID      string
	Wave        string
	WaveOffset  string
	Jacket      string
	BPM         uint32
	PaddingBars uint32
}

type Tick = []NoteEvent

type Measure struct {
	Ticks [constants.TicksPerMeasure]Tick
}

// Chart is built once by the loader and only read afterwards.
type Chart struct {
	Header   Header
	Measures []Measure
}

// Extend grows the grid with empty measures so that index measure exists.
func (c *Chart) Extend(measure int) {
	for len(c.Measures) < measure+1 {
		c.Measures = append(c.Measures, Measure{})
	}
}
