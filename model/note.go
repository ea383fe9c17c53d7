package model

import "fmt"

type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "Right"
	}
	return "Left"
}

// NoteEvent is one decoded notation token. The concrete types below are the
// only implementations.
type NoteEvent interface {
	fmt.Stringer
	noteEvent()
}

type Step struct {
	Side  Side
	Lane  uint8
	Width uint8
}

type Jump struct{}

type Down struct{}

type HoldStart struct {
	Side  Side
	ID    uint8
	Lane  uint8
	Width uint8
}

type SlideWaypoint struct {
	ID    uint8
	Lane  uint8
	Width uint8
}

type SlideEnd struct {
	ID    uint8
	Lane  uint8
	Width uint8
}

type SimpleSkidWaypoint struct {
	ID    uint8
	Lane  uint8
	Width uint8
}

type SimpleSkidEnd struct {
	ID    uint8
	Lane  uint8
	Width uint8
}

type ComplexSkidWaypoint struct {
	ID         uint8
	LaneStart  uint8
	WidthStart uint8
	LaneEnd    uint8
	WidthEnd   uint8
}

type ComplexSkidEnd struct {
	ID         uint8
	LaneStart  uint8
	WidthStart uint8
	LaneEnd    uint8
	WidthEnd   uint8
}

func (Step) noteEvent() {}
func (Jump) noteEvent() {}
func (Down) noteEvent() {}
func (HoldStart) noteEvent() {}
func (SlideWaypoint) noteEvent() {}
func (SlideEnd) noteEvent() {}
func (SimpleSkidWaypoint) noteEvent() {}
func (SimpleSkidEnd) noteEvent() {}
func (ComplexSkidWaypoint) noteEvent() {}
func (ComplexSkidEnd) noteEvent() {}

func (n Step) String() string {
	return fmt.Sprintf("%vStep{lane: %v, width: %v}", n.Side, n.Lane, n.Width)
}

func (Jump) String() string { return "Jump" }

func (Down) String() string { return "Down" }

func (n HoldStart) String() string {
	return fmt.Sprintf("%vHoldStart{id: %v, lane: %v, width: %v}", n.Side, n.ID, n.Lane, n.Width)
}

func (n SlideWaypoint) String() string {
	return fmt.Sprintf("SlideWaypoint{id: %v, lane: %v, width: %v}", n.ID, n.Lane, n.Width)
}

func (n SlideEnd) String() string {
	return fmt.Sprintf("SlideEnd{id: %v, lane: %v, width: %v}", n.ID, n.Lane, n.Width)
}

func (n SimpleSkidWaypoint) String() string {
	return fmt.Sprintf("SimpleSkidWaypoint{id: %v, lane: %v, width: %v}", n.ID, n.Lane, n.Width)
}

func (n SimpleSkidEnd) String() string {
	return fmt.Sprintf("SimpleSkidEnd{id: %v, lane: %v, width: %v}", n.ID, n.Lane, n.Width)
}

func (n ComplexSkidWaypoint) String() string {
	return fmt.Sprintf("ComplexSkidWaypoint{id: %v, lane_start: %v, width_start: %v, lane_end: %v, width_end: %v}",
		n.ID, n.LaneStart, n.WidthStart, n.LaneEnd, n.WidthEnd)
}

func (n ComplexSkidEnd) String() string {
	return fmt.Sprintf("ComplexSkidEnd{id: %v, lane_start: %v, width_start: %v, lane_end: %v, width_end: %v}",
		n.ID, n.LaneStart, n.WidthStart, n.LaneEnd, n.WidthEnd)
}
