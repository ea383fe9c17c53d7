package note

import (
	"fmt"

	"github.com/jsphweid/ssfconv/model"
)

// DecodeError reports a token that can't be turned into a NoteEvent.
type DecodeError struct {
	Token  string
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid note token %q at offset %v: %v", e.Token, e.Offset, e.Reason)
}

// layout lengths, kind character included
const (
	stepLen    = 3
	chainLen   = 4
	complexLen = 6
)

type decoder struct {
	token string
}

func (d decoder) fail(offset int, reason string) error {
	return &DecodeError{Token: d.token, Offset: offset, Reason: reason}
}

func (d decoder) need(n int) error {
	if len(d.token) < n {
		return d.fail(len(d.token), fmt.Sprintf("expected %v characters", n))
	}
	return nil
}

func digit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 10, true
	}
	return 0, false
}

func (d decoder) field(offset int, base uint8) (uint8, error) {
	v, ok := digit(d.token[offset])
	if !ok || v >= base {
		return 0, d.fail(offset, fmt.Sprintf("%q is not a base-%v digit", d.token[offset], base))
	}
	return v, nil
}

func (d decoder) lane(offset int) (uint8, error) {
	return d.field(offset, 16)
}

// widths are stored off by one so that 0 means one lane
func (d decoder) width(offset int) (uint8, error) {
	v, err := d.field(offset, 16)
	return v + 1, err
}

func (d decoder) id(offset int) (uint8, error) {
	return d.field(offset, 36)
}

func (d decoder) laneWidth(offset int) (uint8, uint8, error) {
	lane, err := d.lane(offset)
	if err != nil {
		return 0, 0, err
	}
	width, err := d.width(offset + 1)
	if err != nil {
		return 0, 0, err
	}
	return lane, width, nil
}

func (d decoder) step(side model.Side) (model.NoteEvent, error) {
	if err := d.need(stepLen); err != nil {
		return nil, err
	}
	lane, width, err := d.laneWidth(1)
	if err != nil {
		return nil, err
	}
	return model.Step{Side: side, Lane: lane, Width: width}, nil
}

// chain reads the id/lane/width triple shared by holds, slides and simple skids.
func (d decoder) chain() (uint8, uint8, uint8, error) {
	if err := d.need(chainLen); err != nil {
		return 0, 0, 0, err
	}
	id, err := d.id(1)
	if err != nil {
		return 0, 0, 0, err
	}
	lane, width, err := d.laneWidth(2)
	if err != nil {
		return 0, 0, 0, err
	}
	return id, lane, width, nil
}

func (d decoder) ribbon() (id, laneStart, widthStart, laneEnd, widthEnd uint8, err error) {
	if err = d.need(complexLen); err != nil {
		return
	}
	if id, err = d.id(1); err != nil {
		return
	}
	if laneStart, widthStart, err = d.laneWidth(2); err != nil {
		return
	}
	laneEnd, widthEnd, err = d.laneWidth(4)
	return
}

// Decode turns one notation token into a NoteEvent. Characters past the
// family's layout are ignored.
func Decode(token string) (model.NoteEvent, error) {
	d := decoder{token: token}
	if err := d.need(1); err != nil {
		return nil, err
	}

	switch token[0] {
	case '0':
		return d.step(model.Left)
	case '1':
		return d.step(model.Right)
	case '2':
		return model.Jump{}, nil
	case '3':
		return model.Down{}, nil
	case '4', '5':
		id, lane, width, err := d.chain()
		if err != nil {
			return nil, err
		}
		side := model.Left
		if token[0] == '5' {
			side = model.Right
		}
		return model.HoldStart{Side: side, ID: id, Lane: lane, Width: width}, nil
	case '6', '7', '8', 'A':
		id, lane, width, err := d.chain()
		if err != nil {
			return nil, err
		}
		switch token[0] {
		case '6':
			return model.SlideWaypoint{ID: id, Lane: lane, Width: width}, nil
		case '7':
			return model.SlideEnd{ID: id, Lane: lane, Width: width}, nil
		case '8':
			return model.SimpleSkidWaypoint{ID: id, Lane: lane, Width: width}, nil
		default:
			return model.SimpleSkidEnd{ID: id, Lane: lane, Width: width}, nil
		}
	case '9', 'B':
		id, ls, ws, le, we, err := d.ribbon()
		if err != nil {
			return nil, err
		}
		if token[0] == '9' {
			return model.ComplexSkidWaypoint{ID: id, LaneStart: ls, WidthStart: ws, LaneEnd: le, WidthEnd: we}, nil
		}
		return model.ComplexSkidEnd{ID: id, LaneStart: ls, WidthStart: ws, LaneEnd: le, WidthEnd: we}, nil
	}

	return nil, d.fail(0, fmt.Sprintf("unknown note kind %q", token[0]))
}
