package midi

import (
	"bytes"
	"os"
	"sort"

	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/sequence"
	"github.com/jsphweid/ssfconv/util"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	stepChannel = 0
	drumChannel = 9
	velocity    = 100

	// instant steps sound for a 32nd note
	instantTicks = 60
)

// General MIDI keys per step kind; drums for the full-width notes.
var keys = map[int32]uint8{
	sequence.KindLeft:  60,
	sequence.KindRight: 64,
	sequence.KindDown:  36,
	sequence.KindJump:  38,
}

// holds sound an octave below their step
const holdOffset = 12

type timed struct {
	at  uint32
	off bool
	ch  uint8
	key uint8
	msg gomidi.Message
}

type voiceKey struct{ ch, key uint8 }

func voice(s model.SequenceStep) (uint8, uint8) {
	key := keys[s.Kind]
	switch {
	case s.Kind == sequence.KindDown || s.Kind == sequence.KindJump:
		return drumChannel, key
	case s.Category == sequence.CategoryLong:
		return stepChannel, key - holdOffset
	}
	return stepChannel, key
}

// Preview renders a sequence as a single-track SMF. Delta-time is already in
// engine ticks, so it doubles as the file's metric ticks.
func Preview(seq model.Sequence) (*smf.SMF, error) {
	var events []timed
	for _, s := range seq.Steps {
		ch, key := voice(s)
		end := s.EndDt
		if end <= s.StartDt {
			end = s.StartDt + instantTicks
		}
		events = append(events,
			timed{at: s.StartDt, ch: ch, key: key, msg: gomidi.NoteOn(ch, key, velocity)},
			timed{at: end, off: true, ch: ch, key: key, msg: gomidi.NoteOff(ch, key)},
		)
	}

	// offs first so back to back notes on one key retrigger
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(float64(seq.BPM)))
	// overlapping notes on one key end with the last of them
	sounding := make(map[voiceKey]int)
	var last uint32
	for _, evt := range events {
		v := voiceKey{evt.ch, evt.key}
		if evt.off {
			sounding[v]--
			if sounding[v] > 0 {
				continue
			}
		} else {
			sounding[v]++
		}
		tr.Add(evt.at-last, evt.msg)
		last = evt.at
	}
	tr.Close(0)

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(seq.Tick)
	if err := res.Add(tr); err != nil {
		return nil, errors.Wrap(err, "could not build preview track")
	}
	return res, nil
}

func WritePreview(path string, seq model.Sequence) error {
	s, err := Preview(seq)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "could not encode preview")
	}
	return util.WriteFileAtomic(path, buf.Bytes())
}

// ReadPreview loads a preview back. smf panics on some truncated input, which
// comes back as an error instead.
func ReadPreview(path string) (s *smf.SMF, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, errors.Errorf("could not parse preview %v: %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read preview")
	}
	s, err = smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse preview %v", path)
	}
	return s, nil
}

type Note struct {
	Tick    uint64
	Channel uint8
	Key     uint8
}

// Notes lists the note-ons of every track with absolute ticks.
func Notes(s *smf.SMF) []Note {
	var res []Note
	for _, track := range s.Tracks {
		var absTicks uint64
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			var ch, key, vel uint8
			if evt.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				res = append(res, Note{Tick: absTicks, Channel: ch, Key: key})
			}
		}
	}
	return res
}
