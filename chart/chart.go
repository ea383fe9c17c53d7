package chart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/note"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const bom = "\ufeff"

// maxLineSize bounds a single chart line.
const maxLineSize = 1 << 20

// NewReader decodes chart text in the given encoding to UTF-8.
func NewReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", constants.EncodingUTF8, "utf8":
		return r, nil
	case constants.EncodingShiftJIS, "sjis", "shift_jis":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported chart encoding %q", encoding)
}

func Open(path string, encoding string) (*model.Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open chart")
	}
	defer f.Close()

	r, err := NewReader(f, encoding)
	if err != nil {
		return nil, err
	}
	c, err := Load(r)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load %v", path)
	}
	return c, nil
}

// Load reads a whole chart: header commands first, then the note body.
func Load(r io.Reader) (*model.Chart, error) {
	c := &model.Chart{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	inBody := false
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), bom))
		if !strings.HasPrefix(text, "#") {
			continue
		}
		command, argument, ok := splitCommand(text)
		if !ok {
			inBody = true
			break
		}
		if err := applyCommand(&c.Header, lineNum, command, argument); err != nil {
			return nil, err
		}
	}
	if err := scanErr(scanner.Err(), lineNum, "could not read chart header"); err != nil {
		return nil, err
	}
	if !inBody {
		return nil, &StructuralError{Line: lineNum, Reason: "chart ended before any note data"}
	}
	if c.Header.BPM == 0 {
		return nil, &StructuralError{Line: lineNum, Reason: "missing #" + bpmCommand + " tempo"}
	}

	current := 0
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.Contains(text, "END") {
			break
		}
		var err error
		current, err = loadBodyLine(c, current, lineNum, text)
		if err != nil {
			return nil, err
		}
	}
	if err := scanErr(scanner.Err(), lineNum, "could not read chart body"); err != nil {
		return nil, err
	}

	return c, nil
}

// scanErr reports an oversized line as a StructuralError on the line after
// lineNum, the one the scanner could not return.
func scanErr(err error, lineNum int, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bufio.ErrTooLong) {
		return &StructuralError{Line: lineNum + 1, Reason: fmt.Sprintf("line longer than %v bytes", maxLineSize)}
	}
	return errors.Wrap(err, msg)
}

// loadBodyLine applies one body line and returns the measure that following
// tick lines belong to.
func loadBodyLine(c *model.Chart, current int, lineNum int, text string) (int, error) {
	tickText, notes, ok := strings.Cut(text, ":")
	if !ok {
		measure, err := strconv.Atoi(text)
		if err != nil || measure < 0 {
			return current, &StructuralError{Line: lineNum, Text: text, Reason: "not a measure number"}
		}
		c.Extend(measure)
		return measure, nil
	}

	tick, err := strconv.Atoi(strings.TrimSpace(tickText))
	if err != nil {
		return current, &StructuralError{Line: lineNum, Text: text, Reason: "not a tick number"}
	}
	if tick < 0 || tick >= constants.TicksPerMeasure {
		return current, &StructuralError{
			Line:   lineNum,
			Text:   text,
			Reason: fmt.Sprintf("tick must be within [0,%v]", constants.TicksPerMeasure-1),
		}
	}

	c.Extend(current)
	slot := &c.Measures[current].Ticks[tick]
	for _, token := range strings.Split(notes, ",") {
		token = strings.TrimSpace(token)
		if len(token) == 0 {
			continue
		}
		evt, err := note.Decode(token)
		if err != nil {
			return current, errors.Wrapf(err, "line %v", lineNum)
		}
		*slot = append(*slot, evt)
	}
	return current, nil
}
