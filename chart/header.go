package chart

import (
	"strconv"
	"strings"

	"github.com/jsphweid/ssfconv/model"
)

const (
	bpmCommand     = "BPM01:"
	paddingCommand = "00008:"
)

// splitCommand splits "#COMMAND argument". The tempo and padding commands end
// in a colon and are also accepted without the space.
func splitCommand(line string) (string, string, bool) {
	line = strings.TrimPrefix(line, "#")
	if command, argument, ok := strings.Cut(line, " "); ok {
		return command, strings.TrimSpace(argument), true
	}
	for _, command := range []string{bpmCommand, paddingCommand} {
		if strings.HasPrefix(line, command) && len(line) > len(command) {
			return command, strings.TrimSpace(line[len(command):]), true
		}
	}
	return "", "", false
}

func parseDifficulty(argument string) (model.Difficulty, bool) {
	switch argument {
	case "0":
		return model.Easy, true
	case "1":
		return model.Normal, true
	case "2":
		return model.Hard, true
	}
	return 0, false
}

func applyCommand(h *model.Header, lineNum int, command, argument string) error {
	invalid := &HeaderError{Line: lineNum, Command: command, Argument: argument}

	switch command {
	case "TITLE":
		h.Title = argument
	case "ARTIST":
		h.Artist = argument
	case "DESIGNER":
		h.Designer = argument
	case "DIFFICULTY":
		d, ok := parseDifficulty(argument)
		if !ok {
			return invalid
		}
		h.Difficulty = d
	case "PLAYLEVEL":
		h.PlayLevel = argument
	case "SONGID":
		h.SongID = argument
	case "WAVE":
		h.Wave = argument
	case "WAVEOFFSET":
		h.WaveOffset = argument
	case "JACKET":
		h.Jacket = argument
	case bpmCommand:
		bpm, err := strconv.ParseUint(argument, 10, 32)
		if err != nil || bpm == 0 {
			return invalid
		}
		h.BPM = uint32(bpm)
	case paddingCommand:
		bars, err := strconv.ParseUint(argument, 10, 32)
		if err != nil {
			return invalid
		}
		h.PaddingBars = uint32(bars)
	}
	return nil
}
