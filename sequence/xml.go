package sequence

import (
	"io"
	"strconv"

	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/model"
	xml "github.com/subchen/go-xmldom"
)

const (
	typeAttr = "__type"
	s32      = "s32"
	s64      = "s64"
)

func leaf(parent *xml.Node, name string, kind string, value int64) *xml.Node {
	n := parent.CreateNode(name)
	n.SetAttributeValue(typeAttr, kind)
	n.Text = strconv.FormatInt(value, 10)
	return n
}

func genEdge(parent *xml.Node, left, right string, e model.Edge) {
	leaf(parent, left, s32, int64(e.Left))
	leaf(parent, right, s32, int64(e.Right))
}

func genInfo(root *xml.Node, seq model.Sequence) {
	info := root.CreateNode("info")
	leaf(info, "tick", s32, int64(seq.Tick))

	bpm := info.CreateNode("bpm_info").CreateNode("bpm")
	leaf(bpm, "time", s32, 0)
	leaf(bpm, "delta_time", s32, 0)
	leaf(bpm, "bpm", s32, int64(seq.BPM)*100)

	measure := info.CreateNode("measure_info").CreateNode("measure")
	leaf(measure, "time", s32, 0)
	leaf(measure, "delta_time", s32, 0)
	leaf(measure, "num", s32, constants.BeatsPerBar)
	leaf(measure, "denomi", s32, constants.BeatUnit)
}

func genStep(parent *xml.Node, s model.SequenceStep) {
	step := parent.CreateNode("step")
	leaf(step, "stime_ms", s64, int64(s.StartMs))
	leaf(step, "etime_ms", s64, int64(s.EndMs))
	leaf(step, "stime_dt", s32, int64(s.StartDt))
	leaf(step, "etime_dt", s32, int64(s.EndDt))
	leaf(step, "category", s32, int64(s.Category))
	genEdge(step, "pos_left", "pos_right", s.Edge)
	leaf(step, "kind", s32, int64(s.Kind))
	leaf(step, "var", s32, int64(s.Var))
	leaf(step, "player_id", s32, int64(s.PlayerID))

	if s.Category != CategoryLong {
		return
	}
	long := step.CreateNode("long_point")
	for _, p := range s.LongPoints {
		point := long.CreateNode("point")
		leaf(point, "point_time", s32, int64(p.TimeMs))
		genEdge(point, "pos_left", "pos_right", p.Edge)
		if p.End != nil {
			genEdge(point, "pos_lend", "pos_rend", *p.End)
		}
	}
}

// Document renders the sequence as the engine's XML tree.
func Document(seq model.Sequence) *xml.Document {
	doc := xml.NewDocument("data")
	leaf(doc.Root, "seq_version", s32, int64(seq.Version))
	genInfo(doc.Root, seq)

	data := doc.Root.CreateNode("sequence_data")
	for _, s := range seq.Steps {
		genStep(data, s)
	}
	return doc
}

func Encode(w io.Writer, seq model.Sequence) error {
	_, err := io.WriteString(w, Document(seq).XMLPretty())
	return err
}
