package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/ssfconv/chart"
	"github.com/jsphweid/ssfconv/midi"
	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/sequence"
	"github.com/jsphweid/ssfconv/util"
	"github.com/pkg/errors"
)

type Options struct {
	Encoding string

	// Midi also writes a MIDI preview beside the XML.
	Midi bool
}

// PreviewPath is where File puts the MIDI preview for out.
func PreviewPath(out string) string {
	return strings.TrimSuffix(out, filepath.Ext(out)) + ".mid"
}

type Result struct {
	Chart    *model.Chart
	Sequence model.Sequence
	XML      []byte
}

// Reader runs the whole pipeline in memory. Nothing is returned unless every
// stage succeeded.
func Reader(r io.Reader, encoding string) (*Result, error) {
	decoded, err := chart.NewReader(r, encoding)
	if err != nil {
		return nil, err
	}
	c, err := chart.Load(decoded)
	if err != nil {
		return nil, err
	}

	seq := sequence.Build(c)
	var buf bytes.Buffer
	if err := sequence.Encode(&buf, seq); err != nil {
		return nil, errors.Wrap(err, "could not encode sequence")
	}
	return &Result{Chart: c, Sequence: seq, XML: buf.Bytes()}, nil
}

// File converts the chart at in and writes the XML to out.
func File(in string, out string, opts Options) (*Result, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, errors.Wrap(err, "could not open chart")
	}
	defer f.Close()

	res, err := Reader(f, opts.Encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "could not convert %v", in)
	}
	if err := util.WriteFileAtomic(out, res.XML); err != nil {
		return nil, err
	}
	if opts.Midi {
		if err := midi.WritePreview(PreviewPath(out), res.Sequence); err != nil {
			return nil, err
		}
	}
	return res, nil
}
