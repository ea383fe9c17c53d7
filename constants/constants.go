package constants

import "os"

func GetInputPath() string {
	path := os.Getenv("SSF_INPUT")
	if path != "" {
		return path
	}
	return "test.ssf"
}

func GetOutputPath() string {
	path := os.Getenv("SSF_OUTPUT")
	if path != "" {
		return path
	}
	return "out.xml"
}

func GetEncoding() string {
	enc := os.Getenv("SSF_ENCODING")
	if enc != "" {
		return enc
	}
	return EncodingUTF8
}

func GetPort() string {
	port := os.Getenv("SSF_PORT")
	if port != "" {
		return port
	}
	return "8080"
}

const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift-jis"
)

// The whole chart uses one subdivision regardless of the declared meter.
const TicksPerMeasure = 192

// Engine side of the output document.
const (
	SeqVersion  = 8
	EngineTick  = 480
	PosScale    = 4096
	FullWidth   = 16 * PosScale
	BeatsPerBar = 4
	BeatUnit    = 4
)

const ChartExt = ".ssf"
