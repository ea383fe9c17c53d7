package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/jsphweid/ssfconv/batch"
	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/convert"
	"github.com/jsphweid/ssfconv/file"
	"github.com/jsphweid/ssfconv/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var convertFlags struct {
	output   string
	outDir   string
	encoding string
	midi     bool
	jobs     int
	maxNum   int
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.output, "output", "o", constants.GetOutputPath(), "output file when converting one chart")
	f.StringVar(&convertFlags.outDir, "out-dir", "", "output directory, converts every chart given")
	f.StringVarP(&convertFlags.encoding, "encoding", "e", constants.GetEncoding(), "chart text encoding (utf-8 or shift-jis)")
	f.BoolVar(&convertFlags.midi, "midi", false, "also write a MIDI preview next to each output")
	f.IntVarP(&convertFlags.jobs, "jobs", "j", 4, "charts converted at once")
	f.IntVar(&convertFlags.maxNum, "max", 0, "max charts taken from each directory, 0 for all")
}

var convertCmd = &cobra.Command{
	Use:   "convert [charts or directories...]",
	Short: "Converts charts to sequence XML",
	Long: `Converts charts to sequence XML. With no arguments the chart named by
SSF_INPUT (default test.ssf) is written to SSF_OUTPUT (default out.xml).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{constants.GetInputPath()}
		}
		opts := convert.Options{Encoding: convertFlags.encoding, Midi: convertFlags.midi}
		batchOpts := BatchOptions{OutDir: convertFlags.outDir, Jobs: convertFlags.jobs, MaxNum: convertFlags.maxNum}
		cobra.CheckErr(ConvertCharts(args, convertFlags.output, batchOpts, opts))
	},
}

// BatchOptions controls conversions of more than one chart.
type BatchOptions struct {
	OutDir string
	// Jobs below 1 means one job per CPU.
	Jobs int
	// MaxNum limits the charts taken from each directory, 0 for all.
	MaxNum int
}

// ConvertCharts converts a single chart to output, or every chart under args
// into b.OutDir when it is set or more than one chart is given.
func ConvertCharts(args []string, output string, b BatchOptions, opts convert.Options) error {
	outDir := b.OutDir
	if len(args) == 1 && outDir == "" {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			return convertOne(args[0], output, opts)
		}
	}
	if outDir == "" {
		outDir = "."
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return errors.Wrap(err, "could not read input")
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := util.GatherAllChartPaths(arg, b.MaxNum)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return errors.New("no charts found")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrap(err, "could not create output directory")
	}
	outputs := file.CreateOutputMap(paths, outDir, ".xml")
	jobs := b.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	outcomes := batch.ProcessAllCharts(outputs, jobs, opts)
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Printf("Skipping %v because: %v\n", o.Input, o.Err)
			continue
		}
		fmt.Printf("Wrote %v (%v steps, %v)\n", o.Output, o.Steps, humanize.Bytes(uint64(o.Bytes)))
	}

	if failed := batch.Failed(outcomes); failed > 0 {
		return errors.Errorf("%v of %v charts failed", failed, len(outcomes))
	}
	return nil
}

func convertOne(in string, out string, opts convert.Options) error {
	res, err := convert.File(in, out, opts)
	if err != nil {
		return err
	}
	h := res.Chart.Header
	fmt.Printf("Converted %v (%v, %v) by %v\n", h.Title, h.Difficulty, h.PlayLevel, h.Artist)
	fmt.Printf("Wrote %v (%v steps, %v)\n", out, len(res.Sequence.Steps), humanize.Bytes(uint64(len(res.XML))))
	return nil
}
