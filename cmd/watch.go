package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/convert"
	"github.com/spf13/cobra"
)

var watchFlags struct {
	output   string
	encoding string
	midi     bool
	interval time.Duration
	delay    time.Duration
}

func init() {
	rootCmd.AddCommand(watchCmd)

	f := watchCmd.Flags()
	f.StringVarP(&watchFlags.output, "output", "o", constants.GetOutputPath(), "output file")
	f.StringVarP(&watchFlags.encoding, "encoding", "e", constants.GetEncoding(), "chart text encoding (utf-8 or shift-jis)")
	f.BoolVar(&watchFlags.midi, "midi", false, "also write a MIDI preview")
	f.DurationVar(&watchFlags.interval, "interval", 250*time.Millisecond, "how often the chart is checked for changes")
	f.DurationVar(&watchFlags.delay, "delay", 500*time.Millisecond, "quiet time after a change before converting")
}

var watchCmd = &cobra.Command{
	Use:   "watch [chart]",
	Short: "Converts a chart every time it changes",
	Long:  `Watches a chart file and converts it again, debounced, whenever it is saved.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := constants.GetInputPath()
		if len(args) == 1 {
			in = args[0]
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := convert.Options{Encoding: watchFlags.encoding, Midi: watchFlags.midi}
		watch(ctx, in, watchFlags.output, opts, watchFlags.interval, watchFlags.delay)
	},
}

// watch polls in's modification time until ctx is done. A failed conversion
// is reported and the previous output is left alone.
func watch(ctx context.Context, in string, out string, opts convert.Options, interval, delay time.Duration) {
	debounced := debounce.New(delay)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		info, err := os.Stat(in)
		if err != nil {
			continue
		}
		if !info.ModTime().After(last) {
			continue
		}
		last = info.ModTime()
		debounced(func() {
			// the timer can fire after watch has returned
			if ctx.Err() != nil {
				return
			}
			if err := convertOne(in, out, opts); err != nil {
				fmt.Printf("Could not convert %v: %v\n", in, err)
			}
		})
	}
}
