package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/ssfconv/chart"
	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/midi"
	"github.com/jsphweid/ssfconv/model"
	"github.com/spf13/cobra"
)

var inspectEncoding string

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectEncoding, "encoding", "e", constants.GetEncoding(), "chart text encoding (utf-8 or shift-jis)")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [chart or preview.mid]",
	Short: "Prints a chart's header and note grid",
	Long:  `Prints a chart's header and every non-empty tick of its note grid, or the notes of a MIDI preview.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := constants.GetInputPath()
		if len(args) == 1 {
			path = args[0]
		}
		if strings.EqualFold(filepath.Ext(path), ".mid") {
			cobra.CheckErr(inspectPreview(path))
			return
		}
		cobra.CheckErr(inspect(path))
	},
}

func printHeader(h model.Header) {
	fmt.Printf("Title: %v\n", h.Title)
	fmt.Printf("Artist: %v\n", h.Artist)
	fmt.Printf("Designer: %v\n", h.Designer)
	fmt.Printf("Difficulty: %v\n", h.Difficulty)
	fmt.Printf("Level: %v\n", h.PlayLevel)
	fmt.Printf("Song ID: %v\n", h.SongID)
	fmt.Printf("Sound File: %v\n", h.Wave)
	fmt.Printf("Sound Offset: %v\n", h.WaveOffset)
	fmt.Printf("Cover Image: %v\n", h.Jacket)
	fmt.Printf("BPM: %v\n", h.BPM)
	fmt.Printf("Padding Bars: %v\n", h.PaddingBars)
}

func inspect(path string) error {
	c, err := chart.Open(path, inspectEncoding)
	if err != nil {
		return err
	}

	printHeader(c.Header)
	for measureNum, measure := range c.Measures {
		for tickNum, tick := range measure.Ticks {
			if len(tick) == 0 {
				continue
			}
			fmt.Printf("Measure: %v, Tick: %v, Notes: %v\n", measureNum, tickNum, tick)
		}
	}
	return nil
}

func inspectPreview(path string) error {
	s, err := midi.ReadPreview(path)
	if err != nil {
		return err
	}
	fmt.Printf("Time format: %v\n", s.TimeFormat)
	for _, n := range midi.Notes(s) {
		fmt.Printf("Tick: %v, Channel: %v, Key: %v\n", n.Tick, n.Channel, n.Key)
	}
	return nil
}
