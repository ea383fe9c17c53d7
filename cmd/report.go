package cmd

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
	"github.com/jsphweid/ssfconv/chain"
	"github.com/jsphweid/ssfconv/chart"
	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/model"
	"github.com/jsphweid/ssfconv/sequence"
	"github.com/jsphweid/ssfconv/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [chart]",
	Short: "Creates a report",
	Long:  `Counts a chart's notes and chains and estimates its length.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := constants.GetInputPath()
		if len(args) == 1 {
			path = args[0]
		}
		c, err := chart.Open(path, constants.GetEncoding())
		cobra.CheckErr(err)
		printReport(analyzeChart(c))
	},
}

type chartReport struct {
	measures     int
	noteCounts   map[string]int
	familyCounts map[string]int
	unterminated int
	steps        int
	length       time.Duration
}

// kindName groups events by family, ignoring ids and positions.
func kindName(evt model.NoteEvent) string {
	switch n := evt.(type) {
	case model.Step:
		return n.Side.String() + "Step"
	case model.HoldStart:
		return n.Side.String() + "HoldStart"
	}
	return fmt.Sprintf("%T", evt)[len("model."):]
}

func analyzeChart(c *model.Chart) chartReport {
	report := chartReport{
		measures:     len(c.Measures),
		noteCounts:   make(map[string]int),
		familyCounts: make(map[string]int),
	}

	for _, measure := range c.Measures {
		for _, tick := range measure.Ticks {
			for _, evt := range tick {
				report.noteCounts[kindName(evt)]++
			}
		}
	}

	for _, ch := range chain.ResolveAll(c) {
		report.familyCounts[ch.Start.Family.String()]++
		if !ch.Path.Terminated {
			report.unterminated++
		}
	}

	seq := sequence.Build(c)
	report.steps = len(seq.Steps)
	var last uint32
	for _, s := range seq.Steps {
		last = util.Max(last, s.EndMs)
	}
	report.length = time.Duration(last) * time.Millisecond
	return report
}

func printReport(report chartReport) {
	fmt.Printf("measures: %v\n", report.measures)
	for _, k := range util.SortedKeys(report.noteCounts) {
		fmt.Printf("notes.%v: %v\n", k, report.noteCounts[k])
	}
	for _, k := range util.SortedKeys(report.familyCounts) {
		fmt.Printf("chains.%v: %v\n", k, report.familyCounts[k])
	}
	fmt.Printf("chains.unterminated: %v\n", report.unterminated)
	fmt.Printf("steps: %v\n", report.steps)
	fmt.Printf("length: %v\n", durafmt.Parse(report.length).LimitFirstN(2))
}
