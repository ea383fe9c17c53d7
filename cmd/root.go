package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ssfconv",
	Short: "SSF chart converter",
	Long:  `Converts SSF rhythm game charts into engine sequence XML.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
