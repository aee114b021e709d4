// spvinfo - SPIR-V module inspector
//
// Parses SPIR-V binaries and reports their structure, or disassembles
// them into a readable listing.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gogpu/spirv"
)

var rootCmd = &cobra.Command{
	Use:   "spvinfo",
	Short: "SPIR-V module inspector",
	Long:  `spvinfo parses SPIR-V shader binaries and reports their contents`,
}

func main() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(disCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colorized output")

	cobra.OnInitialize(setupLogging)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if !verbose {
		return
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	spirv.SetLogger(logger)
}

func loadModule(path string) (*spirv.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return spirv.ParseBytes(data)
}
