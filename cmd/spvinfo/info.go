package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/spirv/inst"
)

var infoCmd = &cobra.Command{
	Use:   "info [flags] file.spv",
	Short: "Summarize a SPIR-V module",
	Long:  `Info parses a SPIR-V binary and prints its header and contents`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	module, err := loadModule(args[0])
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	if noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color"); noColor {
		color.NoColor = true
	}
	heading := color.New(color.FgCyan, color.Bold).FprintfFunc()

	fmt.Printf("Version:   %s\n", module.Version())
	fmt.Printf("Bound:     %d\n", module.Bound())

	heading(os.Stdout, "Capabilities\n")
	for _, in := range module.Capabilities() {
		c := in.(inst.Capability)
		fmt.Printf("  %s\n", inst.CapabilityName(c.Capability))
	}

	heading(os.Stdout, "Entry points\n")
	for _, in := range module.EntryPoints() {
		ep := in.(inst.EntryPoint)
		fmt.Printf("  %-10s %s (function %s, %d interface ids)\n",
			inst.ExecutionModelName(ep.ExecutionModel), ep.Name, ep.EntryPoint, len(ep.Interface))
	}

	heading(os.Stdout, "Sections\n")
	fmt.Printf("  extensions:       %d\n", len(module.Extensions()))
	fmt.Printf("  ext inst imports: %d\n", len(module.ExtInstImports()))
	fmt.Printf("  execution modes:  %d\n", len(module.ExecutionModes()))
	fmt.Printf("  names:            %d\n", len(module.Names()))
	fmt.Printf("  decorations:      %d\n", len(module.Decorations()))
	fmt.Printf("  types:            %d\n", len(module.Types()))
	fmt.Printf("  constants:        %d\n", len(module.Constants()))
	fmt.Printf("  global variables: %d\n", len(module.GlobalVariables()))

	heading(os.Stdout, "Functions\n")
	for id, fn := range module.Functions() {
		kind := "function"
		if fn.EntryPoint() != nil {
			kind = "entry point"
		}
		fmt.Printf("  %s: %s, %d instructions, calls %d functions\n",
			id, kind, len(fn.Instructions()), len(fn.CalledFunctions()))
	}
	return nil
}
