package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/spirv"
	"github.com/gogpu/spirv/inst"
)

var disCmd = &cobra.Command{
	Use:   "dis [flags] file.spv",
	Short: "Disassemble a SPIR-V module",
	Long:  `Dis decodes a SPIR-V binary and prints one instruction per line`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDis,
}

var (
	idColor = color.New(color.FgYellow).SprintFunc()
	opColor = color.New(color.FgCyan).SprintFunc()
)

func runDis(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	words, err := spirv.BytesToWords(data)
	if err != nil {
		return err
	}
	if len(words) < 5 || words[0] != spirv.MagicNumber {
		return fmt.Errorf("%s is not a SPIR-V binary", args[0])
	}

	fmt.Printf("; SPIR-V\n")
	fmt.Printf("; Version: %d.%d\n", (words[1]>>16)&0xFF, (words[1]>>8)&0xFF)
	fmt.Printf("; Generator: 0x%08X\n", words[2])
	fmt.Printf("; Bound: %d\n", words[3])
	fmt.Printf("; Schema: %d\n", words[4])

	dec := inst.NewDecoder(words[5:])
	for {
		in, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		printInstruction(in)
	}
}

func printInstruction(in inst.Instruction) {
	if result, ok := inst.ResultID(in); ok {
		fmt.Printf("%9s = %s%s\n", idColor(result), opColor(in.Opcode()), renderOperands(in))
	} else {
		fmt.Printf("%12s%s\n", opColor(in.Opcode()), renderOperands(in))
	}
}

// renderOperands formats everything after the opcode and result id.
func renderOperands(in inst.Instruction) string {
	var b strings.Builder
	switch v := in.(type) {
	case inst.Capability:
		put(&b, inst.CapabilityName(v.Capability))
	case inst.Extension:
		put(&b, quote(v.Name))
	case inst.ExtInstImport:
		put(&b, quote(v.Name))
	case inst.MemoryModel:
		put(&b, inst.AddressingModelName(v.AddressingModel), inst.MemoryModelName(v.MemoryModel))
	case inst.EntryPoint:
		put(&b, inst.ExecutionModelName(v.ExecutionModel), idColor(v.EntryPoint), quote(v.Name))
		putIds(&b, v.Interface)
	case inst.ExecutionMode:
		put(&b, idColor(v.EntryPoint), inst.ExecutionModeName(v.Mode))
		putWords(&b, v.Operands)
	case inst.ExecutionModeId:
		put(&b, idColor(v.EntryPoint), inst.ExecutionModeName(v.Mode))
		putIds(&b, v.Operands)
	case inst.Name:
		put(&b, idColor(v.Target), quote(v.Name))
	case inst.MemberName:
		put(&b, idColor(v.Type), fmt.Sprint(v.Member), quote(v.Name))
	case inst.Line:
		put(&b, idColor(v.File), fmt.Sprint(v.Line), fmt.Sprint(v.Column))
	case inst.NoLine, inst.FunctionEnd:
	case inst.Decorate:
		put(&b, idColor(v.Target), inst.DecorationName(v.Decoration))
		putWords(&b, v.Operands)
	case inst.DecorateId:
		put(&b, idColor(v.Target), inst.DecorationName(v.Decoration))
		putIds(&b, v.Operands)
	case inst.DecorateString:
		put(&b, idColor(v.Target), inst.DecorationName(v.Decoration), quote(v.Value))
	case inst.MemberDecorate:
		put(&b, idColor(v.StructType), fmt.Sprint(v.Member), inst.DecorationName(v.Decoration))
		putWords(&b, v.Operands)
	case inst.MemberDecorateString:
		put(&b, idColor(v.StructType), fmt.Sprint(v.Member), inst.DecorationName(v.Decoration), quote(v.Value))
	case inst.DecorationGroup:
	case inst.GroupDecorate:
		put(&b, idColor(v.Group))
		putIds(&b, v.Targets)
	case inst.GroupMemberDecorate:
		put(&b, idColor(v.Group))
		for _, t := range v.Targets {
			put(&b, idColor(t.Type), fmt.Sprint(t.Member))
		}
	case inst.TypeStruct:
		putIds(&b, v.MemberTypes)
	case inst.ConstantTrue:
		put(&b, idColor(v.ResultType))
	case inst.ConstantFalse:
		put(&b, idColor(v.ResultType))
	case inst.Constant:
		put(&b, idColor(v.ResultType))
		putWords(&b, v.Value)
	case inst.SpecConstantTrue:
		put(&b, idColor(v.ResultType))
	case inst.SpecConstantFalse:
		put(&b, idColor(v.ResultType))
	case inst.SpecConstant:
		put(&b, idColor(v.ResultType))
		putWords(&b, v.Value)
	case inst.Variable:
		put(&b, idColor(v.ResultType), inst.StorageClassName(v.StorageClass))
		if v.Initializer != 0 {
			put(&b, idColor(v.Initializer))
		}
	case inst.Function:
		put(&b, idColor(v.ResultType), fmt.Sprint(v.FunctionControl), idColor(v.FunctionType))
	case inst.FunctionCall:
		put(&b, idColor(v.ResultType), idColor(v.Function))
		putIds(&b, v.Arguments)
	case inst.Generic:
		if v.ResultType != 0 {
			put(&b, idColor(v.ResultType))
		}
		putWords(&b, v.Operands)
	}
	return b.String()
}

func put(b *strings.Builder, parts ...string) {
	for _, p := range parts {
		b.WriteByte(' ')
		b.WriteString(p)
	}
}

func putIds(b *strings.Builder, list []inst.Id) {
	for _, id := range list {
		put(b, idColor(id))
	}
}

func putWords(b *strings.Builder, words []uint32) {
	for _, w := range words {
		put(b, fmt.Sprint(w))
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
