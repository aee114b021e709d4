// Package inst defines the SPIR-V instruction set used by the parser:
// opcodes, enumerant tables and the decoded instruction variants.
//
// Instructions whose operands carry structural meaning for module analysis
// (sections, ids, decorations, functions) decode to dedicated variants;
// everything else decodes to Generic with raw operand words. The variant set
// is closed: all types implementing Instruction live in this package.
package inst

import "strconv"

// Id refers to the result of another instruction.
//
// Ids are global across a module and are always assigned by exactly one
// instruction.
type Id uint32

// String renders the id in assembly form, e.g. "%13".
func (id Id) String() string {
	return "%" + strconv.FormatUint(uint64(id), 10)
}

// Instruction is one decoded SPIR-V instruction.
type Instruction interface {
	Opcode() OpCode
	isInstruction()
}

// ResultID returns the id defined by the instruction, if it defines one.
func ResultID(in Instruction) (Id, bool) {
	switch v := in.(type) {
	case ExtInstImport:
		return v.Result, true
	case DecorationGroup:
		return v.Result, true
	case TypeStruct:
		return v.Result, true
	case ConstantTrue:
		return v.Result, true
	case ConstantFalse:
		return v.Result, true
	case Constant:
		return v.Result, true
	case SpecConstantTrue:
		return v.Result, true
	case SpecConstantFalse:
		return v.Result, true
	case SpecConstant:
		return v.Result, true
	case Variable:
		return v.Result, true
	case Function:
		return v.Result, true
	case FunctionCall:
		return v.Result, true
	case Generic:
		// Id 0 is never assigned, so a zero result means "none".
		return v.Result, v.Result != 0
	default:
		return 0, false
	}
}

// Capability declares a capability the module requires.
type Capability struct {
	Capability uint32
}

// Extension declares an extension the module uses.
type Extension struct {
	Name string
}

// ExtInstImport imports an extended instruction set under a result id.
type ExtInstImport struct {
	Result Id
	Name   string
}

// MemoryModel sets the addressing and memory model. Exactly one per module.
type MemoryModel struct {
	AddressingModel uint32
	MemoryModel     uint32
}

// EntryPoint declares an entry point into a function.
type EntryPoint struct {
	ExecutionModel uint32
	EntryPoint     Id
	Name           string
	Interface      []Id
}

// ExecutionMode declares an execution mode for an entry point.
type ExecutionMode struct {
	EntryPoint Id
	Mode       uint32
	Operands   []uint32
}

// ExecutionModeId is ExecutionMode with id operands instead of literals.
type ExecutionModeId struct {
	EntryPoint Id
	Mode       uint32
	Operands   []Id
}

// Name attaches a debug name to an id.
type Name struct {
	Target Id
	Name   string
}

// MemberName attaches a debug name to a struct member.
type MemberName struct {
	Type   Id
	Member uint32
	Name   string
}

// Line is a debug line marker. The parser drops it during module building.
type Line struct {
	File   Id
	Line   uint32
	Column uint32
}

// NoLine ends the scope of a previous Line marker.
type NoLine struct{}

// Decorate attaches a decoration to an id.
type Decorate struct {
	Target     Id
	Decoration uint32
	Operands   []uint32
}

// DecorateId is Decorate with id operands instead of literals.
type DecorateId struct {
	Target     Id
	Decoration uint32
	Operands   []Id
}

// DecorateString is Decorate with a string literal operand.
type DecorateString struct {
	Target     Id
	Decoration uint32
	Value      string
}

// MemberDecorate attaches a decoration to a struct member.
type MemberDecorate struct {
	StructType Id
	Member     uint32
	Decoration uint32
	Operands   []uint32
}

// MemberDecorateString is MemberDecorate with a string literal operand.
type MemberDecorateString struct {
	StructType Id
	Member     uint32
	Decoration uint32
	Value      string
}

// DecorationGroup declares a reusable bundle of decorations.
type DecorationGroup struct {
	Result Id
}

// GroupDecorate applies a decoration group to a list of target ids.
type GroupDecorate struct {
	Group   Id
	Targets []Id
}

// MemberTarget addresses one member of a struct type.
type MemberTarget struct {
	Type   Id
	Member uint32
}

// GroupMemberDecorate applies a decoration group to struct members.
type GroupMemberDecorate struct {
	Group   Id
	Targets []MemberTarget
}

// TypeStruct declares an aggregate type with one slot per member.
type TypeStruct struct {
	Result      Id
	MemberTypes []Id
}

// ConstantTrue declares a boolean constant with value true.
type ConstantTrue struct {
	ResultType Id
	Result     Id
}

// ConstantFalse declares a boolean constant with value false.
type ConstantFalse struct {
	ResultType Id
	Result     Id
}

// Constant declares a scalar constant from literal words.
type Constant struct {
	ResultType Id
	Result     Id
	Value      []uint32
}

// SpecConstantTrue declares a specialization constant defaulting to true.
type SpecConstantTrue struct {
	ResultType Id
	Result     Id
}

// SpecConstantFalse declares a specialization constant defaulting to false.
type SpecConstantFalse struct {
	ResultType Id
	Result     Id
}

// SpecConstant declares a scalar specialization constant with a default value.
type SpecConstant struct {
	ResultType Id
	Result     Id
	Value      []uint32
}

// Variable declares a variable. Outside a function body it is a global.
type Variable struct {
	ResultType   Id
	Result       Id
	StorageClass uint32
	Initializer  Id // 0 when absent
}

// Function opens a function body.
type Function struct {
	ResultType      Id
	Result          Id
	FunctionControl uint32
	FunctionType    Id
}

// FunctionEnd closes a function body.
type FunctionEnd struct{}

// FunctionCall calls a function directly by id.
type FunctionCall struct {
	ResultType Id
	Result     Id
	Function   Id
	Arguments  []Id
}

// Generic carries any known opcode without a dedicated variant, with its raw
// operand words. ResultType and Result are 0 when the opcode's layout does
// not include them.
type Generic struct {
	Op         OpCode
	ResultType Id
	Result     Id
	Operands   []uint32
}

func (Capability) Opcode() OpCode           { return OpCapability }
func (Extension) Opcode() OpCode            { return OpExtension }
func (ExtInstImport) Opcode() OpCode        { return OpExtInstImport }
func (MemoryModel) Opcode() OpCode          { return OpMemoryModel }
func (EntryPoint) Opcode() OpCode           { return OpEntryPoint }
func (ExecutionMode) Opcode() OpCode        { return OpExecutionMode }
func (ExecutionModeId) Opcode() OpCode      { return OpExecutionModeId }
func (Name) Opcode() OpCode                 { return OpName }
func (MemberName) Opcode() OpCode           { return OpMemberName }
func (Line) Opcode() OpCode                 { return OpLine }
func (NoLine) Opcode() OpCode               { return OpNoLine }
func (Decorate) Opcode() OpCode             { return OpDecorate }
func (DecorateId) Opcode() OpCode           { return OpDecorateId }
func (DecorateString) Opcode() OpCode       { return OpDecorateString }
func (MemberDecorate) Opcode() OpCode       { return OpMemberDecorate }
func (MemberDecorateString) Opcode() OpCode { return OpMemberDecorateString }
func (DecorationGroup) Opcode() OpCode      { return OpDecorationGroup }
func (GroupDecorate) Opcode() OpCode        { return OpGroupDecorate }
func (GroupMemberDecorate) Opcode() OpCode  { return OpGroupMemberDecorate }
func (TypeStruct) Opcode() OpCode           { return OpTypeStruct }
func (ConstantTrue) Opcode() OpCode         { return OpConstantTrue }
func (ConstantFalse) Opcode() OpCode        { return OpConstantFalse }
func (Constant) Opcode() OpCode             { return OpConstant }
func (SpecConstantTrue) Opcode() OpCode     { return OpSpecConstantTrue }
func (SpecConstantFalse) Opcode() OpCode    { return OpSpecConstantFalse }
func (SpecConstant) Opcode() OpCode         { return OpSpecConstant }
func (Variable) Opcode() OpCode             { return OpVariable }
func (Function) Opcode() OpCode             { return OpFunction }
func (FunctionEnd) Opcode() OpCode          { return OpFunctionEnd }
func (FunctionCall) Opcode() OpCode         { return OpFunctionCall }
func (g Generic) Opcode() OpCode            { return g.Op }

func (Capability) isInstruction()           {}
func (Extension) isInstruction()            {}
func (ExtInstImport) isInstruction()        {}
func (MemoryModel) isInstruction()          {}
func (EntryPoint) isInstruction()           {}
func (ExecutionMode) isInstruction()        {}
func (ExecutionModeId) isInstruction()      {}
func (Name) isInstruction()                 {}
func (MemberName) isInstruction()           {}
func (Line) isInstruction()                 {}
func (NoLine) isInstruction()               {}
func (Decorate) isInstruction()             {}
func (DecorateId) isInstruction()           {}
func (DecorateString) isInstruction()       {}
func (MemberDecorate) isInstruction()       {}
func (MemberDecorateString) isInstruction() {}
func (DecorationGroup) isInstruction()      {}
func (GroupDecorate) isInstruction()        {}
func (GroupMemberDecorate) isInstruction()  {}
func (TypeStruct) isInstruction()           {}
func (ConstantTrue) isInstruction()         {}
func (ConstantFalse) isInstruction()        {}
func (Constant) isInstruction()             {}
func (SpecConstantTrue) isInstruction()     {}
func (SpecConstantFalse) isInstruction()    {}
func (SpecConstant) isInstruction()         {}
func (Variable) isInstruction()             {}
func (Function) isInstruction()             {}
func (FunctionEnd) isInstruction()          {}
func (FunctionCall) isInstruction()         {}
func (Generic) isInstruction()              {}
