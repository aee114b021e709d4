package spirv

import (
	"fortio.org/safecast"

	"github.com/gogpu/spirv/inst"
)

// Enumerant values accepted by the Assembler's Add methods.
const (
	CapabilityMatrix uint32 = 0
	CapabilityShader uint32 = 1

	AddressingModelLogical uint32 = 0
	MemoryModelGLSL450     uint32 = 1

	ExecutionModelVertex    uint32 = 0
	ExecutionModelFragment  uint32 = 4
	ExecutionModelGLCompute uint32 = 5

	ExecutionModeOriginUpperLeft uint32 = 7
	ExecutionModeLocalSize       uint32 = 17

	StorageClassUniformConstant uint32 = 0
	StorageClassInput           uint32 = 1
	StorageClassUniform         uint32 = 2
	StorageClassOutput          uint32 = 3
	StorageClassPrivate         uint32 = 6
	StorageClassFunction        uint32 = 7

	DecorationSpecId        uint32 = 1
	DecorationBlock         uint32 = 2
	DecorationArrayStride   uint32 = 6
	DecorationBuiltIn       uint32 = 11
	DecorationLocation      uint32 = 30
	DecorationBinding       uint32 = 33
	DecorationDescriptorSet uint32 = 34
	DecorationOffset        uint32 = 35

	FunctionControlNone uint32 = 0
)

// GeneratorID is the generator word written into assembled headers.
// Zero is the unregistered generator.
const GeneratorID = 0

// Assembler builds complete SPIR-V modules programmatically.
//
// Instructions are appended into the module's logical-layout sections and
// serialized in section order by Words or Bytes. Ids are allocated
// sequentially with AllocID or implicitly by the Add methods that define a
// result.
type Assembler struct {
	version Version
	nextID  uint32

	capabilities   []uint32
	extensions     []uint32
	extInstImports []uint32
	memoryModel    []uint32
	entryPoints    []uint32
	executionModes []uint32
	debug          []uint32 // OpString, OpName, OpMemberName
	annotations    []uint32 // decorations, incl. groups
	types          []uint32 // OpType*, OpConstant*, OpSpecConstant*
	globalVars     []uint32
	functions      []uint32
}

// NewAssembler creates an assembler targeting the given SPIR-V version.
func NewAssembler(version Version) *Assembler {
	return &Assembler{version: version, nextID: 1}
}

// AllocID allocates a fresh id.
func (a *Assembler) AllocID() inst.Id {
	id := a.nextID
	a.nextID++
	return inst.Id(id)
}

func (a *Assembler) emit(section *[]uint32, op inst.OpCode, operands ...uint32) {
	count, err := safecast.Conv[uint16](len(operands) + 1)
	if err != nil {
		panic("spirv: instruction exceeds 65535 words")
	}
	*section = append(*section, uint32(count)<<16|uint32(op))
	*section = append(*section, operands...)
}

// packString packs a nul-terminated UTF-8 string into words.
func packString(s string) []uint32 {
	bytes := append([]byte(s), 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	words := make([]uint32, 0, len(bytes)/4)
	for i := 0; i < len(bytes); i += 4 {
		words = append(words, uint32(bytes[i])|
			uint32(bytes[i+1])<<8|
			uint32(bytes[i+2])<<16|
			uint32(bytes[i+3])<<24)
	}
	return words
}

func operands(fixed []uint32, rest ...[]uint32) []uint32 {
	out := append([]uint32(nil), fixed...)
	for _, r := range rest {
		out = append(out, r...)
	}
	return out
}

func ids(list []inst.Id) []uint32 {
	out := make([]uint32, len(list))
	for i, id := range list {
		out[i] = uint32(id)
	}
	return out
}

// AddCapability adds an OpCapability.
func (a *Assembler) AddCapability(capability uint32) {
	a.emit(&a.capabilities, inst.OpCapability, capability)
}

// AddExtension adds an OpExtension.
func (a *Assembler) AddExtension(name string) {
	a.emit(&a.extensions, inst.OpExtension, packString(name)...)
}

// AddExtInstImport imports an extended instruction set.
func (a *Assembler) AddExtInstImport(name string) inst.Id {
	id := a.AllocID()
	a.emit(&a.extInstImports, inst.OpExtInstImport, operands([]uint32{uint32(id)}, packString(name))...)
	return id
}

// SetMemoryModel sets the module's memory model.
func (a *Assembler) SetMemoryModel(addressing, memory uint32) {
	a.memoryModel = a.memoryModel[:0]
	a.emit(&a.memoryModel, inst.OpMemoryModel, addressing, memory)
}

// AddEntryPoint declares an entry point.
func (a *Assembler) AddEntryPoint(execModel uint32, fn inst.Id, name string, interfaces ...inst.Id) {
	ops := operands([]uint32{execModel, uint32(fn)}, packString(name), ids(interfaces))
	a.emit(&a.entryPoints, inst.OpEntryPoint, ops...)
}

// AddExecutionMode declares an execution mode for an entry point.
func (a *Assembler) AddExecutionMode(fn inst.Id, mode uint32, params ...uint32) {
	a.emit(&a.executionModes, inst.OpExecutionMode, operands([]uint32{uint32(fn), mode}, params)...)
}

// AddName attaches a debug name to an id.
func (a *Assembler) AddName(target inst.Id, name string) {
	a.emit(&a.debug, inst.OpName, operands([]uint32{uint32(target)}, packString(name))...)
}

// AddMemberName attaches a debug name to a struct member.
func (a *Assembler) AddMemberName(structType inst.Id, member uint32, name string) {
	a.emit(&a.debug, inst.OpMemberName, operands([]uint32{uint32(structType), member}, packString(name))...)
}

// AddDecorate decorates an id.
func (a *Assembler) AddDecorate(target inst.Id, decoration uint32, params ...uint32) {
	a.emit(&a.annotations, inst.OpDecorate, operands([]uint32{uint32(target), decoration}, params)...)
}

// AddMemberDecorate decorates a struct member.
func (a *Assembler) AddMemberDecorate(structType inst.Id, member uint32, decoration uint32, params ...uint32) {
	a.emit(&a.annotations, inst.OpMemberDecorate, operands([]uint32{uint32(structType), member, decoration}, params)...)
}

// AddDecorationGroup declares a decoration group and returns its id.
// Decorations added to the id with AddDecorate before this call are
// bundled into the group.
func (a *Assembler) AddDecorationGroup() inst.Id {
	id := a.AllocID()
	a.emit(&a.annotations, inst.OpDecorationGroup, uint32(id))
	return id
}

// AddGroupDecorate applies a decoration group to the target ids.
func (a *Assembler) AddGroupDecorate(group inst.Id, targets ...inst.Id) {
	a.emit(&a.annotations, inst.OpGroupDecorate, operands([]uint32{uint32(group)}, ids(targets))...)
}

// AddGroupMemberDecorate applies a decoration group to struct members,
// given as (struct id, member index) pairs.
func (a *Assembler) AddGroupMemberDecorate(group inst.Id, targets ...inst.MemberTarget) {
	ops := []uint32{uint32(group)}
	for _, t := range targets {
		ops = append(ops, uint32(t.Type), t.Member)
	}
	a.emit(&a.annotations, inst.OpGroupMemberDecorate, ops...)
}

// AddTypeVoid adds OpTypeVoid.
func (a *Assembler) AddTypeVoid() inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypeVoid, uint32(id))
	return id
}

// AddTypeBool adds OpTypeBool.
func (a *Assembler) AddTypeBool() inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypeBool, uint32(id))
	return id
}

// AddTypeInt adds OpTypeInt.
func (a *Assembler) AddTypeInt(width uint32, signed bool) inst.Id {
	id := a.AllocID()
	signedness := uint32(0)
	if signed {
		signedness = 1
	}
	a.emit(&a.types, inst.OpTypeInt, uint32(id), width, signedness)
	return id
}

// AddTypeFloat adds OpTypeFloat.
func (a *Assembler) AddTypeFloat(width uint32) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypeFloat, uint32(id), width)
	return id
}

// AddTypeVector adds OpTypeVector.
func (a *Assembler) AddTypeVector(component inst.Id, count uint32) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypeVector, uint32(id), uint32(component), count)
	return id
}

// AddTypeStruct adds OpTypeStruct.
func (a *Assembler) AddTypeStruct(memberTypes ...inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypeStruct, operands([]uint32{uint32(id)}, ids(memberTypes))...)
	return id
}

// AddTypePointer adds OpTypePointer.
func (a *Assembler) AddTypePointer(storageClass uint32, base inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypePointer, uint32(id), storageClass, uint32(base))
	return id
}

// AddTypeFunction adds OpTypeFunction.
func (a *Assembler) AddTypeFunction(returnType inst.Id, paramTypes ...inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpTypeFunction, operands([]uint32{uint32(id), uint32(returnType)}, ids(paramTypes))...)
	return id
}

// AddConstant adds OpConstant with the given literal words.
func (a *Assembler) AddConstant(resultType inst.Id, value ...uint32) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpConstant, operands([]uint32{uint32(resultType), uint32(id)}, value)...)
	return id
}

// AddConstantTrue adds OpConstantTrue.
func (a *Assembler) AddConstantTrue(resultType inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpConstantTrue, uint32(resultType), uint32(id))
	return id
}

// AddConstantFalse adds OpConstantFalse.
func (a *Assembler) AddConstantFalse(resultType inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpConstantFalse, uint32(resultType), uint32(id))
	return id
}

// AddSpecConstant adds OpSpecConstant with the given default literal words.
func (a *Assembler) AddSpecConstant(resultType inst.Id, value ...uint32) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpSpecConstant, operands([]uint32{uint32(resultType), uint32(id)}, value)...)
	return id
}

// AddSpecConstantTrue adds OpSpecConstantTrue.
func (a *Assembler) AddSpecConstantTrue(resultType inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpSpecConstantTrue, uint32(resultType), uint32(id))
	return id
}

// AddSpecConstantFalse adds OpSpecConstantFalse.
func (a *Assembler) AddSpecConstantFalse(resultType inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.types, inst.OpSpecConstantFalse, uint32(resultType), uint32(id))
	return id
}

// AddVariable adds a module-scope OpVariable.
func (a *Assembler) AddVariable(pointerType inst.Id, storageClass uint32) inst.Id {
	id := a.AllocID()
	a.emit(&a.globalVars, inst.OpVariable, uint32(pointerType), uint32(id), storageClass)
	return id
}

// AddFunction opens a function body.
func (a *Assembler) AddFunction(returnType inst.Id, control uint32, fnType inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.functions, inst.OpFunction, uint32(returnType), uint32(id), control, uint32(fnType))
	return id
}

// AddLabel adds an OpLabel inside the current function.
func (a *Assembler) AddLabel() inst.Id {
	id := a.AllocID()
	a.emit(&a.functions, inst.OpLabel, uint32(id))
	return id
}

// AddFunctionCall adds an OpFunctionCall inside the current function.
func (a *Assembler) AddFunctionCall(resultType, fn inst.Id, args ...inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.functions, inst.OpFunctionCall, operands([]uint32{uint32(resultType), uint32(id), uint32(fn)}, ids(args))...)
	return id
}

// AddLine adds a debug line marker inside the current function.
func (a *Assembler) AddLine(file inst.Id, line, column uint32) {
	a.emit(&a.functions, inst.OpLine, uint32(file), line, column)
}

// AddNoLine ends the scope of a previous line marker.
func (a *Assembler) AddNoLine() {
	a.emit(&a.functions, inst.OpNoLine)
}

// AddReturn adds OpReturn.
func (a *Assembler) AddReturn() {
	a.emit(&a.functions, inst.OpReturn)
}

// AddFunctionEnd closes the current function body.
func (a *Assembler) AddFunctionEnd() {
	a.emit(&a.functions, inst.OpFunctionEnd)
}

// AddBinaryOp adds a generic two-operand instruction inside the current
// function, e.g. OpIAdd.
func (a *Assembler) AddBinaryOp(op inst.OpCode, resultType, left, right inst.Id) inst.Id {
	id := a.AllocID()
	a.emit(&a.functions, op, uint32(resultType), uint32(id), uint32(left), uint32(right))
	return id
}

// Words serializes the module as a word stream, header included. The
// header's bound is one past the highest id allocated so far.
func (a *Assembler) Words() []uint32 {
	sections := [][]uint32{
		a.capabilities,
		a.extensions,
		a.extInstImports,
		a.memoryModel,
		a.entryPoints,
		a.executionModes,
		a.debug,
		a.annotations,
		a.types,
		a.globalVars,
		a.functions,
	}

	total := headerWords
	for _, s := range sections {
		total += len(s)
	}

	out := make([]uint32, 0, total)
	out = append(out, MagicNumber, versionToWord(a.version), GeneratorID, a.nextID, 0)
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

// Bytes serializes the module as little-endian binary.
func (a *Assembler) Bytes() []byte {
	return wordsToBytes(a.Words())
}
