package spirv

import (
	"fmt"

	"github.com/gogpu/spirv/inst"
)

// Module is a parsed and analyzed SPIR-V module.
//
// A Module is immutable after parsing and safe for concurrent reads, with
// one exception: Specialize mutates it in place and requires exclusive
// access.
type Module struct {
	version Version
	bound   uint32
	ids     map[inst.Id]*IdInfo

	// Instruction buckets per the format's "Logical Layout of a Module".
	capabilities    []inst.Instruction
	extensions      []inst.Instruction
	extInstImports  []inst.Instruction
	memoryModel     inst.Instruction
	entryPoints     []inst.Instruction
	executionModes  []inst.Instruction
	names           []inst.Instruction
	decorations     []inst.Instruction
	types           []inst.Instruction
	constants       []inst.Instruction
	globalVariables []inst.Instruction
	functions       map[inst.Id]*FunctionInfo
}

// Version returns the SPIR-V version the module is compiled for.
func (m *Module) Version() Version {
	return m.version
}

// Bound returns the upper bound on id values, recomputed during parsing.
// The header-declared bound is never trusted.
func (m *Module) Bound() uint32 {
	return m.bound
}

// Id returns information about an id.
//
// Id panics if id is not defined in this module. This can in theory only
// happen if you are mixing ids from different modules.
func (m *Module) Id(id inst.Id) *IdInfo {
	info, ok := m.ids[id]
	if !ok {
		panic(fmt.Sprintf("spirv: id %v is not defined in this module", id))
	}
	return info
}

// Function returns information about the function defined by id.
//
// Function panics if id does not define a function in this module.
func (m *Module) Function(id inst.Id) *FunctionInfo {
	fn, ok := m.functions[id]
	if !ok {
		panic(fmt.Sprintf("spirv: id %v does not define a function in this module", id))
	}
	return fn
}

// Capabilities returns all Capability instructions.
func (m *Module) Capabilities() []inst.Instruction {
	return m.capabilities
}

// Extensions returns all Extension instructions.
func (m *Module) Extensions() []inst.Instruction {
	return m.extensions
}

// ExtInstImports returns all ExtInstImport instructions.
func (m *Module) ExtInstImports() []inst.Instruction {
	return m.extInstImports
}

// MemoryModel returns the module's single MemoryModel instruction.
func (m *Module) MemoryModel() inst.Instruction {
	return m.memoryModel
}

// EntryPoints returns all EntryPoint instructions.
func (m *Module) EntryPoints() []inst.Instruction {
	return m.entryPoints
}

// ExecutionModes returns all execution mode instructions.
func (m *Module) ExecutionModes() []inst.Instruction {
	return m.executionModes
}

// Names returns all name debug instructions.
func (m *Module) Names() []inst.Instruction {
	return m.names
}

// Decorations returns all decoration instructions, with decoration groups
// fully expanded into direct per-target decorations.
func (m *Module) Decorations() []inst.Instruction {
	return m.decorations
}

// Types returns all type instructions.
func (m *Module) Types() []inst.Instruction {
	return m.types
}

// Constants returns all constant and specialization constant instructions.
func (m *Module) Constants() []inst.Instruction {
	return m.constants
}

// GlobalVariables returns all module-scope variable instructions.
func (m *Module) GlobalVariables() []inst.Instruction {
	return m.globalVariables
}

// Functions returns all functions keyed by their defining id.
func (m *Module) Functions() map[inst.Id]*FunctionInfo {
	return m.functions
}

// IdInfo is the information associated with one id.
type IdInfo struct {
	instruction inst.Instruction
	names       []inst.Instruction
	decorations []inst.Instruction
	members     []StructMemberInfo
}

// Instruction returns the instruction that defines this id.
func (i *IdInfo) Instruction() inst.Instruction {
	return i.instruction
}

// Names returns all name debug instructions that target this id.
func (i *IdInfo) Names() []inst.Instruction {
	return i.names
}

// Decorations returns all decorate instructions that target this id.
func (i *IdInfo) Decorations() []inst.Instruction {
	return i.decorations
}

// Members returns per-member information when this id defines a struct
// type, one entry per member in declaration order. Empty otherwise.
func (i *IdInfo) Members() []StructMemberInfo {
	return i.members
}

// StructMemberInfo is the information associated with one member of a
// struct type.
type StructMemberInfo struct {
	names       []inst.Instruction
	decorations []inst.Instruction
}

// Names returns all name debug instructions that target this member.
func (s *StructMemberInfo) Names() []inst.Instruction {
	return s.names
}

// Decorations returns all decorate instructions that target this member.
func (s *StructMemberInfo) Decorations() []inst.Instruction {
	return s.decorations
}

// FunctionInfo is the information associated with one function.
type FunctionInfo struct {
	instructions   []inst.Instruction
	called         map[inst.Id]struct{}
	entryPoint     inst.Instruction
	executionModes []inst.Instruction
}

// Instructions returns the instructions making up the function body,
// including the opening Function and closing FunctionEnd.
func (f *FunctionInfo) Instructions() []inst.Instruction {
	return f.instructions
}

// CalledFunctions returns the ids of all functions called directly from
// this function's body. This may include recursive calls.
func (f *FunctionInfo) CalledFunctions() map[inst.Id]struct{} {
	return f.called
}

// EntryPoint returns the EntryPoint instruction that targets this
// function, or nil if there is none.
func (f *FunctionInfo) EntryPoint() inst.Instruction {
	return f.entryPoint
}

// ExecutionModes returns all execution mode instructions that target this
// function.
func (f *FunctionInfo) ExecutionModes() []inst.Instruction {
	return f.executionModes
}
