package spirv

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/gogpu/spirv/inst"
)

// ParseBytes parses a SPIR-V module from its raw bytes.
func ParseBytes(data []byte) (*Module, error) {
	words, err := BytesToWords(data)
	if err != nil {
		return nil, err
	}
	return Parse(words)
}

// Parse parses a SPIR-V module from a word stream, header included.
//
// Parsing is all-or-nothing: the first structural violation or decode
// failure is returned and no partial module exists.
func Parse(words []uint32) (*Module, error) {
	if len(words) < headerWords {
		return nil, ErrInvalidHeader
	}
	if words[0] != MagicNumber {
		return nil, ErrInvalidHeader
	}

	b := &builder{
		version:   versionFromWord(words[1]),
		ids:       make(map[inst.Id]*IdInfo),
		functions: make(map[inst.Id]*FunctionInfo),
	}

	// The header-declared bound (words[3]) is untrusted; the bound is
	// recomputed from the result ids actually seen.
	d := inst.NewDecoder(words[headerWords:])
	for {
		in, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := b.add(in); err != nil {
			return nil, err
		}
	}

	return b.finish()
}

// builder accumulates one Module over a single pass of the instruction
// stream.
type builder struct {
	version Version
	bound   uint32
	ids     map[inst.Id]*IdInfo

	current   *FunctionInfo
	functions map[inst.Id]*FunctionInfo

	capabilities    []inst.Instruction
	extensions      []inst.Instruction
	extInstImports  []inst.Instruction
	memoryModels    []inst.Instruction
	entryPoints     []inst.Instruction
	executionModes  []inst.Instruction
	names           []inst.Instruction
	decorations     []inst.Instruction
	types           []inst.Instruction
	constants       []inst.Instruction
	globalVariables []inst.Instruction
}

func (b *builder) add(in inst.Instruction) error {
	if id, ok := inst.ResultID(in); ok {
		if uint32(id)+1 > b.bound {
			b.bound = uint32(id) + 1
		}

		var members []StructMemberInfo
		if ts, ok := in.(inst.TypeStruct); ok {
			members = make([]StructMemberInfo, len(ts.MemberTypes))
		}

		if _, dup := b.ids[id]; dup {
			return &DuplicateIdError{Id: id}
		}
		b.ids[id] = &IdInfo{instruction: in, members: members}
	}

	switch v := in.(type) {
	case inst.Line, inst.NoLine:
		// Debug line markers carry no structural information.
		return nil

	case inst.Function:
		fn, ok := b.functions[v.Result]
		if !ok {
			fn = b.newFunction(v.Result)
			b.functions[v.Result] = fn
		}
		b.current = fn
		fn.instructions = append(fn.instructions, in)

	case inst.FunctionEnd:
		if b.current != nil {
			b.current.instructions = append(b.current.instructions, in)
			b.current = nil
		}

	default:
		if b.current != nil {
			if call, ok := in.(inst.FunctionCall); ok {
				b.current.called[call.Function] = struct{}{}
			}
			b.current.instructions = append(b.current.instructions, in)
			return nil
		}
		b.classify(in)
	}
	return nil
}

// newFunction creates the function record for a newly seen function id.
// Entry points and execution modes are declared before any function body,
// so scanning what has been collected so far is sufficient.
func (b *builder) newFunction(id inst.Id) *FunctionInfo {
	fn := &FunctionInfo{called: make(map[inst.Id]struct{})}

	for _, in := range b.entryPoints {
		if ep, ok := in.(inst.EntryPoint); ok && ep.EntryPoint == id {
			fn.entryPoint = in
			break
		}
	}
	for _, in := range b.executionModes {
		switch em := in.(type) {
		case inst.ExecutionMode:
			if em.EntryPoint == id {
				fn.executionModes = append(fn.executionModes, in)
			}
		case inst.ExecutionModeId:
			if em.EntryPoint == id {
				fn.executionModes = append(fn.executionModes, in)
			}
		}
	}
	return fn
}

// classify routes a module-scope instruction into its logical-layout
// section. Instructions with no section (e.g. debug sources, OpString) are
// dropped from the buckets; their ids were already recorded.
func (b *builder) classify(in inst.Instruction) {
	switch v := in.(type) {
	case inst.Capability:
		b.capabilities = append(b.capabilities, in)
	case inst.Extension:
		b.extensions = append(b.extensions, in)
	case inst.ExtInstImport:
		b.extInstImports = append(b.extInstImports, in)
	case inst.MemoryModel:
		b.memoryModels = append(b.memoryModels, in)
	case inst.EntryPoint:
		b.entryPoints = append(b.entryPoints, in)
	case inst.ExecutionMode, inst.ExecutionModeId:
		b.executionModes = append(b.executionModes, in)
	case inst.Name, inst.MemberName:
		b.names = append(b.names, in)
	case inst.Decorate, inst.DecorateId, inst.DecorateString,
		inst.MemberDecorate, inst.MemberDecorateString,
		inst.DecorationGroup, inst.GroupDecorate, inst.GroupMemberDecorate:
		b.decorations = append(b.decorations, in)
	case inst.TypeStruct:
		b.types = append(b.types, in)
	case inst.ConstantTrue, inst.ConstantFalse, inst.Constant,
		inst.SpecConstantTrue, inst.SpecConstantFalse, inst.SpecConstant:
		b.constants = append(b.constants, in)
	case inst.Variable:
		b.globalVariables = append(b.globalVariables, in)
	case inst.Generic:
		switch inst.KindOf(v.Op) {
		case inst.KindType:
			b.types = append(b.types, in)
		case inst.KindConstant:
			b.constants = append(b.constants, in)
		}
	}
}

func (b *builder) finish() (*Module, error) {
	decorations := b.resolveDecorations()
	names := b.attachNames()

	m := &Module{
		version: b.version,
		bound:   b.bound,
		ids:     b.ids,

		capabilities:   b.capabilities,
		extensions:     b.extensions,
		extInstImports: b.extInstImports,
		// The layout rules mandate exactly one memory model instruction.
		memoryModel:     b.memoryModels[0],
		entryPoints:     b.entryPoints,
		executionModes:  b.executionModes,
		names:           names,
		decorations:     decorations,
		types:           b.types,
		constants:       b.constants,
		globalVariables: b.globalVariables,
		functions:       b.functions,
	}

	Logger().Debug("parsed SPIR-V module",
		zap.String("version", m.version.String()),
		zap.Uint32("bound", m.bound),
		zap.Int("ids", len(m.ids)),
		zap.Int("types", len(m.types)),
		zap.Int("constants", len(m.constants)),
		zap.Int("entry_points", len(m.entryPoints)),
		zap.Int("functions", len(m.functions)),
	)
	return m, nil
}

// attachNames routes each name instruction to its target's IdInfo or
// member slot. Names whose target no longer exists (a removed decoration
// group id) are silently dropped.
func (b *builder) attachNames() []inst.Instruction {
	kept := make([]inst.Instruction, 0, len(b.names))
	for _, in := range b.names {
		switch v := in.(type) {
		case inst.Name:
			info, ok := b.ids[v.Target]
			if !ok {
				continue
			}
			info.names = append(info.names, in)
			kept = append(kept, in)
		case inst.MemberName:
			info, ok := b.ids[v.Type]
			if !ok {
				continue
			}
			if member, ok := memberSlot(info, v.Member); ok {
				member.names = append(member.names, in)
			}
			kept = append(kept, in)
		}
	}
	return kept
}
