package spirv

import (
	"errors"
	"testing"

	"github.com/gogpu/spirv/inst"
)

var version13 = Version{Major: 1, Minor: 3}

// minimalShader assembles a fragment shader with one empty entry point.
func minimalShader(a *Assembler) inst.Id {
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	voidType := a.AddTypeVoid()
	fnType := a.AddTypeFunction(voidType)
	fn := a.AddFunction(voidType, FunctionControlNone, fnType)
	a.AddLabel()
	a.AddReturn()
	a.AddFunctionEnd()
	return fn
}

func parseWords(t *testing.T, words []uint32) *Module {
	t.Helper()
	m, err := Parse(words)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func TestParseInvalidHeader(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
	}{
		{"empty", nil},
		{"short", []uint32{MagicNumber, 0x00010300, 0}},
		{"bad magic", []uint32{0x12345678, 0x00010300, 0, 10, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.words); !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("Parse: got %v, want ErrInvalidHeader", err)
			}
		})
	}
}

func TestParseMinimalModule(t *testing.T) {
	a := NewAssembler(version13)
	fn := minimalShader(a)
	a.AddEntryPoint(ExecutionModelFragment, fn, "main")
	a.AddExecutionMode(fn, ExecutionModeOriginUpperLeft)

	m := parseWords(t, a.Words())

	if m.Version() != version13 {
		t.Errorf("Version() = %v, want %v", m.Version(), version13)
	}
	if len(m.Capabilities()) != 1 {
		t.Fatalf("Capabilities() has %d entries, want 1", len(m.Capabilities()))
	}
	if c := m.Capabilities()[0].(inst.Capability); c.Capability != CapabilityShader {
		t.Errorf("capability = %d, want Shader", c.Capability)
	}
	mm, ok := m.MemoryModel().(inst.MemoryModel)
	if !ok {
		t.Fatalf("MemoryModel() = %T, want inst.MemoryModel", m.MemoryModel())
	}
	if mm.AddressingModel != AddressingModelLogical || mm.MemoryModel != MemoryModelGLSL450 {
		t.Errorf("memory model = %+v, want Logical/GLSL450", mm)
	}

	if len(m.EntryPoints()) != 1 {
		t.Fatalf("EntryPoints() has %d entries, want 1", len(m.EntryPoints()))
	}
	ep := m.EntryPoints()[0].(inst.EntryPoint)
	if ep.Name != "main" || ep.EntryPoint != fn {
		t.Errorf("entry point = %+v, want main targeting %v", ep, fn)
	}

	if len(m.Types()) != 2 {
		t.Errorf("Types() has %d entries, want 2", len(m.Types()))
	}
}

func TestParseFunctionWithoutEntryPoint(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	voidType := a.AddTypeVoid()
	fnType := a.AddTypeFunction(voidType)
	fn := a.AddFunction(voidType, FunctionControlNone, fnType)
	a.AddLabel()
	a.AddFunctionEnd()

	m := parseWords(t, a.Words())

	if len(m.Capabilities()) != 1 {
		t.Errorf("Capabilities() has %d entries, want 1", len(m.Capabilities()))
	}
	if m.MemoryModel() == nil {
		t.Error("MemoryModel() is nil, want the module's memory model")
	}
	if len(m.EntryPoints()) != 0 {
		t.Errorf("EntryPoints() has %d entries, want 0", len(m.EntryPoints()))
	}

	info := m.Function(fn)
	if len(info.Instructions()) != 3 {
		t.Errorf("function has %d instructions, want 3", len(info.Instructions()))
	}
	if len(info.CalledFunctions()) != 0 {
		t.Errorf("called set has %d entries, want 0", len(info.CalledFunctions()))
	}
	if info.EntryPoint() != nil {
		t.Errorf("EntryPoint() = %v, want nil", info.EntryPoint())
	}
}

func TestParseRecomputesBound(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	intType := a.AddTypeInt(32, true)
	last := a.AddConstant(intType, 7)

	words := a.Words()
	words[3] = 1000 // header bound is untrusted

	m := parseWords(t, words)
	if want := uint32(last) + 1; m.Bound() != want {
		t.Errorf("Bound() = %d, want %d", m.Bound(), want)
	}
}

func TestParseFunctionPartitioning(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	voidType := a.AddTypeVoid()
	fnType := a.AddTypeFunction(voidType)

	helper := a.AddFunction(voidType, FunctionControlNone, fnType)
	a.AddLabel()
	a.AddReturn()
	a.AddFunctionEnd()

	main := a.AddFunction(voidType, FunctionControlNone, fnType)
	a.AddLabel()
	a.AddFunctionCall(voidType, helper)
	a.AddReturn()
	a.AddFunctionEnd()

	m := parseWords(t, a.Words())

	if len(m.Functions()) != 2 {
		t.Fatalf("Functions() has %d entries, want 2", len(m.Functions()))
	}

	h := m.Function(helper)
	if len(h.Instructions()) != 4 {
		t.Errorf("helper has %d instructions, want 4", len(h.Instructions()))
	}
	if len(h.CalledFunctions()) != 0 {
		t.Errorf("helper calls %d functions, want 0", len(h.CalledFunctions()))
	}
	if _, ok := h.Instructions()[0].(inst.Function); !ok {
		t.Errorf("helper starts with %T, want inst.Function", h.Instructions()[0])
	}
	if _, ok := h.Instructions()[3].(inst.FunctionEnd); !ok {
		t.Errorf("helper ends with %T, want inst.FunctionEnd", h.Instructions()[3])
	}

	c := m.Function(main)
	if _, ok := c.CalledFunctions()[helper]; !ok {
		t.Errorf("main's called set %v does not contain %v", c.CalledFunctions(), helper)
	}

	// Function-body instructions must not leak into module-scope buckets.
	if len(m.Constants()) != 0 {
		t.Errorf("Constants() has %d entries, want 0", len(m.Constants()))
	}
}

func TestParseEntryPointAttachment(t *testing.T) {
	a := NewAssembler(version13)
	fn := minimalShader(a)
	a.AddEntryPoint(ExecutionModelGLCompute, fn, "cs_main")
	a.AddExecutionMode(fn, ExecutionModeLocalSize, 8, 8, 1)

	m := parseWords(t, a.Words())
	info := m.Function(fn)

	ep, ok := info.EntryPoint().(inst.EntryPoint)
	if !ok {
		t.Fatalf("EntryPoint() = %T, want inst.EntryPoint", info.EntryPoint())
	}
	if ep.Name != "cs_main" {
		t.Errorf("entry point name = %q, want %q", ep.Name, "cs_main")
	}
	if len(info.ExecutionModes()) != 1 {
		t.Fatalf("ExecutionModes() has %d entries, want 1", len(info.ExecutionModes()))
	}
	em := info.ExecutionModes()[0].(inst.ExecutionMode)
	if em.Mode != ExecutionModeLocalSize {
		t.Errorf("execution mode = %d, want LocalSize", em.Mode)
	}
	if want := []uint32{8, 8, 1}; len(em.Operands) != 3 || em.Operands[0] != want[0] {
		t.Errorf("execution mode operands = %v, want %v", em.Operands, want)
	}
}

func TestParseDuplicateId(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	intType := a.AddTypeInt(32, false)
	dup := a.AddConstant(intType, 1)
	a.emit(&a.types, inst.OpConstant, uint32(intType), uint32(dup), 2)

	_, err := Parse(a.Words())
	var de *DuplicateIdError
	if !errors.As(err, &de) {
		t.Fatalf("Parse: got %v, want *DuplicateIdError", err)
	}
	if de.Id != dup {
		t.Errorf("duplicate id = %v, want %v", de.Id, dup)
	}
}

func TestParseDropsLineMarkers(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	voidType := a.AddTypeVoid()
	fnType := a.AddTypeFunction(voidType)
	fn := a.AddFunction(voidType, FunctionControlNone, fnType)
	a.AddLabel()
	a.AddLine(inst.Id(99), 10, 4)
	a.AddReturn()
	a.AddNoLine()
	a.AddFunctionEnd()

	m := parseWords(t, a.Words())
	body := m.Function(fn).Instructions()
	if len(body) != 4 {
		t.Errorf("function body has %d instructions, want 4", len(body))
	}
	for _, in := range body {
		switch in.(type) {
		case inst.Line, inst.NoLine:
			t.Errorf("function body retains %T", in)
		}
	}
}

func TestParseAttachesNames(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	floatType := a.AddTypeFloat(32)
	structType := a.AddTypeStruct(floatType, floatType)
	a.AddName(structType, "Uniforms")
	a.AddMemberName(structType, 0, "scale")
	a.AddMemberName(structType, 1, "offset")
	a.AddMemberName(structType, 9, "phantom") // out of range, kept but unattached
	a.AddName(inst.Id(200), "dangling")       // target never defined, dropped

	m := parseWords(t, a.Words())
	info := m.Id(structType)

	if len(info.Names()) != 1 {
		t.Fatalf("Names() has %d entries, want 1", len(info.Names()))
	}
	if n := info.Names()[0].(inst.Name); n.Name != "Uniforms" {
		t.Errorf("name = %q, want %q", n.Name, "Uniforms")
	}

	members := info.Members()
	if len(members) != 2 {
		t.Fatalf("Members() has %d entries, want 2", len(members))
	}
	if n := members[1].Names()[0].(inst.MemberName); n.Name != "offset" {
		t.Errorf("member 1 name = %q, want %q", n.Name, "offset")
	}

	// The in-range member names plus the out-of-range one survive in the
	// bucket; the name with an undefined target does not.
	for _, in := range m.Names() {
		if n, ok := in.(inst.Name); ok && n.Name == "dangling" {
			t.Error("Names() retains a name with an undefined target")
		}
	}
	if len(m.Names()) != 4 {
		t.Errorf("Names() has %d entries, want 4", len(m.Names()))
	}
}

func TestParseClassifiesGenericInstructions(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	intType := a.AddTypeInt(32, false)
	vecType := a.AddTypeVector(intType, 4)
	ptrType := a.AddTypePointer(StorageClassUniform, vecType)
	v := a.AddVariable(ptrType, StorageClassUniform)

	m := parseWords(t, a.Words())

	// OpTypeInt, OpTypeVector and OpTypePointer have no dedicated decoded
	// form but still land in the type bucket.
	if len(m.Types()) != 3 {
		t.Errorf("Types() has %d entries, want 3", len(m.Types()))
	}
	if len(m.GlobalVariables()) != 1 {
		t.Fatalf("GlobalVariables() has %d entries, want 1", len(m.GlobalVariables()))
	}
	got := m.GlobalVariables()[0].(inst.Variable)
	if got.Result != v || got.StorageClass != StorageClassUniform {
		t.Errorf("global variable = %+v, want result %v in Uniform", got, v)
	}

	g, ok := m.Id(intType).Instruction().(inst.Generic)
	if !ok {
		t.Fatalf("Instruction() = %T, want inst.Generic", m.Id(intType).Instruction())
	}
	if g.Op != inst.OpTypeInt || g.Result != intType {
		t.Errorf("generic = %+v, want OpTypeInt defining %v", g, intType)
	}
}

func TestParseBytes(t *testing.T) {
	a := NewAssembler(version13)
	fn := minimalShader(a)
	a.AddEntryPoint(ExecutionModelFragment, fn, "main")

	m, err := ParseBytes(a.Bytes())
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if len(m.Functions()) != 1 {
		t.Errorf("Functions() has %d entries, want 1", len(m.Functions()))
	}

	if _, err := ParseBytes(a.Bytes()[:6]); !errors.Is(err, ErrNotMultipleOf4) {
		t.Errorf("ParseBytes on truncated input: got %v, want ErrNotMultipleOf4", err)
	}
}
