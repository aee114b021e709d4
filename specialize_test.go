package spirv

import (
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/spirv/inst"
)

// specShader assembles a module with three specialization constants:
// a bool (index 0), a 32-bit int (index 1) and a 32-bit float (index 2).
func specShader() (*Assembler, [3]inst.Id) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	boolType := a.AddTypeBool()
	intType := a.AddTypeInt(32, true)
	floatType := a.AddTypeFloat(32)

	flag := a.AddSpecConstantTrue(boolType)
	count := a.AddSpecConstant(intType, 4)
	scale := a.AddSpecConstant(floatType, math.Float32bits(1.0))

	a.AddDecorate(flag, DecorationSpecId, 0)
	a.AddDecorate(count, DecorationSpecId, 1)
	a.AddDecorate(scale, DecorationSpecId, 2)

	return a, [3]inst.Id{flag, count, scale}
}

func TestSpecializeOverridesConstant(t *testing.T) {
	a, ids := specShader()
	m := parseWords(t, a.Words())

	m.Specialize(map[uint32]SpecConstantValue{
		1: SpecInt32(64),
	})

	want := inst.Constant{
		ResultType: m.Id(ids[1]).Instruction().(inst.Constant).ResultType,
		Result:     ids[1],
		Value:      []uint32{64},
	}
	got := m.Id(ids[1]).Instruction()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Instruction() = %#v, want %#v", got, want)
	}

	// Constants without an override keep their specializable form.
	if _, ok := m.Id(ids[0]).Instruction().(inst.SpecConstantTrue); !ok {
		t.Errorf("flag = %T, want inst.SpecConstantTrue", m.Id(ids[0]).Instruction())
	}
	if sc, ok := m.Id(ids[2]).Instruction().(inst.SpecConstant); !ok || sc.Value[0] != math.Float32bits(1.0) {
		t.Errorf("scale = %#v, want untouched inst.SpecConstant", m.Id(ids[2]).Instruction())
	}

	// The bucket entry and the id table entry must agree.
	for _, in := range m.Constants() {
		id, _ := inst.ResultID(in)
		if !reflect.DeepEqual(in, m.Id(id).Instruction()) {
			t.Errorf("bucket has %#v, id table has %#v", in, m.Id(id).Instruction())
		}
	}
}

func TestSpecializeBool(t *testing.T) {
	a, ids := specShader()
	m := parseWords(t, a.Words())

	m.Specialize(map[uint32]SpecConstantValue{
		0: SpecBool(false),
	})

	want := inst.ConstantFalse{
		ResultType: m.Id(ids[0]).Instruction().(inst.ConstantFalse).ResultType,
		Result:     ids[0],
	}
	if got := m.Id(ids[0]).Instruction(); got != want {
		t.Errorf("Instruction() = %#v, want %#v", got, want)
	}
}

func TestSpecialize64Bit(t *testing.T) {
	a := NewAssembler(version13)
	a.AddCapability(CapabilityShader)
	a.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	longType := a.AddTypeInt(64, false)
	big := a.AddSpecConstant(longType, 0, 0)
	a.AddDecorate(big, DecorationSpecId, 7)

	m := parseWords(t, a.Words())
	m.Specialize(map[uint32]SpecConstantValue{
		7: SpecUint64(0x1_0000_0003),
	})

	c := m.Id(big).Instruction().(inst.Constant)
	if want := []uint32{3, 1}; !reflect.DeepEqual(c.Value, want) {
		t.Errorf("Value = %v, want %v (low word first)", c.Value, want)
	}
}

func TestSpecializeStripsSpecIdDecorations(t *testing.T) {
	a, ids := specShader()
	m := parseWords(t, a.Words())

	m.Specialize(map[uint32]SpecConstantValue{
		1: SpecInt32(64),
	})

	for _, id := range ids {
		for _, dec := range m.Id(id).Decorations() {
			if d, ok := dec.(inst.Decorate); ok && d.Decoration == inst.DecorationSpecId {
				t.Errorf("%v retains a SpecId decoration", id)
			}
		}
	}
	for _, dec := range m.Decorations() {
		if d, ok := dec.(inst.Decorate); ok && d.Decoration == inst.DecorationSpecId {
			t.Error("Decorations() retains a SpecId decoration")
		}
	}
}

func TestSpecializeIdempotent(t *testing.T) {
	a, ids := specShader()
	m := parseWords(t, a.Words())

	overrides := map[uint32]SpecConstantValue{1: SpecInt32(64)}
	m.Specialize(overrides)
	first := m.Id(ids[1]).Instruction()

	m.Specialize(overrides)
	if got := m.Id(ids[1]).Instruction(); !reflect.DeepEqual(got, first) {
		t.Errorf("second Specialize changed the constant: %#v, was %#v", got, first)
	}
	if n := len(m.Constants()); n != 3 {
		t.Errorf("Constants() has %d entries, want 3", n)
	}
}

func TestSpecializeNoOverrides(t *testing.T) {
	a, ids := specShader()
	m := parseWords(t, a.Words())

	m.Specialize(nil)

	if _, ok := m.Id(ids[0]).Instruction().(inst.SpecConstantTrue); !ok {
		t.Errorf("flag = %T, want inst.SpecConstantTrue", m.Id(ids[0]).Instruction())
	}
	if _, ok := m.Id(ids[1]).Instruction().(inst.SpecConstant); !ok {
		t.Errorf("count = %T, want inst.SpecConstant", m.Id(ids[1]).Instruction())
	}
}

func TestSpecConstantValueEncodings(t *testing.T) {
	tests := []struct {
		name string
		v    SpecConstantValue
		want []uint32
	}{
		{"int32", SpecInt32(-1), []uint32{0xFFFF_FFFF}},
		{"uint32", SpecUint32(7), []uint32{7}},
		{"float32", SpecFloat32(2.0), []uint32{math.Float32bits(2.0)}},
		{"int64", SpecInt64(-1), []uint32{0xFFFF_FFFF, 0xFFFF_FFFF}},
		{"uint64", SpecUint64(1 << 40), []uint32{0, 1 << 8}},
		{"float64", SpecFloat64(0.5), []uint32{0, uint32(math.Float64bits(0.5) >> 32)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.v.words, tt.want) {
				t.Errorf("words = %#v, want %#v", tt.v.words, tt.want)
			}
		})
	}
}
