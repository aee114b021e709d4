package spirv

import (
	"math"

	"github.com/gogpu/spirv/inst"
)

// SpecConstantValue is a replacement value for one specialization constant,
// built with the Spec* constructors.
type SpecConstantValue struct {
	isBool  bool
	boolean bool
	words   []uint32
}

// SpecBool overrides a boolean specialization constant.
func SpecBool(v bool) SpecConstantValue {
	return SpecConstantValue{isBool: true, boolean: v}
}

// SpecInt32 overrides a 32-bit signed integer specialization constant.
func SpecInt32(v int32) SpecConstantValue {
	return SpecConstantValue{words: []uint32{uint32(v)}}
}

// SpecUint32 overrides a 32-bit unsigned integer specialization constant.
func SpecUint32(v uint32) SpecConstantValue {
	return SpecConstantValue{words: []uint32{v}}
}

// SpecFloat32 overrides a 32-bit float specialization constant.
func SpecFloat32(v float32) SpecConstantValue {
	return SpecConstantValue{words: []uint32{math.Float32bits(v)}}
}

// SpecInt64 overrides a 64-bit signed integer specialization constant.
func SpecInt64(v int64) SpecConstantValue {
	return SpecConstantValue{words: []uint32{uint32(uint64(v)), uint32(uint64(v) >> 32)}}
}

// SpecUint64 overrides a 64-bit unsigned integer specialization constant.
func SpecUint64(v uint64) SpecConstantValue {
	return SpecConstantValue{words: []uint32{uint32(v), uint32(v >> 32)}}
}

// SpecFloat64 overrides a 64-bit float specialization constant.
func SpecFloat64(v float64) SpecConstantValue {
	return SpecUint64(math.Float64bits(v))
}

// Specialize replaces specialization constant definitions with concrete
// constants carrying the override values, preserving their ids.
//
// overrides maps specialization indices (SpecId decoration values) to
// replacement values. Matched SpecConstant, SpecConstantTrue and
// SpecConstantFalse definitions become Constant, ConstantTrue or
// ConstantFalse; constants without a matching override are left untouched.
// SpecId decorations are stripped from the constants' id table entries and
// from the module decoration bucket.
//
// Specialize requires exclusive access to the module. Running it again
// with a different table applies the new overrides on top of whatever
// remained unreplaced.
func (m *Module) Specialize(overrides map[uint32]SpecConstantValue) {
	constants := make([]inst.Instruction, 0, len(m.constants))
	for _, in := range m.constants {
		constants = append(constants, m.specializeConstant(in, overrides))
	}
	m.constants = constants

	for _, in := range m.constants {
		id, ok := inst.ResultID(in)
		if !ok {
			continue
		}
		if info, ok := m.ids[id]; ok {
			// Both copies of a constant's defining instruction, the bucket
			// entry and the id table entry, must agree.
			info.instruction = in
			info.decorations = stripSpecId(info.decorations)
		} else {
			m.ids[id] = &IdInfo{instruction: in}
			if uint32(id)+1 > m.bound {
				m.bound = uint32(id) + 1
			}
		}
	}

	m.decorations = stripSpecId(m.decorations)
}

func (m *Module) specializeConstant(in inst.Instruction, overrides map[uint32]SpecConstantValue) inst.Instruction {
	switch v := in.(type) {
	case inst.SpecConstantTrue:
		if val, ok := m.override(v.Result, overrides); ok {
			return concreteConstant(v.ResultType, v.Result, val)
		}
	case inst.SpecConstantFalse:
		if val, ok := m.override(v.Result, overrides); ok {
			return concreteConstant(v.ResultType, v.Result, val)
		}
	case inst.SpecConstant:
		if val, ok := m.override(v.Result, overrides); ok {
			return concreteConstant(v.ResultType, v.Result, val)
		}
	}
	return in
}

// override finds the SpecId decoration attached to the constant's id and
// looks its specialization index up in the override table.
func (m *Module) override(id inst.Id, overrides map[uint32]SpecConstantValue) (SpecConstantValue, bool) {
	info, ok := m.ids[id]
	if !ok {
		return SpecConstantValue{}, false
	}
	for _, dec := range info.decorations {
		d, ok := dec.(inst.Decorate)
		if !ok || d.Decoration != inst.DecorationSpecId || len(d.Operands) != 1 {
			continue
		}
		v, ok := overrides[d.Operands[0]]
		return v, ok
	}
	return SpecConstantValue{}, false
}

func concreteConstant(resultType, result inst.Id, v SpecConstantValue) inst.Instruction {
	if v.isBool {
		if v.boolean {
			return inst.ConstantTrue{ResultType: resultType, Result: result}
		}
		return inst.ConstantFalse{ResultType: resultType, Result: result}
	}
	value := make([]uint32, len(v.words))
	copy(value, v.words)
	return inst.Constant{ResultType: resultType, Result: result, Value: value}
}

func stripSpecId(decorations []inst.Instruction) []inst.Instruction {
	out := decorations[:0]
	for _, in := range decorations {
		if d, ok := in.(inst.Decorate); ok && d.Decoration == inst.DecorationSpecId {
			continue
		}
		out = append(out, in)
	}
	return out
}
