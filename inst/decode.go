package inst

import (
	"io"
	"unicode/utf8"
)

// Decoder turns a word stream into a sequence of decoded instructions.
//
// Next returns instructions one at a time and io.EOF once the stream is
// exhausted. The first decode failure is final: decoding does not attempt to
// resynchronize, and a caller wanting to re-iterate constructs a new Decoder
// over the same words.
type Decoder struct {
	words []uint32
	index int
}

// NewDecoder creates a decoder over an instruction word stream. The stream
// must not include the module header.
func NewDecoder(words []uint32) *Decoder {
	return &Decoder{words: words}
}

// Next decodes the next instruction, or returns io.EOF at the end of the
// stream. Any other error is a *ParseError.
func (d *Decoder) Next() (Instruction, error) {
	if len(d.words) == 0 {
		return nil, io.EOF
	}

	header := d.words[0]
	op := OpCode(header & 0xffff)
	count := int(header >> 16)

	if count < 1 {
		return nil, &ParseError{
			Instruction: d.index,
			Word:        0,
			Words:       cloneWords(d.words[:1]),
			Err:         ErrInvalidWordCount,
		}
	}
	if count > len(d.words) {
		return nil, &ParseError{
			Instruction: d.index,
			Word:        len(d.words),
			Words:       cloneWords(d.words),
			Err:         ErrUnexpectedEOF,
		}
	}

	r := &reader{words: d.words[:count:count], pos: 1, instruction: d.index}
	in, err := decodeOne(op, r)
	if err != nil {
		return nil, err
	}
	if !r.empty() {
		return nil, r.fail(r.pos, ErrLeftoverOperands)
	}

	d.words = d.words[count:]
	d.index++
	return in, nil
}

// reader walks the fixed word window of a single instruction.
type reader struct {
	words       []uint32
	pos         int
	instruction int
}

func (r *reader) empty() bool {
	return r.pos >= len(r.words)
}

func (r *reader) fail(word int, err error) *ParseError {
	return &ParseError{
		Instruction: r.instruction,
		Word:        word,
		Words:       cloneWords(r.words),
		Err:         err,
	}
}

func (r *reader) word() (uint32, error) {
	if r.pos >= len(r.words) {
		return 0, r.fail(r.pos, ErrMissingOperands)
	}
	w := r.words[r.pos]
	r.pos++
	return w, nil
}

func (r *reader) id() (Id, error) {
	w, err := r.word()
	return Id(w), err
}

func (r *reader) enum(name string, table map[uint32]string) (uint32, error) {
	w, err := r.word()
	if err != nil {
		return 0, err
	}
	if _, ok := table[w]; !ok {
		return 0, r.fail(r.pos-1, &UnknownEnumerantError{Enum: name, Value: w})
	}
	return w, nil
}

// str reads a nul-terminated string packed little-endian into words.
func (r *reader) str() (string, error) {
	var buf []byte
	for {
		w, err := r.word()
		if err != nil {
			return "", err
		}
		done := false
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				done = true
				break
			}
			buf = append(buf, b)
		}
		if done {
			break
		}
	}
	if !utf8.Valid(buf) {
		return "", r.fail(r.pos-1, ErrInvalidUTF8)
	}
	return string(buf), nil
}

func (r *reader) rest() []uint32 {
	out := cloneWords(r.words[r.pos:])
	r.pos = len(r.words)
	return out
}

func (r *reader) restIds() []Id {
	rest := r.words[r.pos:]
	r.pos = len(r.words)
	if len(rest) == 0 {
		return nil
	}
	out := make([]Id, len(rest))
	for i, w := range rest {
		out[i] = Id(w)
	}
	return out
}

func cloneWords(words []uint32) []uint32 {
	if len(words) == 0 {
		return nil
	}
	out := make([]uint32, len(words))
	copy(out, words)
	return out
}

//nolint:gocognit,gocyclo,cyclop,funlen // one case per structural opcode
func decodeOne(op OpCode, r *reader) (Instruction, error) {
	switch op {
	case OpCapability:
		c, err := r.enum("Capability", capabilityNames)
		if err != nil {
			return nil, err
		}
		return Capability{Capability: c}, nil

	case OpExtension:
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		return Extension{Name: name}, nil

	case OpExtInstImport:
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		return ExtInstImport{Result: result, Name: name}, nil

	case OpMemoryModel:
		addr, err := r.enum("AddressingModel", addressingModelNames)
		if err != nil {
			return nil, err
		}
		mem, err := r.enum("MemoryModel", memoryModelNames)
		if err != nil {
			return nil, err
		}
		return MemoryModel{AddressingModel: addr, MemoryModel: mem}, nil

	case OpEntryPoint:
		model, err := r.enum("ExecutionModel", executionModelNames)
		if err != nil {
			return nil, err
		}
		entry, err := r.id()
		if err != nil {
			return nil, err
		}
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		return EntryPoint{ExecutionModel: model, EntryPoint: entry, Name: name, Interface: r.restIds()}, nil

	case OpExecutionMode:
		entry, err := r.id()
		if err != nil {
			return nil, err
		}
		mode, err := r.enum("ExecutionMode", executionModeNames)
		if err != nil {
			return nil, err
		}
		return ExecutionMode{EntryPoint: entry, Mode: mode, Operands: r.rest()}, nil

	case OpExecutionModeId:
		entry, err := r.id()
		if err != nil {
			return nil, err
		}
		mode, err := r.enum("ExecutionMode", executionModeNames)
		if err != nil {
			return nil, err
		}
		return ExecutionModeId{EntryPoint: entry, Mode: mode, Operands: r.restIds()}, nil

	case OpName:
		target, err := r.id()
		if err != nil {
			return nil, err
		}
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		return Name{Target: target, Name: name}, nil

	case OpMemberName:
		ty, err := r.id()
		if err != nil {
			return nil, err
		}
		member, err := r.word()
		if err != nil {
			return nil, err
		}
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		return MemberName{Type: ty, Member: member, Name: name}, nil

	case OpLine:
		file, err := r.id()
		if err != nil {
			return nil, err
		}
		line, err := r.word()
		if err != nil {
			return nil, err
		}
		column, err := r.word()
		if err != nil {
			return nil, err
		}
		return Line{File: file, Line: line, Column: column}, nil

	case OpNoLine:
		return NoLine{}, nil

	case OpDecorate:
		target, err := r.id()
		if err != nil {
			return nil, err
		}
		dec, err := r.enum("Decoration", decorationNames)
		if err != nil {
			return nil, err
		}
		return Decorate{Target: target, Decoration: dec, Operands: r.rest()}, nil

	case OpDecorateId:
		target, err := r.id()
		if err != nil {
			return nil, err
		}
		dec, err := r.enum("Decoration", decorationNames)
		if err != nil {
			return nil, err
		}
		return DecorateId{Target: target, Decoration: dec, Operands: r.restIds()}, nil

	case OpDecorateString:
		target, err := r.id()
		if err != nil {
			return nil, err
		}
		dec, err := r.enum("Decoration", decorationNames)
		if err != nil {
			return nil, err
		}
		value, err := r.str()
		if err != nil {
			return nil, err
		}
		return DecorateString{Target: target, Decoration: dec, Value: value}, nil

	case OpMemberDecorate:
		structType, err := r.id()
		if err != nil {
			return nil, err
		}
		member, err := r.word()
		if err != nil {
			return nil, err
		}
		dec, err := r.enum("Decoration", decorationNames)
		if err != nil {
			return nil, err
		}
		return MemberDecorate{StructType: structType, Member: member, Decoration: dec, Operands: r.rest()}, nil

	case OpMemberDecorateString:
		structType, err := r.id()
		if err != nil {
			return nil, err
		}
		member, err := r.word()
		if err != nil {
			return nil, err
		}
		dec, err := r.enum("Decoration", decorationNames)
		if err != nil {
			return nil, err
		}
		value, err := r.str()
		if err != nil {
			return nil, err
		}
		return MemberDecorateString{StructType: structType, Member: member, Decoration: dec, Value: value}, nil

	case OpDecorationGroup:
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		return DecorationGroup{Result: result}, nil

	case OpGroupDecorate:
		group, err := r.id()
		if err != nil {
			return nil, err
		}
		return GroupDecorate{Group: group, Targets: r.restIds()}, nil

	case OpGroupMemberDecorate:
		group, err := r.id()
		if err != nil {
			return nil, err
		}
		var targets []MemberTarget
		for !r.empty() {
			ty, err := r.id()
			if err != nil {
				return nil, err
			}
			member, err := r.word()
			if err != nil {
				return nil, err
			}
			targets = append(targets, MemberTarget{Type: ty, Member: member})
		}
		return GroupMemberDecorate{Group: group, Targets: targets}, nil

	case OpTypeStruct:
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		return TypeStruct{Result: result, MemberTypes: r.restIds()}, nil

	case OpConstantTrue, OpConstantFalse, OpSpecConstantTrue, OpSpecConstantFalse:
		resultType, err := r.id()
		if err != nil {
			return nil, err
		}
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		switch op {
		case OpConstantTrue:
			return ConstantTrue{ResultType: resultType, Result: result}, nil
		case OpConstantFalse:
			return ConstantFalse{ResultType: resultType, Result: result}, nil
		case OpSpecConstantTrue:
			return SpecConstantTrue{ResultType: resultType, Result: result}, nil
		default:
			return SpecConstantFalse{ResultType: resultType, Result: result}, nil
		}

	case OpConstant, OpSpecConstant:
		resultType, err := r.id()
		if err != nil {
			return nil, err
		}
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		value := r.rest()
		if op == OpConstant {
			return Constant{ResultType: resultType, Result: result, Value: value}, nil
		}
		return SpecConstant{ResultType: resultType, Result: result, Value: value}, nil

	case OpVariable:
		resultType, err := r.id()
		if err != nil {
			return nil, err
		}
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		storage, err := r.enum("StorageClass", storageClassNames)
		if err != nil {
			return nil, err
		}
		v := Variable{ResultType: resultType, Result: result, StorageClass: storage}
		if !r.empty() {
			if v.Initializer, err = r.id(); err != nil {
				return nil, err
			}
		}
		return v, nil

	case OpFunction:
		resultType, err := r.id()
		if err != nil {
			return nil, err
		}
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		// FunctionControl is a bitmask, not an enumerant.
		control, err := r.word()
		if err != nil {
			return nil, err
		}
		fnType, err := r.id()
		if err != nil {
			return nil, err
		}
		return Function{ResultType: resultType, Result: result, FunctionControl: control, FunctionType: fnType}, nil

	case OpFunctionEnd:
		return FunctionEnd{}, nil

	case OpFunctionCall:
		resultType, err := r.id()
		if err != nil {
			return nil, err
		}
		result, err := r.id()
		if err != nil {
			return nil, err
		}
		fn, err := r.id()
		if err != nil {
			return nil, err
		}
		return FunctionCall{ResultType: resultType, Result: result, Function: fn, Arguments: r.restIds()}, nil

	default:
		return decodeGeneric(op, r)
	}
}

func decodeGeneric(op OpCode, r *reader) (Instruction, error) {
	info, ok := opcodes[op]
	if !ok {
		return nil, r.fail(0, &UnknownOpcodeError{Opcode: uint16(op)})
	}

	g := Generic{Op: op}
	var err error
	switch info.lay {
	case layResult:
		if g.Result, err = r.id(); err != nil {
			return nil, err
		}
	case layTypeResult:
		if g.ResultType, err = r.id(); err != nil {
			return nil, err
		}
		if g.Result, err = r.id(); err != nil {
			return nil, err
		}
	}
	g.Operands = r.rest()
	return g, nil
}
