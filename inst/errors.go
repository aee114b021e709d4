package inst

import (
	"errors"
	"fmt"
)

// Individual decode failure kinds, wrapped by ParseError.
var (
	// ErrUnexpectedEOF means an instruction's declared word count runs past
	// the end of the input.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrMissingOperands means an operand read ran past the instruction's
	// own word window.
	ErrMissingOperands = errors.New("the instruction and its operands require more words than are present in the instruction")

	// ErrLeftoverOperands means operand words remained after the opcode's
	// full layout was decoded.
	ErrLeftoverOperands = errors.New("unparsed operand words remaining")

	// ErrInvalidUTF8 means a nul-terminated string literal is not valid text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in string literal")

	// ErrInvalidWordCount means an instruction header declared a word count
	// of zero. The format requires a minimum of 1.
	ErrInvalidWordCount = errors.New("instruction word count must be at least 1")
)

// UnknownOpcodeError reports an opcode with no known mapping.
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("invalid instruction opcode %d", e.Opcode)
}

// UnknownEnumerantError reports an enumerant value with no known mapping.
type UnknownEnumerantError struct {
	Enum  string
	Value uint32
}

func (e *UnknownEnumerantError) Error() string {
	return fmt.Sprintf("invalid enumerant %d for enum %s", e.Value, e.Enum)
}

// ParseError is a decode failure localized to one instruction.
type ParseError struct {
	// Instruction is the zero-based index of the failing instruction.
	Instruction int
	// Word is the zero-based word offset within the instruction.
	Word int
	// Words holds a copy of the instruction's raw words.
	Words []uint32
	// Err is the underlying failure kind.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at instruction %d, word %d: %v", e.Instruction, e.Word, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
