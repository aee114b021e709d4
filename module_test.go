package spirv

import (
	"testing"

	"github.com/gogpu/spirv/inst"
)

func TestModuleIdPanicsOnUnknownId(t *testing.T) {
	a := NewAssembler(version13)
	fn := minimalShader(a)
	m := parseWords(t, a.Words())

	defer func() {
		if recover() == nil {
			t.Error("Id() did not panic for an undefined id")
		}
	}()
	_ = m.Id(inst.Id(uint32(fn) + 100))
}

func TestModuleFunctionPanicsOnNonFunctionId(t *testing.T) {
	a := NewAssembler(version13)
	minimalShader(a)
	m := parseWords(t, a.Words())

	defer func() {
		if recover() == nil {
			t.Error("Function() did not panic for a non-function id")
		}
	}()
	_ = m.Function(inst.Id(1)) // a type id, not a function
}
