package spirv

import (
	"errors"
	"fmt"

	"github.com/gogpu/spirv/inst"
)

// ErrInvalidHeader is returned when the module is shorter than the fixed
// header or does not start with the magic number.
var ErrInvalidHeader = errors.New("the SPIR-V module header is invalid")

// DuplicateIdError is returned when two instructions define the same
// result id.
type DuplicateIdError struct {
	Id inst.Id
}

func (e *DuplicateIdError) Error() string {
	return fmt.Sprintf("id %v is assigned more than once", e.Id)
}
