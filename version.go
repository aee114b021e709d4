package spirv

import "fmt"

// MagicNumber is the first word of every SPIR-V module.
const MagicNumber = 0x07230203

// headerWords is the fixed length of the module header:
// magic, version, generator, bound, schema.
const headerWords = 5

// Version is a SPIR-V version, unpacked from the header's version word.
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func versionFromWord(w uint32) Version {
	return Version{
		Major: uint8(w >> 16),
		Minor: uint8(w >> 8),
		Patch: uint8(w),
	}
}

func versionToWord(v Version) uint32 {
	return uint32(v.Major)<<16 | uint32(v.Minor)<<8 | uint32(v.Patch)
}
