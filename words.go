package spirv

import (
	"encoding/binary"
	"errors"
	"unsafe"
)

// ErrNotMultipleOf4 is returned by BytesToWords when the byte buffer cannot
// frame whole 32-bit words.
var ErrNotMultipleOf4 = errors.New("the length of the provided buffer is not a multiple of 4")

var hostLittleEndian = func() bool {
	var probe uint16 = 1
	return *(*byte)(unsafe.Pointer(&probe)) == 1
}()

// BytesToWords converts SPIR-V bytes to words. If necessary, the byte order
// is swapped from little-endian to native-endian.
//
// On little-endian hosts the returned slice aliases data when data is
// 4-byte aligned; otherwise a fresh slice is allocated. Callers must not
// modify data while the result is in use.
func BytesToWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, ErrNotMultipleOf4
	}
	if len(data) == 0 {
		return nil, nil
	}

	if hostLittleEndian && uintptr(unsafe.Pointer(&data[0]))%unsafe.Alignof(uint32(0)) == 0 {
		return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4), nil
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

func wordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
