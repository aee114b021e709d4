// Package spirv parses and analyzes SPIR-V shader binaries.
//
// SPIR-V is the standard intermediate language for GPU shaders, used by
// Vulkan, OpenCL, and other APIs. This package turns a raw binary module
// into a queryable in-memory form: instructions grouped by the format's
// logical-layout sections, a global id table with per-id debug names and
// decorations, and per-function instruction lists with call information.
//
// # Parsing
//
// The high-level entry point takes the raw bytes of a .spv file:
//
//	module, err := spirv.ParseBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, in := range module.EntryPoints() {
//		ep := in.(inst.EntryPoint)
//		fmt.Println(ep.Name)
//	}
//
// Parsing performs structural validation only: ids are defined at most
// once, sections are populated per the module layout rules, and decoration
// groups are fully expanded. It is not a conformance checker; code that
// parses successfully is not necessarily valid SPIR-V.
//
// # Specialization
//
// Specialization constants can be replaced with concrete values after
// parsing, preserving their ids:
//
//	module.Specialize(map[uint32]spirv.SpecConstantValue{
//		0: spirv.SpecUint32(64),
//	})
//
// # Assembling
//
// The package also provides an Assembler for constructing SPIR-V modules
// programmatically:
//
//	asm := spirv.NewAssembler(spirv.Version{Major: 1, Minor: 3})
//	asm.AddCapability(spirv.CapabilityShader)
//	asm.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	data := asm.Bytes()
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
