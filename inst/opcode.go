package inst

import "fmt"

// OpCode identifies a SPIR-V instruction.
type OpCode uint16

// Opcodes referenced by name elsewhere in the package.
const (
	OpNop                   OpCode = 0
	OpUndef                 OpCode = 1
	OpSourceContinued       OpCode = 2
	OpSource                OpCode = 3
	OpSourceExtension       OpCode = 4
	OpName                  OpCode = 5
	OpMemberName            OpCode = 6
	OpString                OpCode = 7
	OpLine                  OpCode = 8
	OpExtension             OpCode = 10
	OpExtInstImport         OpCode = 11
	OpExtInst               OpCode = 12
	OpMemoryModel           OpCode = 14
	OpEntryPoint            OpCode = 15
	OpExecutionMode         OpCode = 16
	OpCapability            OpCode = 17
	OpTypeVoid              OpCode = 19
	OpTypeBool              OpCode = 20
	OpTypeInt               OpCode = 21
	OpTypeFloat             OpCode = 22
	OpTypeVector            OpCode = 23
	OpTypeMatrix            OpCode = 24
	OpTypeImage             OpCode = 25
	OpTypeSampler           OpCode = 26
	OpTypeSampledImage      OpCode = 27
	OpTypeArray             OpCode = 28
	OpTypeRuntimeArray      OpCode = 29
	OpTypeStruct            OpCode = 30
	OpTypeOpaque            OpCode = 31
	OpTypePointer           OpCode = 32
	OpTypeFunction          OpCode = 33
	OpTypeForwardPointer    OpCode = 39
	OpConstantTrue          OpCode = 41
	OpConstantFalse         OpCode = 42
	OpConstant              OpCode = 43
	OpConstantComposite     OpCode = 44
	OpConstantSampler       OpCode = 45
	OpConstantNull          OpCode = 46
	OpSpecConstantTrue      OpCode = 48
	OpSpecConstantFalse     OpCode = 49
	OpSpecConstant          OpCode = 50
	OpSpecConstantComposite OpCode = 51
	OpSpecConstantOp        OpCode = 52
	OpFunction              OpCode = 54
	OpFunctionParameter     OpCode = 55
	OpFunctionEnd           OpCode = 56
	OpFunctionCall          OpCode = 57
	OpVariable              OpCode = 59
	OpLoad                  OpCode = 61
	OpStore                 OpCode = 62
	OpAccessChain           OpCode = 65
	OpDecorate              OpCode = 71
	OpMemberDecorate        OpCode = 72
	OpDecorationGroup       OpCode = 73
	OpGroupDecorate         OpCode = 74
	OpGroupMemberDecorate   OpCode = 75
	OpIAdd                  OpCode = 128
	OpLabel                 OpCode = 248
	OpBranch                OpCode = 249
	OpReturn                OpCode = 253
	OpReturnValue           OpCode = 254
	OpNoLine                OpCode = 317
	OpModuleProcessed       OpCode = 330
	OpExecutionModeId       OpCode = 331
	OpDecorateId            OpCode = 332
	OpDecorateString        OpCode = 5632
	OpMemberDecorateString  OpCode = 5633
)

// String returns the standard assembly name of the opcode.
func (op OpCode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return fmt.Sprintf("Op%d", uint16(op))
}

// Kind is the logical-layout section family an opcode belongs to when it
// appears outside a function body. KindNone opcodes are not bucketed.
type Kind uint8

const (
	KindNone Kind = iota
	KindCapability
	KindExtension
	KindExtInstImport
	KindMemoryModel
	KindEntryPoint
	KindExecutionMode
	KindName
	KindDecoration
	KindType
	KindConstant
	KindVariable
)

// operand layout for the words following the opcode word
type layout uint8

const (
	layNone       layout = iota // no result
	layResult                   // word 1 is the result id
	layTypeResult               // word 1 is the result type, word 2 the result id
)

type opInfo struct {
	name string
	lay  layout
	kind Kind
}

// opcodes maps every known opcode to its name, result layout and section
// family. Opcodes missing from this table fail decoding with an
// unknown-opcode error.
var opcodes = map[OpCode]opInfo{
	0:  {"OpNop", layNone, KindNone},
	1:  {"OpUndef", layTypeResult, KindConstant},
	2:  {"OpSourceContinued", layNone, KindNone},
	3:  {"OpSource", layNone, KindNone},
	4:  {"OpSourceExtension", layNone, KindNone},
	5:  {"OpName", layNone, KindName},
	6:  {"OpMemberName", layNone, KindName},
	7:  {"OpString", layResult, KindNone},
	8:  {"OpLine", layNone, KindNone},
	10: {"OpExtension", layNone, KindExtension},
	11: {"OpExtInstImport", layResult, KindExtInstImport},
	12: {"OpExtInst", layTypeResult, KindNone},
	14: {"OpMemoryModel", layNone, KindMemoryModel},
	15: {"OpEntryPoint", layNone, KindEntryPoint},
	16: {"OpExecutionMode", layNone, KindExecutionMode},
	17: {"OpCapability", layNone, KindCapability},
	19: {"OpTypeVoid", layResult, KindType},
	20: {"OpTypeBool", layResult, KindType},
	21: {"OpTypeInt", layResult, KindType},
	22: {"OpTypeFloat", layResult, KindType},
	23: {"OpTypeVector", layResult, KindType},
	24: {"OpTypeMatrix", layResult, KindType},
	25: {"OpTypeImage", layResult, KindType},
	26: {"OpTypeSampler", layResult, KindType},
	27: {"OpTypeSampledImage", layResult, KindType},
	28: {"OpTypeArray", layResult, KindType},
	29: {"OpTypeRuntimeArray", layResult, KindType},
	30: {"OpTypeStruct", layResult, KindType},
	31: {"OpTypeOpaque", layResult, KindType},
	32: {"OpTypePointer", layResult, KindType},
	33: {"OpTypeFunction", layResult, KindType},
	34: {"OpTypeEvent", layResult, KindType},
	35: {"OpTypeDeviceEvent", layResult, KindType},
	36: {"OpTypeReserveId", layResult, KindType},
	37: {"OpTypeQueue", layResult, KindType},
	38: {"OpTypePipe", layResult, KindType},
	39: {"OpTypeForwardPointer", layNone, KindType},
	41: {"OpConstantTrue", layTypeResult, KindConstant},
	42: {"OpConstantFalse", layTypeResult, KindConstant},
	43: {"OpConstant", layTypeResult, KindConstant},
	44: {"OpConstantComposite", layTypeResult, KindConstant},
	45: {"OpConstantSampler", layTypeResult, KindConstant},
	46: {"OpConstantNull", layTypeResult, KindConstant},
	48: {"OpSpecConstantTrue", layTypeResult, KindConstant},
	49: {"OpSpecConstantFalse", layTypeResult, KindConstant},
	50: {"OpSpecConstant", layTypeResult, KindConstant},
	51: {"OpSpecConstantComposite", layTypeResult, KindConstant},
	52: {"OpSpecConstantOp", layTypeResult, KindConstant},
	54: {"OpFunction", layTypeResult, KindNone},
	55: {"OpFunctionParameter", layTypeResult, KindNone},
	56: {"OpFunctionEnd", layNone, KindNone},
	57: {"OpFunctionCall", layTypeResult, KindNone},
	59: {"OpVariable", layTypeResult, KindVariable},
	60: {"OpImageTexelPointer", layTypeResult, KindNone},
	61: {"OpLoad", layTypeResult, KindNone},
	62: {"OpStore", layNone, KindNone},
	63: {"OpCopyMemory", layNone, KindNone},
	64: {"OpCopyMemorySized", layNone, KindNone},
	65: {"OpAccessChain", layTypeResult, KindNone},
	66: {"OpInBoundsAccessChain", layTypeResult, KindNone},
	67: {"OpPtrAccessChain", layTypeResult, KindNone},
	68: {"OpArrayLength", layTypeResult, KindNone},
	69: {"OpGenericPtrMemSemantics", layTypeResult, KindNone},
	70: {"OpInBoundsPtrAccessChain", layTypeResult, KindNone},
	71: {"OpDecorate", layNone, KindDecoration},
	72: {"OpMemberDecorate", layNone, KindDecoration},
	73: {"OpDecorationGroup", layResult, KindDecoration},
	74: {"OpGroupDecorate", layNone, KindDecoration},
	75: {"OpGroupMemberDecorate", layNone, KindDecoration},
	77: {"OpVectorExtractDynamic", layTypeResult, KindNone},
	78: {"OpVectorInsertDynamic", layTypeResult, KindNone},
	79: {"OpVectorShuffle", layTypeResult, KindNone},
	80: {"OpCompositeConstruct", layTypeResult, KindNone},
	81: {"OpCompositeExtract", layTypeResult, KindNone},
	82: {"OpCompositeInsert", layTypeResult, KindNone},
	83: {"OpCopyObject", layTypeResult, KindNone},
	84: {"OpTranspose", layTypeResult, KindNone},
	86: {"OpSampledImage", layTypeResult, KindNone},
	87: {"OpImageSampleImplicitLod", layTypeResult, KindNone},
	88: {"OpImageSampleExplicitLod", layTypeResult, KindNone},
	89: {"OpImageSampleDrefImplicitLod", layTypeResult, KindNone},
	90: {"OpImageSampleDrefExplicitLod", layTypeResult, KindNone},
	91: {"OpImageSampleProjImplicitLod", layTypeResult, KindNone},
	92: {"OpImageSampleProjExplicitLod", layTypeResult, KindNone},
	93: {"OpImageSampleProjDrefImplicitLod", layTypeResult, KindNone},
	94: {"OpImageSampleProjDrefExplicitLod", layTypeResult, KindNone},
	95: {"OpImageFetch", layTypeResult, KindNone},
	96: {"OpImageGather", layTypeResult, KindNone},
	97: {"OpImageDrefGather", layTypeResult, KindNone},
	98: {"OpImageRead", layTypeResult, KindNone},
	99: {"OpImageWrite", layNone, KindNone},

	100: {"OpImage", layTypeResult, KindNone},
	101: {"OpImageQueryFormat", layTypeResult, KindNone},
	102: {"OpImageQueryOrder", layTypeResult, KindNone},
	103: {"OpImageQuerySizeLod", layTypeResult, KindNone},
	104: {"OpImageQuerySize", layTypeResult, KindNone},
	105: {"OpImageQueryLod", layTypeResult, KindNone},
	106: {"OpImageQueryLevels", layTypeResult, KindNone},
	107: {"OpImageQuerySamples", layTypeResult, KindNone},
	109: {"OpConvertFToU", layTypeResult, KindNone},
	110: {"OpConvertFToS", layTypeResult, KindNone},
	111: {"OpConvertSToF", layTypeResult, KindNone},
	112: {"OpConvertUToF", layTypeResult, KindNone},
	113: {"OpUConvert", layTypeResult, KindNone},
	114: {"OpSConvert", layTypeResult, KindNone},
	115: {"OpFConvert", layTypeResult, KindNone},
	116: {"OpQuantizeToF16", layTypeResult, KindNone},
	117: {"OpConvertPtrToU", layTypeResult, KindNone},
	118: {"OpSatConvertSToU", layTypeResult, KindNone},
	119: {"OpSatConvertUToS", layTypeResult, KindNone},
	120: {"OpConvertUToPtr", layTypeResult, KindNone},
	121: {"OpPtrCastToGeneric", layTypeResult, KindNone},
	122: {"OpGenericCastToPtr", layTypeResult, KindNone},
	123: {"OpGenericCastToPtrExplicit", layTypeResult, KindNone},
	124: {"OpBitcast", layTypeResult, KindNone},
	126: {"OpSNegate", layTypeResult, KindNone},
	127: {"OpFNegate", layTypeResult, KindNone},
	128: {"OpIAdd", layTypeResult, KindNone},
	129: {"OpFAdd", layTypeResult, KindNone},
	130: {"OpISub", layTypeResult, KindNone},
	131: {"OpFSub", layTypeResult, KindNone},
	132: {"OpIMul", layTypeResult, KindNone},
	133: {"OpFMul", layTypeResult, KindNone},
	134: {"OpUDiv", layTypeResult, KindNone},
	135: {"OpSDiv", layTypeResult, KindNone},
	136: {"OpFDiv", layTypeResult, KindNone},
	137: {"OpUMod", layTypeResult, KindNone},
	138: {"OpSRem", layTypeResult, KindNone},
	139: {"OpSMod", layTypeResult, KindNone},
	140: {"OpFRem", layTypeResult, KindNone},
	141: {"OpFMod", layTypeResult, KindNone},
	142: {"OpVectorTimesScalar", layTypeResult, KindNone},
	143: {"OpMatrixTimesScalar", layTypeResult, KindNone},
	144: {"OpVectorTimesMatrix", layTypeResult, KindNone},
	145: {"OpMatrixTimesVector", layTypeResult, KindNone},
	146: {"OpMatrixTimesMatrix", layTypeResult, KindNone},
	147: {"OpOuterProduct", layTypeResult, KindNone},
	148: {"OpDot", layTypeResult, KindNone},
	149: {"OpIAddCarry", layTypeResult, KindNone},
	150: {"OpISubBorrow", layTypeResult, KindNone},
	151: {"OpUMulExtended", layTypeResult, KindNone},
	152: {"OpSMulExtended", layTypeResult, KindNone},
	164: {"OpAny", layTypeResult, KindNone},
	165: {"OpAll", layTypeResult, KindNone},
	166: {"OpIsNan", layTypeResult, KindNone},
	167: {"OpIsInf", layTypeResult, KindNone},
	168: {"OpIsFinite", layTypeResult, KindNone},
	169: {"OpIsNormal", layTypeResult, KindNone},
	170: {"OpSignBitSet", layTypeResult, KindNone},
	171: {"OpLessOrGreater", layTypeResult, KindNone},
	172: {"OpOrdered", layTypeResult, KindNone},
	173: {"OpUnordered", layTypeResult, KindNone},
	174: {"OpLogicalEqual", layTypeResult, KindNone},
	175: {"OpLogicalNotEqual", layTypeResult, KindNone},
	176: {"OpLogicalOr", layTypeResult, KindNone},
	177: {"OpLogicalAnd", layTypeResult, KindNone},
	178: {"OpLogicalNot", layTypeResult, KindNone},
	179: {"OpSelect", layTypeResult, KindNone},
	180: {"OpIEqual", layTypeResult, KindNone},
	181: {"OpINotEqual", layTypeResult, KindNone},
	182: {"OpUGreaterThan", layTypeResult, KindNone},
	183: {"OpSGreaterThan", layTypeResult, KindNone},
	184: {"OpUGreaterThanEqual", layTypeResult, KindNone},
	185: {"OpSGreaterThanEqual", layTypeResult, KindNone},
	186: {"OpULessThan", layTypeResult, KindNone},
	187: {"OpSLessThan", layTypeResult, KindNone},
	188: {"OpULessThanEqual", layTypeResult, KindNone},
	189: {"OpSLessThanEqual", layTypeResult, KindNone},
	190: {"OpFOrdEqual", layTypeResult, KindNone},
	191: {"OpFUnordEqual", layTypeResult, KindNone},
	192: {"OpFOrdNotEqual", layTypeResult, KindNone},
	193: {"OpFUnordNotEqual", layTypeResult, KindNone},
	194: {"OpShiftRightLogical", layTypeResult, KindNone},
	195: {"OpShiftRightArithmetic", layTypeResult, KindNone},
	196: {"OpShiftLeftLogical", layTypeResult, KindNone},
	197: {"OpBitwiseOr", layTypeResult, KindNone},
	198: {"OpBitwiseXor", layTypeResult, KindNone},
	199: {"OpBitwiseAnd", layTypeResult, KindNone},
	200: {"OpNot", layTypeResult, KindNone},
	201: {"OpBitFieldInsert", layTypeResult, KindNone},
	202: {"OpBitFieldSExtract", layTypeResult, KindNone},
	203: {"OpBitFieldUExtract", layTypeResult, KindNone},
	204: {"OpBitReverse", layTypeResult, KindNone},
	205: {"OpBitCount", layTypeResult, KindNone},
	224: {"OpControlBarrier", layNone, KindNone},
	225: {"OpMemoryBarrier", layNone, KindNone},
	245: {"OpPhi", layTypeResult, KindNone},
	246: {"OpLoopMerge", layNone, KindNone},
	247: {"OpSelectionMerge", layNone, KindNone},
	248: {"OpLabel", layResult, KindNone},
	249: {"OpBranch", layNone, KindNone},
	250: {"OpBranchConditional", layNone, KindNone},
	251: {"OpSwitch", layNone, KindNone},
	252: {"OpKill", layNone, KindNone},
	253: {"OpReturn", layNone, KindNone},
	254: {"OpReturnValue", layNone, KindNone},
	255: {"OpUnreachable", layNone, KindNone},
	256: {"OpLifetimeStart", layNone, KindNone},
	257: {"OpLifetimeStop", layNone, KindNone},

	317:  {"OpNoLine", layNone, KindNone},
	322:  {"OpTypePipeStorage", layResult, KindType},
	323:  {"OpConstantPipeStorage", layTypeResult, KindConstant},
	327:  {"OpTypeNamedBarrier", layResult, KindType},
	330:  {"OpModuleProcessed", layNone, KindNone},
	331:  {"OpExecutionModeId", layNone, KindExecutionMode},
	332:  {"OpDecorateId", layNone, KindDecoration},
	4472: {"OpTypeRayQueryKHR", layResult, KindType},
	5341: {"OpTypeAccelerationStructureKHR", layResult, KindType},
	5358: {"OpTypeCooperativeMatrixNV", layResult, KindType},
	5632: {"OpDecorateString", layNone, KindDecoration},
	5633: {"OpMemberDecorateString", layNone, KindDecoration},
}

// KindOf returns the section family for an opcode, KindNone if unknown.
func KindOf(op OpCode) Kind {
	return opcodes[op].kind
}
