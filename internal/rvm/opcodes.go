// Package rvm implements the Reflection Virtual Machine: a stack-based
// interpreter that reconstructs a Type IR tree from a packed program.
package rvm

// Opcode enumerates the RVM's instruction set. Order matches the
// transformer's expected enumeration (spec §6) — this is the
// cross-compatibility contract, so names are never renumbered casually.
type Opcode byte

const (
	OpString Opcode = iota
	OpNumber
	OpBoolean
	OpBigInt
	OpVoid
	OpUnknown
	OpObject
	OpNever
	OpUndefined
	OpSymbol
	OpNull
	OpAny

	OpLiteral
	OpTemplateLiteral
	OpRegExp
	OpDate

	OpUint8Array
	OpInt8Array
	OpUint8ClampedArray
	OpUint16Array
	OpInt16Array
	OpUint32Array
	OpInt32Array
	OpFloat32Array
	OpFloat64Array
	OpBigInt64Array
	OpArrayBuffer

	OpClass
	OpParameter
	OpClassReference
	OpEnum
	OpEnumMember
	OpTuple
	OpTupleMember
	OpNamedTupleMember
	OpRest
	OpSet
	OpMap
	OpPromise
	OpUnion
	OpIntersection
	OpFunction
	OpArray
	OpProperty
	OpPropertySignature
	OpMethod
	OpMethodSignature
	OpOptional
	OpReadonly
	OpPublic
	OpProtected
	OpPrivate
	OpAbstract
	OpDefaultValue
	OpDescription
	OpIndexSignature
	OpObjectLiteral

	OpDistribute
	OpCondition
	OpJumpCondition
	OpInfer
	OpExtends
	OpIndexAccess
	OpTypeof
	OpKeyof
	OpVar
	OpMappedType
	OpLoads
	OpArg
	OpReturn
	OpFrame
	OpMoveFrame
	OpJump
	OpCall
	OpInline
	OpInlineCall
	OpNumberBrand
	OpTypeParameter
	OpTypeParameterDefault
	OpTemplate // alias of OpTypeParameter for compile output
)

// Name reports the opcode's stable name for diagnostics and disassembly.
func (op Opcode) Name() string {
	if n, ok := opcodeNames[op]; ok {
		return n
	}
	return "unknown"
}

var opcodeNames = map[Opcode]string{
	OpString: "string", OpNumber: "number", OpBoolean: "boolean", OpBigInt: "bigint",
	OpVoid: "void", OpUnknown: "unknown", OpObject: "object", OpNever: "never",
	OpUndefined: "undefined", OpSymbol: "symbol", OpNull: "null", OpAny: "any",

	OpLiteral: "literal", OpTemplateLiteral: "templateLiteral", OpRegExp: "regexp", OpDate: "date",

	OpUint8Array: "uint8Array", OpInt8Array: "int8Array", OpUint8ClampedArray: "uint8ClampedArray",
	OpUint16Array: "uint16Array", OpInt16Array: "int16Array", OpUint32Array: "uint32Array",
	OpInt32Array: "int32Array", OpFloat32Array: "float32Array", OpFloat64Array: "float64Array",
	OpBigInt64Array: "bigInt64Array", OpArrayBuffer: "arrayBuffer",

	OpClass: "class", OpParameter: "parameter", OpClassReference: "classReference",
	OpEnum: "enum", OpEnumMember: "enumMember", OpTuple: "tuple", OpTupleMember: "tupleMember",
	OpNamedTupleMember: "namedTupleMember", OpRest: "rest", OpSet: "set", OpMap: "map",
	OpPromise: "promise", OpUnion: "union", OpIntersection: "intersection",
	OpFunction: "function", OpArray: "array", OpProperty: "property",
	OpPropertySignature: "propertySignature", OpMethod: "method", OpMethodSignature: "methodSignature",
	OpOptional: "optional", OpReadonly: "readonly", OpPublic: "public", OpProtected: "protected",
	OpPrivate: "private", OpAbstract: "abstract", OpDefaultValue: "defaultValue",
	OpDescription: "description", OpIndexSignature: "indexSignature", OpObjectLiteral: "objectLiteral",

	OpDistribute: "distribute", OpCondition: "condition", OpJumpCondition: "jumpCondition",
	OpInfer: "infer", OpExtends: "extends", OpIndexAccess: "indexAccess", OpTypeof: "typeof",
	OpKeyof: "keyof", OpVar: "var", OpMappedType: "mappedType", OpLoads: "loads", OpArg: "arg",
	OpReturn: "return", OpFrame: "frame", OpMoveFrame: "moveFrame", OpJump: "jump", OpCall: "call",
	OpInline: "inline", OpInlineCall: "inlineCall", OpNumberBrand: "numberBrand",
	OpTypeParameter: "typeParameter", OpTypeParameterDefault: "typeParameterDefault",
	OpTemplate: "template",
}
