// Package typeir defines the Type IR: the discriminated tree of type nodes
// produced by the reflection VM processor.
package typeir

// Kind tags the variant a Node holds. Kept as a closed set matching the
// table in spec §3.
type Kind uint8

const (
	KindNever Kind = iota
	KindAny
	KindUnknown
	KindVoid
	KindObject
	KindUndefined
	KindNull
	KindString
	KindNumber
	KindBigInt
	KindBoolean
	KindSymbol
	KindRegExp

	KindLiteral
	KindUnion
	KindIntersection
	KindArray
	KindTuple
	KindTupleMember
	KindRest
	KindObjectLiteral
	KindClass
	KindPropertySignature
	KindProperty
	KindMethodSignature
	KindMethod
	KindParameter
	KindIndexSignature
	KindEnum
	KindEnumMember
	KindPromise
	KindTemplateLiteral
	KindTypeParameter
	KindInfer
	KindFunction
	KindNumberBrand
	KindDate
	KindTypedArray
	KindArrayBuffer
	KindSet
	KindMap
)

var kindNames = map[Kind]string{
	KindNever: "never", KindAny: "any", KindUnknown: "unknown", KindVoid: "void",
	KindObject: "object", KindUndefined: "undefined", KindNull: "null",
	KindString: "string", KindNumber: "number", KindBigInt: "bigint",
	KindBoolean: "boolean", KindSymbol: "symbol", KindRegExp: "regexp",
	KindLiteral: "literal", KindUnion: "union", KindIntersection: "intersection",
	KindArray: "array", KindTuple: "tuple", KindTupleMember: "tupleMember",
	KindRest: "rest", KindObjectLiteral: "objectLiteral", KindClass: "class",
	KindPropertySignature: "propertySignature", KindProperty: "property",
	KindMethodSignature: "methodSignature", KindMethod: "method",
	KindParameter: "parameter", KindIndexSignature: "indexSignature",
	KindEnum: "enum", KindEnumMember: "enumMember", KindPromise: "promise",
	KindTemplateLiteral: "templateLiteral", KindTypeParameter: "typeParameter",
	KindInfer: "infer", KindFunction: "function", KindNumberBrand: "numberBrand",
	KindDate: "date", KindTypedArray: "typedArray", KindArrayBuffer: "arrayBuffer",
	KindSet: "set", KindMap: "map",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Visibility is the access modifier carried by property/method/parameter nodes.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// InferSetter binds a concrete type into an ancestor frame slot when an
// `extends` check matches an `infer` placeholder. It is a (frameDepth,
// slotIndex) pair interpreted by the processor rather than a closure — see
// spec.md §9 "Setter closures for infer".
type InferSetter struct {
	FrameDepth int
	SlotIndex  int
}

// ClassHandle is the opaque identity of a class/constructor reached via a
// deferred class-thunk in the literal pool. The RVM never inspects it beyond
// equality and invoking its resolver (see internal/rvmhost).
type ClassHandle interface {
	Name() string
}

// Node is the Type IR's single tagged-variant struct. Rather than one Go
// type per Kind, fields are shared across kinds the way spec.md's table
// shares fields (types[], name, optional) across many rows — a type switch
// per call site would just rediscover the same field groups by hand.
type Node struct {
	Kind Kind

	// literal
	Literal any // string | float64 | bool | *big.Int | regexp source

	// union / intersection / templateLiteral members
	Types []*Node

	// array element / rest inner / promise inner
	Elem *Node

	// tuple
	Members []*Node // tupleMember nodes

	// tupleMember / rest / property / parameter / method / class / enumMember
	Name string

	Optional   bool
	Readonly   bool
	Vis        Visibility
	HasVis     bool // whether a visibility modifier was ever applied (adjective opcode seen)
	IsAbstract bool

	// objectLiteral / class members
	Props []*Node

	// class
	ClassType     ClassHandle
	Arguments     []*Node
	TypeName      string
	TypeArguments []*Node

	// propertySignature/property/method/function/parameter
	Return      *Node
	Parameters  []*Node
	Default     *Node
	Description string

	// enum / enumMember
	EnumMap map[string]any

	// indexSignature
	Index *Node

	// typeParameter / infer
	Setter *InferSetter

	// numberBrand
	Brand string

	// decorator metadata (object-literal types treated as markers, spec §3)
	Annotations map[string]any
	Decorators  []*Node
}

// simple leaf constructors

func New(k Kind) *Node { return &Node{Kind: k} }

func NewLiteral(v any) *Node { return &Node{Kind: KindLiteral, Literal: v} }

func NewArray(elem *Node) *Node { return &Node{Kind: KindArray, Elem: elem} }

func NewPromise(inner *Node) *Node { return &Node{Kind: KindPromise, Elem: inner} }

func NewRest(inner *Node) *Node { return &Node{Kind: KindRest, Elem: inner} }

func NewNumberBrand(brand string) *Node {
	return &Node{Kind: KindNumberBrand, Brand: brand}
}

func NewTypedArray(brand string) *Node {
	return &Node{Kind: KindTypedArray, Brand: brand}
}

func NewSet(elem *Node) *Node { return &Node{Kind: KindSet, Elem: elem} }

func NewMap(key, value *Node) *Node { return &Node{Kind: KindMap, Index: key, Elem: value} }

// CloneInto shallow-copies n's fields into dst, used when promoting a node into the
// pre-allocated result anchor (spec §3 "Result anchor").
func (n *Node) CloneInto(dst *Node) {
	*dst = *n
}
