// Package schema is the in-memory representation of a coda: an ordered
// family of related data types, each an ordered family of named, typed
// fields. A schema is built once by the markdown parser and is immutable
// thereafter; codec engines and target generators only ever read it.
package schema

import "fmt"

// Kind identifies the variant of a TypeRef.
type Kind uint8

// The complete set of type-reference kinds recognised by a coda.
const (
	KindUnsigned Kind = iota
	KindSigned
	KindFloat
	KindBool
	KindText
	KindNested
	KindList
	KindMap
	KindOptional
	KindDynamic
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindNested:
		return "nested"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindOptional:
		return "optional"
	case KindDynamic:
		return "unspecified"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// TypeRef is a tagged variant over the type references a field may carry
// (spec §3). Exactly the fields relevant to Kind are populated; callers
// should not read fields outside those a given Kind defines.
type TypeRef struct {
	Kind Kind
	// Width is the bit-width for KindUnsigned/KindSigned (8,16,32,64) or
	// KindFloat (32,64). Unused otherwise.
	Width uint8
	// Name is the referenced data-type name for KindNested, as written in
	// the source document. Resolution fills in Nested below.
	Name string
	// Nested is the resolved data type for KindNested, populated by the
	// markdown parser's resolution pass. Nil until resolution succeeds.
	Nested *DataType
	// Element is the element type for KindList.
	Element *TypeRef
	// Key and Value are the key/value types for KindMap.
	Key   *TypeRef
	Value *TypeRef
	// Inner is the wrapped type for KindOptional.
	Inner *TypeRef
}

// Unsigned constructs an unsigned integer type reference of the given width.
func Unsigned(width uint8) TypeRef { return TypeRef{Kind: KindUnsigned, Width: width} }

// Signed constructs a signed integer type reference of the given width.
func Signed(width uint8) TypeRef { return TypeRef{Kind: KindSigned, Width: width} }

// Float constructs a floating-point type reference of the given width.
func Float(width uint8) TypeRef { return TypeRef{Kind: KindFloat, Width: width} }

// Bool constructs a boolean type reference.
func Bool() TypeRef { return TypeRef{Kind: KindBool} }

// Text constructs a UTF-8 text type reference.
func Text() TypeRef { return TypeRef{Kind: KindText} }

// Dynamic constructs an `unspecified` (self-describing) type reference.
func Dynamic() TypeRef { return TypeRef{Kind: KindDynamic} }

// Nested constructs an unresolved reference to a sibling data type by name.
// Its Nested field is nil until set, either by the markdown parser's
// resolution pass or directly by the caller.
func Nested(name string) TypeRef { return TypeRef{Kind: KindNested, Name: name} }

// List constructs a list-of-element type reference.
func List(element TypeRef) TypeRef { return TypeRef{Kind: KindList, Element: &element} }

// Map constructs a map-of-key-to-value type reference.
func Map(key, value TypeRef) TypeRef { return TypeRef{Kind: KindMap, Key: &key, Value: &value} }

// Optional constructs an optional-inner type reference.
func Optional(inner TypeRef) TypeRef { return TypeRef{Kind: KindOptional, Inner: &inner} }

// Field is a named, typed member of a DataType. Its Ordinal is its position
// within the data type and is the only identity used on the wire; Name may
// be changed freely across schema revisions without affecting encoding.
type Field struct {
	Name string
	Doc  string
	Type TypeRef
	// Ordinal is this field's zero-indexed position within its DataType.
	Ordinal int
}

// DataType is a named record within a Coda. Field order is wire order.
type DataType struct {
	Name string
	Doc  string
	// Ordinal is this data type's zero-indexed position within its Coda,
	// and is the discriminator used by the envelope wire form.
	Ordinal int
	Fields  []Field
}

// FieldByName returns the field with the given name, if any.
func (d *DataType) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Coda is a named collection of ordered data types, parsed from a single
// Markdown document. A Coda is immutable once constructed and resolved.
type Coda struct {
	Name string
	Doc  string
	// Types are stored in wire order; DataType.Ordinal mirrors each type's
	// index into this slice.
	Types []DataType
}

// TypeByName returns the data type with the given name, if any.
func (c *Coda) TypeByName(name string) (*DataType, bool) {
	for i := range c.Types {
		if c.Types[i].Name == name {
			return &c.Types[i], true
		}
	}

	return nil, false
}

// TypeByOrdinal returns the data type at the given ordinal, if in range.
// This is the lookup the envelope wire form uses to resolve a decoded
// ordinal into a variant.
func (c *Coda) TypeByOrdinal(ordinal uint64) (*DataType, bool) {
	if ordinal >= uint64(len(c.Types)) {
		return nil, false
	}

	return &c.Types[ordinal], true
}
