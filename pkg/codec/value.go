// Package codec implements the codec engine from spec §4.3: encoding and
// decoding whole coda values in declared field order, with the length
// prefixes (on every nested data type and every envelope) that make
// forward/backward-compatible evolution possible without a schema
// registry.
package codec

import "github.com/with-caer/codas/pkg/schema"

// Value is a runtime instance of a schema.DataType. Fields is parallel to
// Type.Fields, indexed by field ordinal, and holds one of:
//
//	KindUnsigned   uint64
//	KindSigned     int64
//	KindFloat      float32 or float64 (per Type.Fields[i].Type.Width)
//	KindBool       bool
//	KindText       string
//	KindNested     *Value
//	KindList       []any (element type per Type.Fields[i].Type.Element)
//	KindMap        []MapEntry
//	KindOptional   Optional
//	KindDynamic    DynamicValue
type Value struct {
	Type   *schema.DataType
	Fields []any
}

// NewValue constructs a zero-valued Value for dt: every field defaults to
// its zero/empty/false/absent representation (spec §4.3 rule 4), which is
// also exactly what a decode of a too-short (older) byte stream produces
// for fields appended since that stream was written.
func NewValue(dt *schema.DataType) *Value {
	v := &Value{Type: dt, Fields: make([]any, len(dt.Fields))}

	for i, f := range dt.Fields {
		v.Fields[i] = zeroOf(f.Type)
	}

	return v
}

func zeroOf(ref schema.TypeRef) any {
	switch ref.Kind {
	case schema.KindUnsigned:
		return uint64(0)
	case schema.KindSigned:
		return int64(0)
	case schema.KindFloat:
		if ref.Width == 32 {
			return float32(0)
		}

		return float64(0)
	case schema.KindBool:
		return false
	case schema.KindText:
		return ""
	case schema.KindNested:
		return (*Value)(nil)
	case schema.KindList:
		return []any(nil)
	case schema.KindMap:
		return []MapEntry(nil)
	case schema.KindOptional:
		return Optional{}
	case schema.KindDynamic:
		return DynamicValue{}
	default:
		return nil
	}
}

// Get returns the value of the named field.
func (v *Value) Get(name string) (any, bool) {
	f, ok := v.Type.FieldByName(name)
	if !ok {
		return nil, false
	}

	return v.Fields[f.Ordinal], true
}

// Set assigns the value of the named field.
func (v *Value) Set(name string, value any) {
	if f, ok := v.Type.FieldByName(name); ok {
		v.Fields[f.Ordinal] = value
	}
}

// MapEntry is one (key,value) pair of a KindMap field. Entries are kept in
// a slice, not a Go map, because spec §9 leaves wire key ordering an open
// question that implementations "must document to keep round-trips
// stable" — this repo's answer is insertion order (see DESIGN.md).
type MapEntry struct {
	Key   any
	Value any
}

// Optional is the runtime representation of a KindOptional field. Using an
// explicit struct rather than a bare nil-able any avoids the classic Go
// typed-nil trap (e.g. a nil *Value stored in an any is not itself == nil).
type Optional struct {
	Present bool
	Value   any
}

// Some wraps a present optional value.
func Some(v any) Optional { return Optional{Present: true, Value: v} }

// None is the absent optional value.
func None() Optional { return Optional{} }

// DynamicValue is the runtime representation of the `unspecified` /
// KindDynamic type (spec §3, §9 open question). This repo defines its wire
// framing as varint(type-id) varint(length) bytes; TypeID is an
// implementation-chosen discriminator meaningful only to producer and
// consumer out of band (the core codec treats it as opaque), and Bytes is
// round-tripped without interpretation.
type DynamicValue struct {
	TypeID uint64
	Bytes  []byte
}

// Union is the coda-wide tagged variant over all of a Coda's data types
// (spec §4.3, §9 "Polymorphic coda union"): exactly the payload the
// envelope wire form carries, tagged by the variant's ordinal.
type Union struct {
	Coda    *schema.Coda
	Variant *Value
}
