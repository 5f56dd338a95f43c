package codec

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/with-caer/codas/pkg/schema"
	"github.com/with-caer/codas/pkg/wire"
)

// greeterCoda builds the S1 scenario's schema directly against the schema
// model, the way a caller who already has a *schema.Coda (e.g. from
// markdown.Parse) would use it.
func greeterCoda() *schema.Coda {
	request := schema.DataType{
		Name:    "Request",
		Ordinal: 0,
		Fields: []schema.Field{
			{Name: "message", Type: schema.Text(), Ordinal: 0},
		},
	}
	response := schema.DataType{
		Name:    "Response",
		Ordinal: 1,
		Fields: []schema.Field{
			{Name: "message", Type: schema.Text(), Ordinal: 0},
			{Name: "friends", Type: schema.List(schema.Text()), Ordinal: 1},
		},
	}

	return &schema.Coda{Name: "Greeter", Types: []schema.DataType{request, response}}
}

// TestEnvelope_S1 checks the exact byte layout from spec §8 scenario S1.
func TestEnvelope_S1(t *testing.T) {
	coda := greeterCoda()
	engine := NewEngine(coda)

	req := NewValue(&coda.Types[0])
	req.Set("message", "Hi!")

	var buf bytes.Buffer
	if err := engine.WriteEnvelope(&buf, req); err != nil {
		t.Fatal(err)
	}

	// spec §8 S1: 05 00 04 03 48 69 21
	expected, err := hex.DecodeString("05000403486921")
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf.Bytes(), expected) {
		t.Fatalf("got % x, want % x", buf.Bytes(), expected)
	}

	decoded, err := engine.ReadEnvelope(wire.NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if decoded.Type.Name != "Request" {
		t.Fatalf("decoded variant = %s, want Request", decoded.Type.Name)
	}

	msg, _ := decoded.Get("message")

	if msg != "Hi!" {
		t.Fatalf("message = %q, want Hi!", msg)
	}
}

// TestEnvelope_S2 checks that an older decoder that knows no data types
// surfaces UnknownVariant(0) while still consuming exactly the envelope's
// declared bytes, leaving a following envelope untouched.
func TestEnvelope_S2(t *testing.T) {
	coda := greeterCoda()
	writer := NewEngine(coda)

	req := NewValue(&coda.Types[0])
	req.Set("message", "Hi!")

	var buf bytes.Buffer
	if err := writer.WriteEnvelope(&buf, req); err != nil {
		t.Fatal(err)
	}

	buf.WriteByte(0xAA) // sentinel marking the start of "the next envelope"

	oldDecoder := writer.WithKnownOrdinals() // knows nothing
	src := wire.NewSource(buf.Bytes())

	_, err := oldDecoder.ReadEnvelope(src)

	var unknown *UnknownVariantError
	if !asUnknownVariant(err, &unknown) {
		t.Fatalf("got %v, want *UnknownVariantError", err)
	}

	if unknown.Ordinal != 0 {
		t.Fatalf("ordinal = %d, want 0", unknown.Ordinal)
	}

	if src.Pos() != 7 {
		t.Fatalf("consumed %d bytes, want 7", src.Pos())
	}

	next, err := src.Bytes(1)
	if err != nil || next[0] != 0xAA {
		t.Fatalf("sentinel byte disturbed: %v %v", next, err)
	}
}

func asUnknownVariant(err error, target **UnknownVariantError) bool {
	if uv, ok := err.(*UnknownVariantError); ok {
		*target = uv
		return true
	}

	return false
}

// TestFieldAppend_BackwardCompatible checks spec §8 property 2: a schema
// that appends a field to a data type produces bytes an older decoder
// (which doesn't know the field exists) still reads correctly, and an
// older byte stream decodes under the newer schema with the field
// defaulted.
func TestFieldAppend_BackwardCompatible(t *testing.T) {
	oldDT := schema.DataType{Name: "Request", Ordinal: 0, Fields: []schema.Field{
		{Name: "message", Type: schema.Text(), Ordinal: 0},
	}}
	newDT := schema.DataType{Name: "Request", Ordinal: 0, Fields: []schema.Field{
		{Name: "message", Type: schema.Text(), Ordinal: 0},
		{Name: "urgent", Type: schema.Bool(), Ordinal: 1},
	}}

	oldCoda := &schema.Coda{Name: "G", Types: []schema.DataType{oldDT}}
	newCoda := &schema.Coda{Name: "G", Types: []schema.DataType{newDT}}

	oldEngine, newEngine := NewEngine(oldCoda), NewEngine(newCoda)

	// New producer, old consumer: the appended field is nested inside a
	// length-prefixed envelope payload, so the old consumer simply never
	// reads the trailing "urgent" byte.
	newVal := NewValue(&newCoda.Types[0])
	newVal.Set("message", "hi")
	newVal.Set("urgent", true)

	var buf bytes.Buffer
	if err := newEngine.WriteEnvelope(&buf, newVal); err != nil {
		t.Fatal(err)
	}

	decodedOld, err := oldEngine.ReadEnvelope(wire.NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if msg, _ := decodedOld.Get("message"); msg != "hi" {
		t.Fatalf("message = %v", msg)
	}

	// Old producer, new consumer: the missing field defaults to false.
	oldVal := NewValue(&oldCoda.Types[0])
	oldVal.Set("message", "hi")

	buf.Reset()

	if err := oldEngine.WriteEnvelope(&buf, oldVal); err != nil {
		t.Fatal(err)
	}

	decodedNew, err := newEngine.ReadEnvelope(wire.NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if urgent, _ := decodedNew.Get("urgent"); urgent != false {
		t.Fatalf("urgent = %v, want false (defaulted)", urgent)
	}
}

// TestRoundTrip_NestedList checks spec §8 property 1 for a value exercising
// nested records, lists, optionals, and a dynamic field together.
func TestRoundTrip_NestedList(t *testing.T) {
	friend := schema.DataType{Name: "Friend", Ordinal: 0, Fields: []schema.Field{
		{Name: "name", Type: schema.Text(), Ordinal: 0},
		{Name: "age", Type: schema.Optional(schema.Unsigned(8)), Ordinal: 1},
	}}
	person := schema.DataType{Name: "Person", Ordinal: 1, Fields: []schema.Field{
		{Name: "name", Type: schema.Text(), Ordinal: 0},
		{Name: "friends", Type: schema.List(schema.Nested("Friend")), Ordinal: 1},
		{Name: "payload", Type: schema.Dynamic(), Ordinal: 2},
	}}
	person.Fields[1].Type.Element.Nested = &friend

	coda := &schema.Coda{Name: "C", Types: []schema.DataType{friend, person}}
	engine := NewEngine(coda)

	f1 := NewValue(&coda.Types[0])
	f1.Set("name", "Ada")
	f1.Set("age", Some(uint64(30)))

	f2 := NewValue(&coda.Types[0])
	f2.Set("name", "Lin")
	f2.Set("age", None())

	p := NewValue(&coda.Types[1])
	p.Set("name", "Root")
	p.Set("friends", []any{f1, f2})
	p.Set("payload", DynamicValue{TypeID: 7, Bytes: []byte{1, 2, 3}})

	var buf bytes.Buffer
	if err := engine.WriteData(&buf, p); err != nil {
		t.Fatal(err)
	}

	got, err := engine.ReadData(wire.NewSource(buf.Bytes()), &coda.Types[1])
	if err != nil {
		t.Fatal(err)
	}

	friends, _ := got.Get("friends")

	fs := friends.([]any)
	if len(fs) != 2 {
		t.Fatalf("friends len = %d, want 2", len(fs))
	}

	f1Got := fs[0].(*Value)
	if name, _ := f1Got.Get("name"); name != "Ada" {
		t.Fatalf("friend 0 name = %v", name)
	}

	age, _ := f1Got.Get("age")
	if age.(Optional) != (Optional{Present: true, Value: uint64(30)}) {
		t.Fatalf("friend 0 age = %v", age)
	}

	f2Got := fs[1].(*Value)

	age2, _ := f2Got.Get("age")
	if age2.(Optional).Present {
		t.Fatalf("friend 1 age should be absent")
	}

	payload, _ := got.Get("payload")
	if dv := payload.(DynamicValue); dv.TypeID != 7 || !bytes.Equal(dv.Bytes, []byte{1, 2, 3}) {
		t.Fatalf("payload = %+v", dv)
	}
}
