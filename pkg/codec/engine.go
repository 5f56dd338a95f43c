package codec

import (
	"bytes"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/with-caer/codas/pkg/schema"
	"github.com/with-caer/codas/pkg/wire"
)

// DefaultMaxDepth is the recursion guard spec §4.3 recommends against
// adversarial or runaway nesting.
const DefaultMaxDepth = 64

// Engine encodes and decodes Values for one Coda. An Engine is immutable
// and safe for concurrent use once constructed, since it only ever reads
// the Coda it was built from.
type Engine struct {
	coda *schema.Coda
	// known restricts which envelope ordinals this Engine treats as
	// resolvable, independently of how many data types coda actually has.
	// A nil known means "every ordinal in coda is known" (the normal,
	// fully up-to-date decoder). A non-nil known lets tests and tooling
	// model an older decoder that only recognises a subset of variants
	// (spec §8 scenario S2), which is exactly the shape a sparse
	// bits-and-blooms/bitset membership test fits.
	known    *bitset.BitSet
	maxDepth int
}

// NewEngine constructs an Engine that knows every data type in coda.
func NewEngine(coda *schema.Coda) *Engine {
	return &Engine{coda: coda, maxDepth: DefaultMaxDepth}
}

// WithKnownOrdinals returns a copy of e restricted to treating only the
// given envelope ordinals as known, modelling an older decoder for
// evolution testing (spec §8 S2). Passing no ordinals models a decoder
// that predates every data type in the coda.
func (e *Engine) WithKnownOrdinals(ordinals ...uint64) *Engine {
	bs := bitset.New(uint(len(e.coda.Types)))

	for _, o := range ordinals {
		bs.Set(uint(o))
	}

	return &Engine{coda: e.coda, known: bs, maxDepth: e.maxDepth}
}

// WithMaxDepth returns a copy of e using the given nested-record recursion
// guard instead of DefaultMaxDepth.
func (e *Engine) WithMaxDepth(n int) *Engine {
	return &Engine{coda: e.coda, known: e.known, maxDepth: n}
}

func (e *Engine) isKnown(ordinal uint64) bool {
	if e.known != nil {
		return ordinal < uint64(e.known.Len()) && e.known.Test(uint(ordinal))
	}

	return ordinal < uint64(len(e.coda.Types))
}

// WriteData encodes value in the bare form: just its fields, in declared
// order, with no length prefix and no ordinal. The caller is assumed to
// already know value's data type (spec §4.3).
func (e *Engine) WriteData(sink wire.Sink, value *Value) error {
	return e.writeFieldPayload(sink, value, 0)
}

// ReadData decodes the bare form written by WriteData, given the data type
// the caller expects.
func (e *Engine) ReadData(src *wire.Source, dt *schema.DataType) (*Value, error) {
	return e.readFieldPayload(src, dt, 0)
}

// WriteEnvelope encodes value as the coda-wide tagged-union envelope form:
// varint(payload length) varint(ordinal) payload (spec §6, §8 S1), where
// payload is itself the record length-prefixed exactly as a nested value
// would be (varint(record length) record fields). Framing the record this
// way — rather than folding the ordinal into the length it covers — is
// what lets S2's "decoder with no known ordinals" consume the envelope's
// exact byte count without ever resolving the ordinal to a data type.
func (e *Engine) WriteEnvelope(sink wire.Sink, value *Value) error {
	var record bytes.Buffer

	if err := e.writeFieldPayload(&record, value, 0); err != nil {
		return err
	}

	var payload bytes.Buffer

	if err := wire.PutUvarint(&payload, uint64(record.Len())); err != nil {
		return err
	}

	if _, err := payload.Write(record.Bytes()); err != nil {
		return err
	}

	if err := wire.PutUvarint(sink, uint64(payload.Len())); err != nil {
		return err
	}

	if err := wire.PutUvarint(sink, uint64(value.Type.Ordinal)); err != nil {
		return err
	}

	_, err := sink.Write(payload.Bytes())

	return err
}

// ReadEnvelope decodes an envelope written by WriteEnvelope. If the
// envelope's ordinal is not known to this Engine (spec §8 S2), it returns
// a *UnknownVariantError — but the envelope's declared payload length is
// always fully consumed from src first (length + ordinal + payload bytes),
// so a caller can keep decoding whatever follows regardless of this error.
func (e *Engine) ReadEnvelope(src *wire.Source) (*Value, error) {
	length, err := wire.GetUvarint(src)
	if err != nil {
		return nil, err
	}

	ordinal, err := wire.GetUvarint(src)
	if err != nil {
		return nil, err
	}

	payload, err := src.Sub(int(length))
	if err != nil {
		return nil, err
	}

	if !e.isKnown(ordinal) {
		return nil, &UnknownVariantError{Ordinal: ordinal}
	}

	dt, ok := e.coda.TypeByOrdinal(ordinal)
	if !ok {
		return nil, &UnknownVariantError{Ordinal: ordinal}
	}

	recordLen, err := wire.GetUvarint(payload)
	if err != nil {
		return nil, err
	}

	record, err := payload.Sub(int(recordLen))
	if err != nil {
		return nil, err
	}

	return e.readFieldPayload(record, dt, 0)
}

func (e *Engine) writeFieldPayload(sink wire.Sink, value *Value, depth int) error {
	for i, f := range value.Type.Fields {
		if err := e.encodeField(sink, f.Type, value.Fields[i], depth); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

// readFieldPayload decodes dt's fields in order, defaulting any fields left
// unwritten by an older producer (spec §4.3 rule 4: "missing trailing
// fields on decode default to zero/empty/false/absent").
func (e *Engine) readFieldPayload(src *wire.Source, dt *schema.DataType, depth int) (*Value, error) {
	value := NewValue(dt)

	for i, f := range dt.Fields {
		if src.Len() == 0 {
			break // remaining fields keep their zero value
		}

		v, err := e.decodeField(src, f.Type, depth)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		value.Fields[i] = v
	}

	return value, nil
}
