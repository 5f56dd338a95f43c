package codec

import (
	"bytes"
	"fmt"

	"github.com/with-caer/codas/pkg/schema"
	"github.com/with-caer/codas/pkg/wire"
)

func (e *Engine) encodeField(sink wire.Sink, ref schema.TypeRef, val any, depth int) error {
	switch ref.Kind {
	case schema.KindUnsigned:
		v := val.(uint64)
		if ref.Width < 64 && v >= (uint64(1)<<ref.Width) {
			return wire.ErrValueOutOfRange
		}

		return wire.PutUvarint(sink, v)
	case schema.KindSigned:
		v := val.(int64)
		if ref.Width < 64 {
			bound := int64(1) << (ref.Width - 1)
			if v < -bound || v >= bound {
				return wire.ErrValueOutOfRange
			}
		}

		return wire.PutVarint(sink, v)
	case schema.KindFloat:
		if ref.Width == 32 {
			return wire.PutFloat32(sink, val.(float32))
		}

		return wire.PutFloat64(sink, val.(float64))
	case schema.KindBool:
		return wire.PutBool(sink, val.(bool))
	case schema.KindText:
		return wire.PutText(sink, val.(string))
	case schema.KindNested:
		return e.writeNestedValue(sink, val.(*Value), depth)
	case schema.KindList:
		elems := val.([]any)
		if err := wire.PutListHeader(sink, len(elems)); err != nil {
			return err
		}

		for _, elem := range elems {
			if err := e.encodeField(sink, *ref.Element, elem, depth); err != nil {
				return err
			}
		}

		return nil
	case schema.KindMap:
		entries := val.([]MapEntry)
		if err := wire.PutMapHeader(sink, len(entries)); err != nil {
			return err
		}

		for _, entry := range entries {
			if err := e.encodeField(sink, *ref.Key, entry.Key, depth); err != nil {
				return err
			}

			if err := e.encodeField(sink, *ref.Value, entry.Value, depth); err != nil {
				return err
			}
		}

		return nil
	case schema.KindOptional:
		opt := val.(Optional)
		if err := wire.PutOptionalTag(sink, opt.Present); err != nil {
			return err
		}

		if !opt.Present {
			return nil
		}

		return e.encodeField(sink, *ref.Inner, opt.Value, depth)
	case schema.KindDynamic:
		dv := val.(DynamicValue)
		if err := wire.PutUvarint(sink, dv.TypeID); err != nil {
			return err
		}

		if err := wire.PutUvarint(sink, uint64(len(dv.Bytes))); err != nil {
			return err
		}

		_, err := sink.Write(dv.Bytes)

		return err
	default:
		return fmt.Errorf("codec: unhandled type kind %v", ref.Kind)
	}
}

func (e *Engine) decodeField(src *wire.Source, ref schema.TypeRef, depth int) (any, error) {
	switch ref.Kind {
	case schema.KindUnsigned:
		return wire.GetUvarint(src)
	case schema.KindSigned:
		return wire.GetVarint(src)
	case schema.KindFloat:
		if ref.Width == 32 {
			return wire.GetFloat32(src)
		}

		return wire.GetFloat64(src)
	case schema.KindBool:
		return wire.GetBool(src)
	case schema.KindText:
		return wire.GetText(src)
	case schema.KindNested:
		return e.readNestedValue(src, ref.Nested, depth)
	case schema.KindList:
		n, err := wire.GetListHeader(src)
		if err != nil {
			return nil, err
		}

		elems := make([]any, n)

		for i := 0; i < n; i++ {
			elems[i], err = e.decodeField(src, *ref.Element, depth)
			if err != nil {
				return nil, err
			}
		}

		return elems, nil
	case schema.KindMap:
		n, err := wire.GetMapHeader(src)
		if err != nil {
			return nil, err
		}

		entries := make([]MapEntry, n)

		for i := 0; i < n; i++ {
			key, err := e.decodeField(src, *ref.Key, depth)
			if err != nil {
				return nil, err
			}

			value, err := e.decodeField(src, *ref.Value, depth)
			if err != nil {
				return nil, err
			}

			entries[i] = MapEntry{Key: key, Value: value}
		}

		return entries, nil
	case schema.KindOptional:
		present, err := wire.GetOptionalTag(src)
		if err != nil || !present {
			return Optional{}, err
		}

		inner, err := e.decodeField(src, *ref.Inner, depth)

		return Optional{Present: true, Value: inner}, err
	case schema.KindDynamic:
		typeID, err := wire.GetUvarint(src)
		if err != nil {
			return nil, err
		}

		n, err := wire.GetUvarint(src)
		if err != nil {
			return nil, err
		}

		raw, err := src.Bytes(int(n))
		if err != nil {
			return nil, err
		}

		// Copy out: Bytes() aliases the Source's backing buffer, which the
		// caller of ReadData/ReadEnvelope does not own past this call.
		b := make([]byte, len(raw))
		copy(b, raw)

		return DynamicValue{TypeID: typeID, Bytes: b}, nil
	default:
		return nil, fmt.Errorf("codec: unhandled type kind %v", ref.Kind)
	}
}

// writeNestedValue encodes a nested DataType field as varint(length)
// field_payload (no ordinal — spec §6), which is the mechanism that lets a
// decoder skip fields it doesn't recognise without losing sync on whatever
// follows.
func (e *Engine) writeNestedValue(sink wire.Sink, val *Value, depth int) error {
	if depth+1 > e.maxDepth {
		return ErrDepthExceeded
	}

	var inner bytes.Buffer

	if err := e.writeFieldPayload(&inner, val, depth+1); err != nil {
		return err
	}

	if err := wire.PutUvarint(sink, uint64(inner.Len())); err != nil {
		return err
	}

	_, err := sink.Write(inner.Bytes())

	return err
}

func (e *Engine) readNestedValue(src *wire.Source, dt *schema.DataType, depth int) (*Value, error) {
	if depth+1 > e.maxDepth {
		return nil, ErrDepthExceeded
	}

	if dt == nil {
		return nil, fmt.Errorf("codec: nested field type reference was never resolved")
	}

	length, err := wire.GetUvarint(src)
	if err != nil {
		return nil, err
	}

	sub, err := src.Sub(int(length))
	if err != nil {
		return nil, err
	}

	return e.readFieldPayload(sub, dt, depth+1)
}
