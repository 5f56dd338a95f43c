package wire

import (
	"math"
	"unicode/utf8"
)

// PutBool writes a single byte: 0x01 for true, 0x00 for false.
func PutBool(sink Sink, v bool) error {
	if v {
		return sink.WriteByte(0x01)
	}

	return sink.WriteByte(0x00)
}

// GetBool reads a boolean; any nonzero byte decodes as true (spec §4.2).
func GetBool(src *Source) (bool, error) {
	b, err := src.readByte()
	if err != nil {
		return false, err
	}

	return b != 0, nil
}

// PutFloat32 writes 4 raw IEEE-754 little-endian bytes.
func PutFloat32(sink Sink, v float32) error {
	var b [4]byte

	putUint32LE(b[:], math.Float32bits(v))
	_, err := sink.Write(b[:])

	return err
}

// GetFloat32 reads 4 raw IEEE-754 little-endian bytes.
func GetFloat32(src *Source) (float32, error) {
	b, err := src.take(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(getUint32LE(b)), nil
}

// PutFloat64 writes 8 raw IEEE-754 little-endian bytes.
func PutFloat64(sink Sink, v float64) error {
	var b [8]byte

	putUint64LE(b[:], math.Float64bits(v))
	_, err := sink.Write(b[:])

	return err
}

// GetFloat64 reads 8 raw IEEE-754 little-endian bytes.
func GetFloat64(src *Source) (float64, error) {
	b, err := src.take(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(getUint64LE(b)), nil
}

// PutText writes an unsigned varint byte length followed by the UTF-8
// bytes of s.
func PutText(sink Sink, s string) error {
	if err := PutUvarint(sink, uint64(len(s))); err != nil {
		return err
	}

	_, err := sink.WriteString(s)

	return err
}

// GetTextBytes reads a length-prefixed text frame and returns it as a
// zero-copy slice into the Source's backing buffer.
func GetTextBytes(src *Source) ([]byte, error) {
	n, err := GetUvarint(src)
	if err != nil {
		return nil, err
	}

	return src.take(int(n))
}

// GetText reads a length-prefixed text frame and copies it into a new Go
// string. Spec §4.2 permits, but does not require, validating UTF-8; this
// function does not validate. Use GetValidText where that matters.
func GetText(src *Source) (string, error) {
	b, err := GetTextBytes(src)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// GetValidText behaves as GetText but returns ErrInvalidText if the bytes
// are not well-formed UTF-8.
func GetValidText(src *Source) (string, error) {
	b, err := GetTextBytes(src)
	if err != nil {
		return "", err
	}

	if !isValidUTF8(b) {
		return "", ErrInvalidText
	}

	return string(b), nil
}

// PutListHeader writes the unsigned varint element count that precedes a
// list's encoded elements.
func PutListHeader(sink Sink, count int) error {
	return PutUvarint(sink, uint64(count))
}

// GetListHeader reads a list's element count.
func GetListHeader(src *Source) (int, error) {
	n, err := GetUvarint(src)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// PutMapHeader writes the unsigned varint pair count that precedes a map's
// encoded (key,value) pairs.
func PutMapHeader(sink Sink, count int) error {
	return PutUvarint(sink, uint64(count))
}

// GetMapHeader reads a map's pair count.
func GetMapHeader(src *Source) (int, error) {
	return GetListHeader(src)
}

// PutOptionalTag writes the one-byte presence tag preceding an optional
// value's inner encoding.
func PutOptionalTag(sink Sink, present bool) error {
	return PutBool(sink, present)
}

// GetOptionalTag reads the presence tag.
func GetOptionalTag(src *Source) (bool, error) {
	return GetBool(src)
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getUint64LE(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}

	return v
}

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}
