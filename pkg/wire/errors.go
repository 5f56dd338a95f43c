// Package wire implements the codec primitives from spec §4.2: unsigned and
// signed (zig-zag) varints, fixed-width IEEE-754 floats, booleans, and the
// length-prefixed framing shared by text, lists, maps, and optionals. Byte
// order is little-endian throughout, matching the common case across every
// target the generators emit for.
package wire

import "errors"

// ErrTruncated is returned when a decode runs out of input before a value
// is fully read.
var ErrTruncated = errors.New("wire: truncated input")

// ErrValueOutOfRange is returned when encoding a value that does not fit
// the declared width of its field (spec §7, "codec encode" taxonomy).
var ErrValueOutOfRange = errors.New("wire: value out of range for declared width")

// ErrInvalidText is returned by callers that opt into UTF-8 validation on
// decode (spec §4.2: implementations "must not validate UTF-8 beyond
// reporting 'invalid text' if explicitly checked").
var ErrInvalidText = errors.New("wire: invalid text")
