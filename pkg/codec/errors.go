package codec

import (
	"errors"
	"fmt"
)

// ErrTruncated names truncated input at the value-decode layer. The
// Engine's decode paths do not return it: running out of input surfaces as
// wire.ErrTruncated, passed through unchanged.
var ErrTruncated = errors.New("codec: truncated input")

// ErrLengthMismatch names a length-prefixed payload whose declared length
// does not match the bytes actually available. The Engine's decode paths do
// not return it: a declared length that runs past the input surfaces as
// wire.ErrTruncated.
var ErrLengthMismatch = errors.New("codec: length prefix mismatch")

// ErrDepthExceeded is returned when nested data types recurse past the
// configured depth guard (spec §4.3 recommends 64), protecting decode
// against adversarial or cyclic-looking input.
var ErrDepthExceeded = errors.New("codec: nesting depth exceeded")

// UnknownVariantError is returned by ReadEnvelope when the envelope's
// ordinal is not one of the data types this decoder knows about (spec §4.3
// rule 2). The envelope's bytes are still fully consumed by the caller's
// Source regardless of this error, so sibling envelopes remain decodable.
type UnknownVariantError struct {
	Ordinal uint64
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("codec: unknown variant ordinal %d", e.Ordinal)
}
