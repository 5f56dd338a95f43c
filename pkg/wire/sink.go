package wire

import (
	"bytes"
	"errors"
)

// Sink is anything the Put* primitives can append to. *bytes.Buffer
// satisfies it directly, which is what encoding normally uses; BoundedSink
// satisfies it too, for callers that need the "BufferFull" failure mode
// spec §7 names for bounded sinks rather than growing without limit.
type Sink interface {
	WriteByte(c byte) error
	Write(p []byte) (int, error)
	WriteString(s string) (int, error)
}

// ErrBufferFull is returned by BoundedSink once its capacity is exhausted.
var ErrBufferFull = errors.New("wire: buffer full")

// BoundedSink is a Sink with a fixed maximum size. Exceeding it fails the
// write instead of growing, for callers encoding into a pre-allocated
// fixed-size wire buffer (e.g. a network datagram or ring slot).
type BoundedSink struct {
	buf bytes.Buffer
	max int
}

// NewBoundedSink constructs a BoundedSink with the given maximum size in
// bytes.
func NewBoundedSink(max int) *BoundedSink {
	return &BoundedSink{max: max}
}

func (b *BoundedSink) room(n int) error {
	if b.buf.Len()+n > b.max {
		return ErrBufferFull
	}

	return nil
}

// WriteByte implements Sink.
func (b *BoundedSink) WriteByte(c byte) error {
	if err := b.room(1); err != nil {
		return err
	}

	return b.buf.WriteByte(c)
}

// Write implements Sink.
func (b *BoundedSink) Write(p []byte) (int, error) {
	if err := b.room(len(p)); err != nil {
		return 0, err
	}

	return b.buf.Write(p)
}

// WriteString implements Sink.
func (b *BoundedSink) WriteString(s string) (int, error) {
	if err := b.room(len(s)); err != nil {
		return 0, err
	}

	return b.buf.WriteString(s)
}

// Bytes returns the bytes written so far.
func (b *BoundedSink) Bytes() []byte {
	return b.buf.Bytes()
}
