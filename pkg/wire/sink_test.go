package wire

import "testing"

func TestBoundedSink_BufferFull(t *testing.T) {
	sink := NewBoundedSink(2)

	PutUvarint(sink, 1) // one byte, fits

	var buf [2]byte

	if _, err := sink.Write(buf[:]); err != ErrBufferFull {
		t.Fatalf("got %v, want ErrBufferFull", err)
	}
}
