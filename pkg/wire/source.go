package wire

// Source is a cursor over a caller-owned byte slice. Decoding never copies
// out of it except where a value's host representation demands a copy
// (e.g. converting a byte range to a Go string); spec §3 notes the decoder
// "copies text and list contents out of the input slice" only because the
// host language requires it, not because the wire format does.
type Source struct {
	buf []byte
	pos int
}

// NewSource wraps buf for decoding. buf is not copied; the caller must not
// mutate it while decoding is in progress.
func NewSource(buf []byte) *Source {
	return &Source{buf: buf}
}

// Len returns the number of unread bytes remaining.
func (s *Source) Len() int {
	return len(s.buf) - s.pos
}

// Pos returns the current cursor offset into the original buffer.
func (s *Source) Pos() int {
	return s.pos
}

func (s *Source) readByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, ErrTruncated
	}

	b := s.buf[s.pos]
	s.pos++

	return b, nil
}

// take returns a zero-copy slice of the next n bytes and advances the
// cursor, or ErrTruncated if fewer than n remain.
func (s *Source) take(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.buf) {
		return nil, ErrTruncated
	}

	b := s.buf[s.pos : s.pos+n]
	s.pos += n

	return b, nil
}

// Bytes reads and returns the next n bytes as a zero-copy slice, advancing
// the cursor. It is the exported counterpart of take, for callers (such as
// the codec's Dynamic/unspecified framing) that need a raw byte run rather
// than one of the typed primitives above.
func (s *Source) Bytes(n int) ([]byte, error) {
	return s.take(n)
}

// Sub carves out a bounded child Source over exactly the next n bytes,
// advancing this Source past them. This is how the codec engine implements
// the length-prefixed framing on nested data types and envelopes (spec
// §4.3): once the length prefix is read, decoding the payload happens
// against a Source that simply cannot see past its declared end, so a
// decoder that only recognizes some fields, or no variant at all, skips the
// remainder by just discarding the sub-source.
func (s *Source) Sub(n int) (*Source, error) {
	b, err := s.take(n)
	if err != nil {
		return nil, err
	}

	return &Source{buf: b}, nil
}
