package wire

import (
	"bytes"
	"testing"
)

func TestText_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	PutText(&buf, "Hi!")

	if got, want := buf.Bytes(), []byte{0x03, 'H', 'i', '!'}; !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}

	s, err := GetText(NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if s != "Hi!" {
		t.Fatalf("got %q", s)
	}
}

func TestBool_NonzeroDecodesTrue(t *testing.T) {
	v, err := GetBool(NewSource([]byte{0x7f}))
	if err != nil {
		t.Fatal(err)
	}

	if !v {
		t.Fatal("expected true for nonzero byte")
	}
}

func TestFloat64_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	PutFloat64(&buf, 3.14159)

	v, err := GetFloat64(NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if v != 3.14159 {
		t.Fatalf("got %v", v)
	}
}

func TestSource_Sub(t *testing.T) {
	var buf bytes.Buffer

	PutText(&buf, "abc")
	buf.WriteByte(0xFF) // trailing byte the sub-source must not see

	src := NewSource(buf.Bytes())

	n, err := GetUvarint(src)
	if err != nil {
		t.Fatal(err)
	}

	sub, err := src.Sub(int(n))
	if err != nil {
		t.Fatal(err)
	}

	if sub.Len() != 3 {
		t.Fatalf("sub length = %d, want 3", sub.Len())
	}

	if src.Len() != 1 {
		t.Fatalf("outer remaining = %d, want 1 (the trailing byte)", src.Len())
	}
}
