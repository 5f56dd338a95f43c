package wire

import (
	"bytes"
	"math"
	"testing"
)

// TestUvarint_300 checks the S3 scenario from the specification: u64=300
// encodes as 0xac 0x02.
func TestUvarint_300(t *testing.T) {
	var buf bytes.Buffer

	PutUvarint(&buf, 300)

	if got, want := buf.Bytes(), []byte{0xac, 0x02}; !bytes.Equal(got, want) {
		t.Fatalf("encode: got %x, want %x", got, want)
	}

	v, err := GetUvarint(NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if v != 300 {
		t.Fatalf("decode: got %d, want 300", v)
	}
}

// TestVarint_NegativeOne checks the S3 scenario: i32=-1 encodes as 0x01.
func TestVarint_NegativeOne(t *testing.T) {
	var buf bytes.Buffer

	PutVarint(&buf, -1)

	if got, want := buf.Bytes(), []byte{0x01}; !bytes.Equal(got, want) {
		t.Fatalf("encode: got %x, want %x", got, want)
	}

	v, err := GetVarint(NewSource(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if v != -1 {
		t.Fatalf("decode: got %d, want -1", v)
	}
}

func TestVarint_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -127, 300, -300, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64}

	for _, v := range values {
		var buf bytes.Buffer

		PutVarint(&buf, v)

		got, err := GetVarint(NewSource(buf.Bytes()))
		if err != nil {
			t.Fatalf("value %d: %v", v, err)
		}

		if got != v {
			t.Fatalf("value %d: round-trip got %d", v, got)
		}
	}
}

func TestUvarint_Truncated(t *testing.T) {
	_, err := GetUvarint(NewSource([]byte{0x80}))
	if err != ErrTruncated {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}
