package bitio

import (
	"errors"
	"testing"
)

func TestReadConcatenation(t *testing.T) {
	data := []byte{0b10110100, 0b11001010, 0b00001111, 0b11110000}
	for a := 0; a <= 28; a++ {
		for b := 0; a+b <= 28; b++ {
			r1 := NewReader(data)
			first, err := r1.Read(a)
			if err != nil {
				t.Fatalf("read(%d) failed: %v", a, err)
			}
			second, err := r1.Read(b)
			if err != nil {
				t.Fatalf("read(%d) failed: %v", b, err)
			}
			combined := (first << uint(b)) | second

			r2 := NewReader(data)
			whole, err := r2.Read(a + b)
			if err != nil {
				t.Fatalf("read(%d) failed: %v", a+b, err)
			}
			if combined != whole {
				t.Fatalf("a=%d b=%d: read(a);read(b)=%#x != read(a+b)=%#x", a, b, combined, whole)
			}
		}
	}
}

func TestReadMSBFirst(t *testing.T) {
	// 0b1011_0100 -> first 4 bits MSB-first = 0b1011 = 11.
	r := NewReader([]byte{0b10110100})
	v, err := r.Read(4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0b1011 {
		t.Fatalf("got %b, want 1011", v)
	}
	v, err = r.Read(4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0b0100 {
		t.Fatalf("got %b, want 0100", v)
	}
}

func TestReadOutOfBounds(t *testing.T) {
	r := NewReader([]byte{0xff})
	_, err := r.Read(16)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("want ErrOutOfBounds, got %v", err)
	}
	if need := NeedBytes(err); need != 1 {
		t.Fatalf("want need=1, got %d", need)
	}
	// Position must not have advanced on failure.
	v, err := r.Read(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xff {
		t.Fatalf("got %#x, want 0xff", v)
	}
}

func TestJumpToByteBoundary(t *testing.T) {
	r := NewReader([]byte{0b11110000})
	if _, err := r.Read(4); err != nil {
		t.Fatal(err)
	}
	if err := r.JumpToByteBoundary(); err != nil {
		t.Fatalf("want clean boundary, got %v", err)
	}

	r2 := NewReader([]byte{0b00001111})
	if _, err := r2.Read(2); err != nil {
		t.Fatal(err)
	}
	if err := r2.JumpToByteBoundary(); !errors.Is(err, ErrNonZeroPadding) {
		t.Fatalf("want ErrNonZeroPadding, got %v", err)
	}
}

func TestSplitAt(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	r := NewReader(data)
	child, err := r.SplitAt(2)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := child.Read(16)
	if v != 0x0102 {
		t.Fatalf("got %#x, want 0x0102", v)
	}
	if r.ByteOffset() != 2 {
		t.Fatalf("parent offset = %d, want 2", r.ByteOffset())
	}

	r.Read(4) // misalign
	if _, err := r.SplitAt(1); !errors.Is(err, ErrNotByteAligned) {
		t.Fatalf("want ErrNotByteAligned, got %v", err)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0xAB})
	v1, _ := r.Peek(8)
	v2, _ := r.Read(8)
	if v1 != v2 {
		t.Fatalf("peek=%x read=%x", v1, v2)
	}
}
