package stream

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestReader_LittleEndian(t *testing.T) {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint8(0xAB))
	binary.Write(buf, binary.LittleEndian, uint16(0x4D4D))
	binary.Write(buf, binary.LittleEndian, int16(-2))
	binary.Write(buf, binary.LittleEndian, uint32(0xDEADBEEF))
	binary.Write(buf, binary.LittleEndian, int32(-7))
	binary.Write(buf, binary.LittleEndian, float32(1.5))
	binary.Write(buf, binary.LittleEndian, float64(-0.25))

	r := NewReader(buf.Bytes())
	if got := r.U8(); got != 0xAB {
		t.Errorf("U8 = %#x, want 0xab", got)
	}
	if got := r.U16(); got != 0x4D4D {
		t.Errorf("U16 = %#x, want 0x4d4d", got)
	}
	if got := r.I16(); got != -2 {
		t.Errorf("I16 = %d, want -2", got)
	}
	if got := r.U32(); got != 0xDEADBEEF {
		t.Errorf("U32 = %#x, want 0xdeadbeef", got)
	}
	if got := r.I32(); got != -7 {
		t.Errorf("I32 = %d, want -7", got)
	}
	if got := r.F32(); got != 1.5 {
		t.Errorf("F32 = %v, want 1.5", got)
	}
	if got := r.F64(); got != -0.25 {
		t.Errorf("F64 = %v, want -0.25", got)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReader_LimitStack(t *testing.T) {
	r := NewReader(make([]byte, 20))

	r.PushLimit(10)
	if got := r.RemainingToLimit(); got != 10 {
		t.Fatalf("RemainingToLimit = %d, want 10", got)
	}

	r.Skip(2)
	r.PushLimit(6)
	if got := r.RemainingToLimit(); got != 4 {
		t.Errorf("RemainingToLimit in inner limit = %d, want 4", got)
	}
	r.U16()
	r.PopLimit()
	if r.Pos() != 6 {
		t.Errorf("Pos after inner pop = %d, want 6", r.Pos())
	}
	if got := r.RemainingToLimit(); got != 4 {
		t.Errorf("RemainingToLimit after inner pop = %d, want 4", got)
	}

	r.PopLimit()
	if r.Pos() != 10 {
		t.Errorf("Pos after outer pop = %d, want 10", r.Pos())
	}
	if got := r.RemainingToLimit(); got != 10 {
		t.Errorf("RemainingToLimit at top level = %d, want 10", got)
	}
}

func TestReader_PushLimitClampsToEnclosing(t *testing.T) {
	r := NewReader(make([]byte, 20))
	r.PushLimit(8)
	r.PushLimit(100)

	if got := r.RemainingToLimit(); got != 8 {
		t.Errorf("RemainingToLimit = %d, want clamp to 8", got)
	}
}

func TestReader_ReadPastLimit(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5, 6})
	r.PushLimit(3)

	if got := r.U32(); got != 0 {
		t.Errorf("U32 past limit = %d, want 0", got)
	}
	if r.Pos() != 3 {
		t.Errorf("cursor should stop at limit, got %d", r.Pos())
	}
	if got := r.U8(); got != 0 {
		t.Errorf("U8 at limit = %d, want 0", got)
	}
}

func TestReader_CString(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantPos int
	}{
		{"terminated", []byte("Box01\x00rest"), "Box01", 6},
		{"empty", []byte{0, 'a'}, "", 1},
		{"unterminated", []byte("abc"), "abc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			if got := string(r.CString()); got != tt.want {
				t.Errorf("CString = %q, want %q", got, tt.want)
			}
			if r.Pos() != tt.wantPos {
				t.Errorf("Pos = %d, want %d", r.Pos(), tt.wantPos)
			}
		})
	}
}

func TestReader_CStringStopsAtLimit(t *testing.T) {
	r := NewReader([]byte("abcdef\x00"))
	r.PushLimit(3)

	if got := string(r.CString()); got != "abc" {
		t.Errorf("CString = %q, want %q", got, "abc")
	}
}
