package hash40

import (
	"errors"
	"strings"
	"testing"
)

func TestOf(t *testing.T) {
	tests := []struct {
		in   string
		want Hash40
	}{
		{"", 0},
		{"123456789", 0x09cbf43926},
		{"head", 0x04a7f3f69c},
		{"fighter_param", 0x0d7ef51e15},
	}
	for _, tt := range tests {
		if got := Of(tt.in); got != tt.want {
			t.Errorf("Of(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParts(t *testing.T) {
	h := Of("head")
	if h.CRC() != 0xa7f3f69c {
		t.Errorf("CRC() = %#x", h.CRC())
	}
	if h.Len() != 4 {
		t.Errorf("Len() = %d", h.Len())
	}
	if !h.Valid() {
		t.Errorf("%s not valid", h)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(Mask); err != nil {
		t.Errorf("New(Mask): %v", err)
	}
	_, err := New(Mask + 1)
	if !errors.Is(err, ErrRange) {
		t.Errorf("New(Mask+1) error = %v, want ErrRange", err)
	}
	if Hash40(Mask + 1).Valid() {
		t.Errorf("Mask+1 reported valid")
	}
}

func TestRawForm(t *testing.T) {
	h := Hash40(0xABCDE)
	s := h.String()
	if s != "0x00000abcde" {
		t.Fatalf("String() = %q", s)
	}
	if !IsRaw(s) {
		t.Fatalf("IsRaw(%q) = false", s)
	}
	back, err := ParseRaw(s)
	if err != nil {
		t.Fatal(err)
	}
	if back != h {
		t.Errorf("ParseRaw(%q) = %s", s, back)
	}
	if up, err := ParseRaw("0X00000ABCDE"); err != nil || up != h {
		t.Errorf("ParseRaw upper = %s, %v", up, err)
	}
	for _, bad := range []string{"0xabcde", "0x00000abcdeff", "00000abcde", "0x00000abcdg", "head"} {
		if IsRaw(bad) {
			t.Errorf("IsRaw(%q) = true", bad)
		}
		if _, err := ParseRaw(bad); err == nil {
			t.Errorf("ParseRaw(%q) succeeded", bad)
		}
	}
}

func TestText(t *testing.T) {
	h := Of("hip")
	d, err := h.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back Hash40
	if err := back.UnmarshalText(d); err != nil {
		t.Fatal(err)
	}
	if back != h {
		t.Errorf("got %s want %s", back, h)
	}
	if !strings.HasPrefix(string(d), "0x") {
		t.Errorf("MarshalText = %q", d)
	}
}
