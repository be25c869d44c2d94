package hash40

import (
	"errors"
	"fmt"
	"hash/crc32"
	"strconv"
)

// Hash40 is a 40-bit name hash stored in a 64-bit word.
type Hash40 uint64

// Mask covers the 40 significant bits of a Hash40.
const Mask = 1<<40 - 1

var ErrRange = errors.New("hash40: value out of 40-bit range")

// Of computes the hash of text.
func Of(text string) Hash40 {
	crc := crc32.ChecksumIEEE([]byte(text))
	return Hash40(uint64(crc) | uint64(len(text)&0xff)<<32)
}

// New returns v as a Hash40, failing with ErrRange if v does not fit in 40
// bits.
func New(v uint64) (Hash40, error) {
	if v&^Mask != 0 {
		return 0, fmt.Errorf("%w: %#x", ErrRange, v)
	}
	return Hash40(v), nil
}

func (h Hash40) Valid() bool { return uint64(h)&^Mask == 0 }

func (h Hash40) CRC() uint32 { return uint32(h) }

func (h Hash40) Len() uint8 { return uint8(h >> 32) }

// String returns the raw form of h.
func (h Hash40) String() string {
	return fmt.Sprintf("0x%010x", uint64(h))
}

func (h Hash40) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash40) UnmarshalText(d []byte) error {
	v, err := ParseRaw(string(d))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// IsRaw reports whether s has the raw form "0x" followed by exactly ten hex
// digits.
func IsRaw(s string) bool {
	if len(s) != 12 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for i := 2; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

// ParseRaw parses the raw form of a hash.
func ParseRaw(s string) (Hash40, error) {
	if !IsRaw(s) {
		return 0, fmt.Errorf("hash40: %q is not of the form 0x##########", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("hash40: %q: %w", s, err)
	}
	return Hash40(v), nil
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}
