package hash40

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrLabels = errors.New("hash40: bad label file")

// Labels is a dictionary of known names and their hashes, owned by the
// caller. It is safe for concurrent reads once populated.
type Labels struct {
	byLabel map[string]Hash40
	byHash  map[Hash40]string
}

func NewLabels() *Labels {
	return &Labels{
		byLabel: map[string]Hash40{},
		byHash:  map[Hash40]string{},
	}
}

// Add records label as the name of h. A label added earlier for the same hash
// keeps precedence for reverse lookup.
func (l *Labels) Add(label string, h Hash40) {
	l.byLabel[label] = h
	if _, ok := l.byHash[h]; !ok {
		l.byHash[h] = label
	}
}

// AddString records label under its computed hash.
func (l *Labels) AddString(label string) Hash40 {
	h := Of(label)
	l.Add(label, h)
	return h
}

func (l *Labels) Label(h Hash40) (string, bool) {
	if l == nil {
		return "", false
	}
	s, ok := l.byHash[h]
	return s, ok
}

func (l *Labels) Hash(label string) (Hash40, bool) {
	if l == nil {
		return 0, false
	}
	h, ok := l.byLabel[label]
	return h, ok
}

func (l *Labels) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byLabel)
}

// LabelOf returns the name of h in labels. A nil dictionary or a hash it does
// not know yields ("", false).
func LabelOf(h Hash40, labels *Labels) (string, bool) {
	return labels.Label(h)
}

// Resolve turns a name back into a hash: the raw form is parsed, a known
// label maps to its dictionary hash, and anything else is hashed with Of.
func Resolve(name string, labels *Labels) (Hash40, error) {
	if IsRaw(name) {
		return ParseRaw(name)
	}
	if h, ok := labels.Hash(name); ok {
		return h, nil
	}
	return Of(name), nil
}

// ReadLabels reads a label file. Each line holds either a bare label, whose
// hash is computed, or "0x<hex>,label" with any number of hex digits. Blank lines and lines starting
// with '#' are skipped.
func ReadLabels(r io.Reader) (*Labels, error) {
	res := NewLabels()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		hashPart, label, found := strings.Cut(line, ",")
		if !found {
			res.AddString(line)
			continue
		}
		h, err := parseHex(strings.TrimSpace(hashPart))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLabels, ln, err)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("%w: line %d: empty label", ErrLabels, ln)
		}
		res.Add(label, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLabels, err)
	}
	return res, nil
}

// parseHex reads "0x" followed by up to 40 bits of hex digits.
func parseHex(s string) (Hash40, error) {
	if len(s) < 3 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0, fmt.Errorf("hash40: %q is not a hex hash", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("hash40: %q is not a hex hash", s)
	}
	return New(v)
}
