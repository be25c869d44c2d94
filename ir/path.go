package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ultimate-research/prc-rs/hash40"
)

// Path addresses a node below a root: "$" is the root, ".name" selects a
// struct field by label or raw hash and "[i]" selects a list element.
// Fields containing any of ".[]$'" are written in single quotes.
type Path struct {
	Index *int
	Field *string
	Next  *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			buf.WriteString(FieldSegment(*x.Field))
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// FieldSegment renders name as a ".field" path segment.
func FieldSegment(name string) string {
	if name != "" && strings.IndexAny(name, "'.$[]\\") == -1 {
		return "." + name
	}
	esc := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return ".'" + esc.Replace(name) + "'"
}

// IndexSegment renders i as a "[i]" path segment.
func IndexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// KeyName is the label of key in labels or its raw form.
func KeyName(key hash40.Hash40, labels *hash40.Labels) string {
	if s, ok := hash40.LabelOf(key, labels); ok && !hash40.IsRaw(s) {
		return s
	}
	return key.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	var rest string
	switch frag[0] {
	case '.':
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		u64, err := strconv.ParseUint(frag[1:i+1], 10, 31)
		if err != nil {
			return err
		}
		index := int(u64)
		parent.Index = &index
		rest = frag[i+2:]
	default:
		return fmt.Errorf("expected '.' or '['")
	}
	if len(rest) == 0 {
		return nil
	}
	next := &Path{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				res = append(res, c)
			}
			escaped = !escaped
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath returns the node at path below n. Field names are resolved with
// hash40.Resolve against labels.
func (n *Node) GetPath(path string, labels *hash40.Labels) (*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	res := n
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Index != nil:
			if res.Type != ListType {
				return nil, fmt.Errorf("%w: index %d into %s", ErrType, *x.Index, res.Type)
			}
			next := res.Index(*x.Index)
			if next == nil {
				return nil, fmt.Errorf("%w: %d (len %d)", ErrIndex, *x.Index, res.Len())
			}
			res = next
		case x.Field != nil:
			if res.Type != StructType {
				return nil, fmt.Errorf("%w: field %q of %s", ErrType, *x.Field, res.Type)
			}
			key, err := hash40.Resolve(*x.Field, labels)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrPath, err)
			}
			next, ok := res.Lookup(key)
			if !ok {
				return nil, nil
			}
			res = next
		}
	}
	return res, nil
}
