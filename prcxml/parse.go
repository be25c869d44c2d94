package prcxml

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ultimate-research/prc-rs/debug"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

var aliases = map[string]ir.Type{
	"sbyte":  ir.I8Type,
	"byte":   ir.U8Type,
	"short":  ir.I16Type,
	"ushort": ir.U16Type,
	"int":    ir.I32Type,
	"uint":   ir.U32Type,
	"hash40": ir.HashType,
}

func elemType(name string) (ir.Type, bool) {
	if t, err := ir.ParseType(name); err == nil {
		return t, true
	}
	t, ok := aliases[name]
	return t, ok
}

type frame struct {
	t    ir.Type
	node *ir.Node
	key  hash40.Hash40
	path string
	line int
	col  int
	hex  bool
	text strings.Builder
}

type parser struct {
	opts  *parseOpts
	dec   *xml.Decoder
	stack []*frame
	root  *ir.Node
	elems int
}

// Parse reads an XML document produced by Encode, or by older tools using the
// alias element names.
func Parse(data []byte, opts ...ParseOption) (*ir.Node, error) {
	p := &parser{opts: &parseOpts{}, dec: xml.NewDecoder(bytes.NewReader(data))}
	for _, opt := range opts {
		opt(p.opts)
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	if debug.XML() {
		debug.Logf("xml: parsed %d elements", p.elems)
	}
	return root, nil
}

// FromText parses data, resolving names with labels, which may be nil.
func FromText(data []byte, labels *hash40.Labels) (*ir.Node, error) {
	return Parse(data, ParseLabels(labels))
}

func (p *parser) errorf(path string, format string, args ...any) error {
	line, col := p.dec.InputPos()
	return &ParseError{Path: path, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) frameErr(f *frame, format string, args ...any) error {
	return &ParseError{Path: f.path, Line: f.line, Col: f.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) parse() (*ir.Node, error) {
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				return nil, &ParseError{Line: se.Line, Msg: se.Msg}
			}
			return nil, p.errorf("", "%v", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if err := p.start(tok); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := p.end(); err != nil {
				return nil, err
			}
		case xml.CharData:
			if err := p.chars(tok); err != nil {
				return nil, err
			}
		}
	}
	if len(p.stack) != 0 {
		return nil, p.frameErr(p.top(), "unclosed element")
	}
	if p.root == nil {
		return nil, p.errorf("", "no root element")
	}
	return p.root, nil
}

func (p *parser) start(se xml.StartElement) error {
	parent := p.top()
	path := "$"
	if parent != nil {
		path = parent.path
	}
	line, col := p.dec.InputPos()
	t, ok := elemType(se.Name.Local)
	if !ok {
		return p.errorf(path, "unknown element <%s>", se.Name.Local)
	}
	f := &frame{t: t, path: path, line: line, col: col}
	var hashAttr *string
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "hash":
			v := a.Value
			hashAttr = &v
		case "index":
			if parent == nil || parent.t != ir.ListType {
				return p.errorf(path, "index attribute outside a list")
			}
		case "enc":
			if t != ir.StringType || a.Value != "hex" {
				return p.errorf(path, "unsupported enc=%q on <%s>", a.Value, se.Name.Local)
			}
			f.hex = true
		default:
			return p.errorf(path, "unexpected attribute %s", a.Name.Local)
		}
	}
	switch {
	case parent == nil:
		if p.root != nil {
			return p.errorf(path, "multiple root elements")
		}
		if hashAttr != nil {
			return p.errorf(path, "hash attribute on the root element")
		}
	case parent.t == ir.StructType:
		if hashAttr == nil {
			return p.errorf(path, "struct child <%s> without hash attribute", se.Name.Local)
		}
		key, err := p.resolve(*hashAttr)
		if err != nil {
			return p.errorf(path+ir.FieldSegment(*hashAttr), "hash attribute: %v", err)
		}
		if _, dup := parent.node.Lookup(key); dup {
			return p.errorf(path, "duplicate struct key %q", *hashAttr)
		}
		f.key = key
		f.path = path + ir.FieldSegment(*hashAttr)
	case parent.t == ir.ListType:
		if hashAttr != nil {
			return p.errorf(path, "hash attribute on a list element")
		}
		f.path = path + ir.IndexSegment(parent.node.Len())
	default:
		return p.errorf(path, "element <%s> inside <%s>", se.Name.Local, parent.t)
	}
	switch t {
	case ir.ListType:
		f.node = ir.NewList()
	case ir.StructType:
		f.node = ir.NewStruct()
	}
	p.stack = append(p.stack, f)
	p.elems++
	return nil
}

func (p *parser) chars(cd xml.CharData) error {
	f := p.top()
	if f == nil || f.t == ir.ListType || f.t == ir.StructType {
		if len(bytes.TrimSpace(cd)) != 0 {
			path := ""
			if f != nil {
				path = f.path
			}
			return p.errorf(path, "unexpected text %q", strings.TrimSpace(string(cd)))
		}
		return nil
	}
	f.text.Write(cd)
	return nil
}

func (p *parser) end() error {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	n := f.node
	if n == nil {
		v, err := p.scalar(f)
		if err != nil {
			return err
		}
		n = v
	}
	parent := p.top()
	if parent == nil {
		p.root = n
		return nil
	}
	var err error
	if parent.t == ir.StructType {
		err = parent.node.Set(f.key, n)
	} else {
		err = parent.node.Append(n)
	}
	if err != nil {
		return p.frameErr(f, "%v", err)
	}
	return nil
}

func (p *parser) resolve(name string) (hash40.Hash40, error) {
	if name == "" {
		return 0, errors.New("empty name")
	}
	if p.opts.strict && !hash40.IsRaw(name) {
		h, ok := p.opts.labels.Hash(name)
		if !ok {
			return 0, fmt.Errorf("unknown label %q", name)
		}
		return h, nil
	}
	return hash40.Resolve(name, p.opts.labels)
}

func (p *parser) scalar(f *frame) (*ir.Node, error) {
	raw := f.text.String()
	if f.t == ir.StringType {
		if f.hex {
			b, err := hex.DecodeString(strings.TrimSpace(raw))
			if err != nil {
				return nil, p.frameErr(f, "bad hex string: %v", err)
			}
			raw = string(b)
		}
		if strings.IndexByte(raw, 0) != -1 {
			return nil, p.frameErr(f, "string contains a NUL byte")
		}
		return ir.FromString(raw), nil
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, p.frameErr(f, "empty <%s>", f.t)
	}
	switch f.t {
	case ir.BoolType:
		switch s {
		case "true":
			return ir.FromBool(true), nil
		case "false":
			return ir.FromBool(false), nil
		}
		return nil, p.frameErr(f, "bad bool %q", s)
	case ir.I8Type:
		v, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromI8(int8(v)), nil
	case ir.U8Type:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromU8(uint8(v)), nil
	case ir.I16Type:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromI16(int16(v)), nil
	case ir.U16Type:
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromU16(uint16(v)), nil
	case ir.I32Type:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromI32(int32(v)), nil
	case ir.U32Type:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromU32(uint32(v)), nil
	case ir.FloatType:
		v, err := ParseFloat(s)
		if err != nil {
			return nil, p.numErr(f, s, err)
		}
		return ir.FromFloat(v), nil
	case ir.HashType:
		h, err := p.resolve(s)
		if err != nil {
			return nil, p.frameErr(f, "bad hash %q: %v", s, err)
		}
		return ir.FromHash(h), nil
	default:
		panic(fmt.Sprintf("prcxml: unknown scalar type %d", f.t))
	}
}

func (p *parser) numErr(f *frame, s string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		err = ne.Err
	}
	return p.frameErr(f, "bad %s %q: %v", f.t, s, err)
}

// ParseFloat reads text written by FormatFloat.
func ParseFloat(s string) (float32, error) {
	if rest, ok := strings.CutPrefix(s, "NaN("); ok {
		hexBits, ok := strings.CutSuffix(rest, ")")
		if !ok || !strings.HasPrefix(hexBits, "0x") {
			return 0, strconv.ErrSyntax
		}
		bits, err := strconv.ParseUint(hexBits[2:], 16, 32)
		if err != nil {
			return 0, strconv.ErrSyntax
		}
		v := math.Float32frombits(uint32(bits))
		if !math.IsNaN(float64(v)) {
			return 0, strconv.ErrSyntax
		}
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return math.Float32frombits(canonicalNaN), nil
	}
	return float32(v), nil
}
