package prcxml

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ultimate-research/prc-rs/debug"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

const header = `<?xml version="1.0" encoding="utf-8"?>`

// canonicalNaN is the NaN written and read as plain "NaN".
const canonicalNaN = 0x7fc00000

// Encode writes node as an XML document to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	bw := bufio.NewWriter(w)
	if err := writeString(bw, header+"\n"); err != nil {
		return err
	}
	if err := encode(node, nil, bw, es); err != nil {
		return err
	}
	if err := writeString(bw, "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// ToText returns the XML document for node, naming hashes from labels, which
// may be nil.
func ToText(node *ir.Node, labels *hash40.Labels) []byte {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeLabels(labels)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// name returns the text for h and whether it is a label.
func (es *EncState) name(h hash40.Hash40) (string, bool) {
	label, ok := hash40.LabelOf(h, es.labels)
	if !ok || hash40.IsRaw(label) || label == "" || label != strings.TrimSpace(label) || !isCharData(label) {
		return h.String(), false
	}
	// a label bound to another hash would read back as that hash
	if back, _ := es.labels.Hash(label); back != h {
		return h.String(), false
	}
	return label, true
}

func (es *EncState) nameColored(t ir.Type, h hash40.Hash40) string {
	s, isLabel := es.name(h)
	s = escape(s)
	if isLabel {
		return es.color(t, LabelColor, s)
	}
	return es.color(t, RawColor, s)
}

// open writes the start tag of n; key is non-nil for struct children.
func (es *EncState) open(w io.Writer, n *ir.Node, key *hash40.Hash40, extra string, empty bool) error {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", es.indent*es.depth))
	b.WriteString(es.color(n.Type, SepColor, "<"))
	b.WriteString(es.color(n.Type, TagColor, n.Type.String()))
	if key != nil {
		b.WriteString(" ")
		b.WriteString(es.color(n.Type, AttrColor, "hash"))
		b.WriteString(es.color(n.Type, SepColor, `="`))
		b.WriteString(es.nameColored(n.Type, *key))
		b.WriteString(es.color(n.Type, SepColor, `"`))
	}
	if extra != "" {
		b.WriteString(" ")
		b.WriteString(es.color(n.Type, AttrColor, extra))
		b.WriteString(es.color(n.Type, SepColor, `="`))
		b.WriteString(es.color(n.Type, ValueColor, "hex"))
		b.WriteString(es.color(n.Type, SepColor, `"`))
	}
	if empty {
		b.WriteString(es.color(n.Type, SepColor, "/>"))
	} else {
		b.WriteString(es.color(n.Type, SepColor, ">"))
	}
	return writeString(w, b.String())
}

func (es *EncState) close(w io.Writer, t ir.Type, indent bool) error {
	var b strings.Builder
	if indent {
		b.WriteString(strings.Repeat(" ", es.indent*es.depth))
	}
	b.WriteString(es.color(t, SepColor, "</"))
	b.WriteString(es.color(t, TagColor, t.String()))
	b.WriteString(es.color(t, SepColor, ">"))
	return writeString(w, b.String())
}

func encode(n *ir.Node, key *hash40.Hash40, w io.Writer, es *EncState) error {
	switch n.Type {
	case ir.ListType, ir.StructType:
		if n.Len() == 0 {
			return es.open(w, n, key, "", true)
		}
		if err := es.open(w, n, key, "", false); err != nil {
			return err
		}
		es.depth++
		if n.Type == ir.ListType {
			for i := range n.Len() {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
				if err := encode(n.Index(i), nil, w, es); err != nil {
					return err
				}
			}
		} else {
			for k, v := range n.Entries() {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
				if err := encode(v, &k, w, es); err != nil {
					return err
				}
			}
		}
		es.depth--
		if err := writeString(w, "\n"); err != nil {
			return err
		}
		return es.close(w, n.Type, true)
	}

	text, enc := scalarText(n, es)
	if err := es.open(w, n, key, enc, false); err != nil {
		return err
	}
	if err := writeString(w, text); err != nil {
		return err
	}
	return es.close(w, n.Type, false)
}

// scalarText returns the escaped, colored element text of a scalar and the
// name of an extra encoding attribute, if any.
func scalarText(n *ir.Node, es *EncState) (string, string) {
	var s string
	switch n.Type {
	case ir.BoolType:
		v, _ := n.AsBool()
		s = strconv.FormatBool(v)
	case ir.I8Type, ir.U8Type, ir.I16Type, ir.U16Type, ir.I32Type, ir.U32Type:
		v, _ := n.AsInt()
		s = strconv.FormatInt(v, 10)
	case ir.FloatType:
		v, _ := n.AsFloat()
		s = FormatFloat(v)
	case ir.HashType:
		h, _ := n.AsHash()
		return es.nameColored(ir.HashType, h), ""
	case ir.StringType:
		v, _ := n.AsString()
		if !isCharData(v) {
			if debug.XML() {
				debug.Logf("xml: hex encoding string %q", v)
			}
			return es.color(ir.StringType, ValueColor, hex.EncodeToString([]byte(v))), "enc"
		}
		return es.color(ir.StringType, ValueColor, escape(v)), ""
	default:
		panic(fmt.Sprintf("prcxml: unknown node type %d", n.Type))
	}
	return es.color(n.Type, ValueColor, s), ""
}

// FormatFloat returns the shortest decimal text reading back as v, or
// NaN(0x...) for a NaN with a non-default bit pattern.
func FormatFloat(v float32) string {
	if bits := math.Float32bits(v); math.IsNaN(float64(v)) && bits != canonicalNaN {
		return fmt.Sprintf("NaN(0x%08x)", bits)
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// isCharData reports whether s survives as XML character data.
func isCharData(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xd7ff:
		case r >= 0xe000 && r <= 0xfffd:
		case r >= 0x10000 && r <= 0x10ffff:
		default:
			return false
		}
	}
	return true
}
