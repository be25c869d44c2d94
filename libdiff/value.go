package libdiff

import (
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

// Value is the YAML rendering of a node: its type and its data. Struct data
// is a mapping from key names to plain data, in insertion order.
type Value struct {
	Type string `yaml:"type"`
	Data any    `yaml:"value"`
}

func MakeValue(n *ir.Node, labels *hash40.Labels) *Value {
	return &Value{Type: n.Type.String(), Data: Plain(n, labels)}
}

// Plain converts the subtree at n to values goccy/go-yaml renders directly.
// Hashes become their label or raw form.
func Plain(n *ir.Node, labels *hash40.Labels) any {
	switch n.Type {
	case ir.BoolType:
		v, _ := n.AsBool()
		return v
	case ir.I8Type, ir.U8Type, ir.I16Type, ir.U16Type, ir.I32Type, ir.U32Type:
		v, _ := n.AsInt()
		return v
	case ir.FloatType:
		v, _ := n.AsFloat()
		// shortest decimal, not the float64 widening of v
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		return f
	case ir.HashType:
		h, _ := n.AsHash()
		return ir.KeyName(h, labels)
	case ir.StringType:
		v, _ := n.AsString()
		return v
	case ir.ListType:
		res := make([]any, n.Len())
		for i := range n.Len() {
			res[i] = Plain(n.Index(i), labels)
		}
		return res
	case ir.StructType:
		res := make(yaml.MapSlice, 0, n.Len())
		for k, v := range n.Entries() {
			res = append(res, yaml.MapItem{Key: ir.KeyName(k, labels), Value: Plain(v, labels)})
		}
		return res
	default:
		panic("type")
	}
}
