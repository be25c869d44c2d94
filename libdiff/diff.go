package libdiff

import (
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

// Diff lists the changes turning from into to. Struct entries are matched by
// key, list elements by index. Paths name keys with labels where known.
func Diff(from, to *ir.Node, labels *hash40.Labels) []Change {
	d := &differ{labels: labels}
	d.diff("$", from, to)
	return d.changes
}

type differ struct {
	labels  *hash40.Labels
	changes []Change
}

func (d *differ) add(path string, from, to *ir.Node) {
	d.changes = append(d.changes, makeChange(path, from, to, d.labels))
}

func (d *differ) diff(path string, from, to *ir.Node) {
	if from.Type != to.Type {
		d.add(path, from, to)
		return
	}
	switch from.Type {
	case ir.StructType:
		for k, fv := range from.Entries() {
			p := path + ir.FieldSegment(ir.KeyName(k, d.labels))
			tv := to.Get(k)
			if tv == nil {
				d.add(p, fv, nil)
				continue
			}
			d.diff(p, fv, tv)
		}
		for k, tv := range to.Entries() {
			if _, ok := from.Lookup(k); !ok {
				d.add(path+ir.FieldSegment(ir.KeyName(k, d.labels)), nil, tv)
			}
		}
	case ir.ListType:
		n := min(from.Len(), to.Len())
		for i := range n {
			d.diff(path+ir.IndexSegment(i), from.Index(i), to.Index(i))
		}
		for i := n; i < from.Len(); i++ {
			d.add(path+ir.IndexSegment(i), from.Index(i), nil)
		}
		for i := n; i < to.Len(); i++ {
			d.add(path+ir.IndexSegment(i), nil, to.Index(i))
		}
	case ir.StringType:
		if c := DiffString(path, from, to, d.labels); c != nil {
			d.changes = append(d.changes, *c)
		}
	default:
		if !ir.Equal(from, to) {
			d.add(path, from, to)
		}
	}
}
