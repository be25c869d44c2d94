package libdiff

import (
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

// Change is one difference between two trees.
type Change struct {
	Path  string `yaml:"path"`
	Kind  Kind   `yaml:"kind"`
	From  *Value `yaml:"from,omitempty"`
	To    *Value `yaml:"to,omitempty"`
	Patch string `yaml:"patch,omitempty"`
}

func makeChange(path string, from, to *ir.Node, labels *hash40.Labels) Change {
	res := Change{Path: path}
	switch {
	case from == nil:
		res.Kind = InsertKind
	case to == nil:
		res.Kind = DeleteKind
	default:
		res.Kind = ReplaceKind
	}
	if from != nil {
		res.From = MakeValue(from, labels)
	}
	if to != nil {
		res.To = MakeValue(to, labels)
	}
	return res
}
