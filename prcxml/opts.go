package prcxml

import (
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

type EncState struct {
	depth, indent int
	labels        *hash40.Labels

	Color func(ir.Type, ColorAttr, string) string
}

type EncodeOption func(*EncState)

// Indent sets the number of spaces per nesting level, 2 by default.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 0) }
}

// EncodeLabels names keys and hash values from labels.
func EncodeLabels(labels *hash40.Labels) EncodeOption {
	return func(es *EncState) { es.labels = labels }
}

// EncodeColors renders the document with terminal colors.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

type parseOpts struct {
	labels *hash40.Labels
	strict bool
}

type ParseOption func(*parseOpts)

// ParseLabels resolves names in hash attributes and hash values with labels.
func ParseLabels(labels *hash40.Labels) ParseOption {
	return func(o *parseOpts) { o.labels = labels }
}

// Strict rejects names missing from the labels instead of hashing them, which
// catches misspelled keys. Raw hashes are always accepted.
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}
