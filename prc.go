// Package prc converts param files between their binary form, XML and YAML.
//
// The work is done by the codec, prcxml and libdiff packages; this package
// ties them together behind format detection.
package prc

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/ultimate-research/prc-rs/codec"
	"github.com/ultimate-research/prc-rs/format"
	"github.com/ultimate-research/prc-rs/gomap"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
	"github.com/ultimate-research/prc-rs/libdiff"
	"github.com/ultimate-research/prc-rs/prcxml"
)

type Config struct {
	Labels   *hash40.Labels
	Lenient  bool
	Strict   bool
	MaxDepth int
}

type Opt func(*Config)

// WithLabels names hashes from labels in text output and resolves names in
// text input.
func WithLabels(labels *hash40.Labels) Opt {
	return func(c *Config) { c.Labels = labels }
}

// WithLenient accepts binary files whose hash pool or struct tables are not
// sorted.
func WithLenient(v bool) Opt {
	return func(c *Config) { c.Lenient = v }
}

// WithStrict fails text input naming a key or hash missing from the labels.
func WithStrict(v bool) Opt {
	return func(c *Config) { c.Strict = v }
}

func WithMaxDepth(n int) Opt {
	return func(c *Config) { c.MaxDepth = n }
}

func config(opts []Opt) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) decodeOpts() []codec.DecodeOption {
	return []codec.DecodeOption{codec.Lenient(c.Lenient), codec.WithMaxDepth(c.MaxDepth)}
}

func (c *Config) parseOpts() []prcxml.ParseOption {
	return []prcxml.ParseOption{prcxml.ParseLabels(c.Labels), prcxml.Strict(c.Strict)}
}

// Load reads data in the format detected from its content or from name.
func Load(name string, data []byte, opts ...Opt) (*ir.Node, format.Format, error) {
	f, err := format.Detect(name, data)
	if err != nil {
		return nil, 0, err
	}
	node, err := LoadAs(f, data, opts...)
	return node, f, err
}

// LoadAs reads data in format f. YAML is an output format only.
func LoadAs(f format.Format, data []byte, opts ...Opt) (*ir.Node, error) {
	c := config(opts)
	switch f {
	case format.BinaryFormat:
		return codec.Decode(data, c.decodeOpts()...)
	case format.XMLFormat:
		return prcxml.Parse(data, c.parseOpts()...)
	default:
		return nil, fmt.Errorf("%w: cannot read %s", format.ErrBadFormat, f)
	}
}

// Write writes node to w in format f. Encode options apply to XML only.
func Write(w io.Writer, node *ir.Node, f format.Format, labels *hash40.Labels, xmlOpts ...prcxml.EncodeOption) error {
	switch f {
	case format.BinaryFormat:
		return codec.EncodeTo(w, node)
	case format.XMLFormat:
		xmlOpts = append([]prcxml.EncodeOption{prcxml.EncodeLabels(labels)}, xmlOpts...)
		return prcxml.Encode(node, w, xmlOpts...)
	case format.YAMLFormat:
		d, err := ToYAML(node, labels)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, f)
	}
}

// Unmarshal reads a binary or XML param file into the value p points to.
// Fields map to keys as described in package gomap.
func Unmarshal(name string, data []byte, p any, opts ...Opt) error {
	node, _, err := Load(name, data, opts...)
	if err != nil {
		return err
	}
	return gomap.FromNode(node, p, gomap.LoadLabels(config(opts).Labels))
}

// Disassemble converts a binary param file to XML.
func Disassemble(bin []byte, opts ...Opt) ([]byte, error) {
	c := config(opts)
	node, err := codec.Decode(bin, c.decodeOpts()...)
	if err != nil {
		return nil, err
	}
	return prcxml.ToText(node, c.Labels), nil
}

// Assemble converts an XML document to a binary param file.
func Assemble(text []byte, opts ...Opt) ([]byte, error) {
	c := config(opts)
	node, err := prcxml.Parse(text, c.parseOpts()...)
	if err != nil {
		return nil, err
	}
	return codec.Encode(node), nil
}

// ToYAML renders node as plain YAML data. Hash values and keys appear as
// labels or raw hashes, so the result does not carry node types.
func ToYAML(node *ir.Node, labels *hash40.Labels) ([]byte, error) {
	return yaml.Marshal(libdiff.Plain(node, labels))
}

// Diff compares two files of any readable format. It returns nil when they
// hold equal trees.
func Diff(a, b []byte, opts ...Opt) ([]libdiff.Change, error) {
	c := config(opts)
	from, _, err := Load("", a, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading first input: %w", err)
	}
	to, _, err := Load("", b, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading second input: %w", err)
	}
	return libdiff.Diff(from, to, c.Labels), nil
}
