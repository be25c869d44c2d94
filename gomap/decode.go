package gomap

import (
	"fmt"
	"reflect"

	"github.com/ultimate-research/prc-rs/codec"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

type fromOpts struct {
	labels  *hash40.Labels
	lenient bool
}

type FromOption func(*fromOpts)

// LoadLabels resolves field names and names hash values with labels.
func LoadLabels(labels *hash40.Labels) FromOption {
	return func(o *fromOpts) { o.labels = labels }
}

// LoadLenient decodes binary input with codec.Lenient.
func LoadLenient(v bool) FromOption { return func(o *fromOpts) { o.lenient = v } }

// NodeFromer is implemented by types that read themselves from a param.
type NodeFromer interface {
	FromNode(n *ir.Node, labels *hash40.Labels) error
}

var (
	nodeType   = reflect.TypeFor[*ir.Node]()
	hashType   = reflect.TypeFor[hash40.Hash40]()
	fromerType = reflect.TypeFor[NodeFromer]()
)

// Load decodes a binary param file into the value p points to.
func Load(data []byte, p any, opts ...FromOption) error {
	do := applyOpts(opts)
	node, err := codec.Decode(data, codec.Lenient(do.lenient))
	if err != nil {
		return err
	}
	return fromNode(node, p, do)
}

// FromNode stores the param tree n in the value p points to.
func FromNode(n *ir.Node, p any, opts ...FromOption) error {
	return fromNode(n, p, applyOpts(opts))
}

func applyOpts(opts []FromOption) *fromOpts {
	do := &fromOpts{}
	for _, f := range opts {
		f(do)
	}
	return do
}

func fromNode(n *ir.Node, p any, do *fromOpts) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return &Error{Path: "$", Err: fmt.Errorf("%w: %T is not a non-nil pointer", ErrTarget, p)}
	}
	d := &decoder{labels: do.labels}
	return d.value("$", n, v.Elem())
}

type decoder struct {
	labels *hash40.Labels
}

func typeErr(n *ir.Node, v reflect.Value) error {
	return fmt.Errorf("%w: cannot read %s into %s", ir.ErrType, n.Type, v.Type())
}

func (d *decoder) value(path string, n *ir.Node, v reflect.Value) error {
	if v.CanAddr() && v.Addr().Type().Implements(fromerType) {
		if err := v.Addr().Interface().(NodeFromer).FromNode(n, d.labels); err != nil {
			return errAt(path, err)
		}
		return nil
	}
	switch v.Type() {
	case nodeType:
		v.Set(reflect.ValueOf(n.Clone()))
		return nil
	case hashType:
		h, err := n.AsHash()
		if err != nil {
			return errAt(path, typeErr(n, v))
		}
		v.SetUint(uint64(h))
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return d.value(path, n, v.Elem())
	case reflect.Bool:
		b, err := n.AsBool()
		if err != nil {
			return errAt(path, typeErr(n, v))
		}
		v.SetBool(b)
	case reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16, reflect.Int32, reflect.Uint32:
		if n.Type != sizedKinds[v.Kind()] {
			return errAt(path, typeErr(n, v))
		}
		return d.integer(path, n, v)
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		if !n.Type.IsInt() {
			return errAt(path, typeErr(n, v))
		}
		return d.integer(path, n, v)
	case reflect.Float32, reflect.Float64:
		f, err := n.AsFloat()
		if err != nil {
			return errAt(path, typeErr(n, v))
		}
		v.SetFloat(float64(f))
	case reflect.String:
		switch n.Type {
		case ir.StringType:
			s, _ := n.AsString()
			v.SetString(s)
		case ir.HashType:
			h, _ := n.AsHash()
			v.SetString(ir.KeyName(h, d.labels))
		default:
			return errAt(path, typeErr(n, v))
		}
	case reflect.Slice:
		if n.Type != ir.ListType {
			return errAt(path, typeErr(n, v))
		}
		s := reflect.MakeSlice(v.Type(), n.Len(), n.Len())
		if err := d.elems(path, n, s); err != nil {
			return err
		}
		v.Set(s)
	case reflect.Array:
		if n.Type != ir.ListType {
			return errAt(path, typeErr(n, v))
		}
		if n.Len() != v.Len() {
			return errAt(path, fmt.Errorf("%w: %d params for %s", ErrLength, n.Len(), v.Type()))
		}
		return d.elems(path, n, v)
	case reflect.Map:
		if n.Type != ir.StructType {
			return errAt(path, typeErr(n, v))
		}
		return d.mapEntries(path, n, v)
	case reflect.Struct:
		if n.Type != ir.StructType {
			return errAt(path, typeErr(n, v))
		}
		return d.strukt(path, n, v)
	default:
		return errAt(path, fmt.Errorf("%w: unsupported type %s", ErrTarget, v.Type()))
	}
	return nil
}

var sizedKinds = map[reflect.Kind]ir.Type{
	reflect.Int8:   ir.I8Type,
	reflect.Uint8:  ir.U8Type,
	reflect.Int16:  ir.I16Type,
	reflect.Uint16: ir.U16Type,
	reflect.Int32:  ir.I32Type,
	reflect.Uint32: ir.U32Type,
}

func (d *decoder) integer(path string, n *ir.Node, v reflect.Value) error {
	i, _ := n.AsInt()
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.OverflowInt(i) {
			return errAt(path, fmt.Errorf("%w: %d into %s", ErrRange, i, v.Type()))
		}
		v.SetInt(i)
	default:
		if i < 0 || v.OverflowUint(uint64(i)) {
			return errAt(path, fmt.Errorf("%w: %d into %s", ErrRange, i, v.Type()))
		}
		v.SetUint(uint64(i))
	}
	return nil
}

func (d *decoder) elems(path string, n *ir.Node, v reflect.Value) error {
	for i := range n.Len() {
		if err := d.value(path+ir.IndexSegment(i), n.Index(i), v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) mapEntries(path string, n *ir.Node, v reflect.Value) error {
	kt := v.Type().Key()
	if kt != hashType && kt.Kind() != reflect.String {
		return errAt(path, fmt.Errorf("%w: map key %s", ErrTarget, kt))
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(v.Type(), n.Len()))
	}
	for k, child := range n.Entries() {
		name := ir.KeyName(k, d.labels)
		ev := reflect.New(v.Type().Elem()).Elem()
		if err := d.value(path+ir.FieldSegment(name), child, ev); err != nil {
			return err
		}
		if kt == hashType {
			v.SetMapIndex(reflect.ValueOf(k), ev)
			continue
		}
		v.SetMapIndex(reflect.ValueOf(name).Convert(kt), ev)
	}
	return nil
}

func (d *decoder) strukt(path string, n *ir.Node, v reflect.Value) error {
	for _, f := range fields(v.Type()) {
		fpath := path + ir.FieldSegment(f.name)
		key, err := hash40.Resolve(f.name, d.labels)
		if err != nil {
			return errAt(fpath, fmt.Errorf("%w: field name: %w", ErrTarget, err))
		}
		child, ok := n.Lookup(key)
		if !ok {
			if f.optional {
				continue
			}
			return errAt(fpath, fmt.Errorf("%w: %s", ErrNotFound, key))
		}
		if err := d.value(fpath, child, v.FieldByIndex(f.index)); err != nil {
			return err
		}
	}
	return nil
}
