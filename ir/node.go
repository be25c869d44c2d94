package ir

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/ultimate-research/prc-rs/hash40"
)

// Node is a param value. Type selects which payload is meaningful; payloads
// are only reachable through constructors, As* extractors and the container
// mutators so that a Node is always well formed.
type Node struct {
	// Type is set by the constructor and must not be changed afterwards; the
	// payload of a retyped node is undefined.
	Type Type

	parent *Node

	// struct keys, parallel to values
	keys   []hash40.Hash40
	values []*Node
	// key positions, kept once a struct grows past indexThreshold
	index map[hash40.Hash40]int

	b bool
	i int64
	f float32
	h hash40.Hash40
	s string
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, b: v}
}

func FromI8(v int8) *Node {
	return &Node{Type: I8Type, i: int64(v)}
}

func FromU8(v uint8) *Node {
	return &Node{Type: U8Type, i: int64(v)}
}

func FromI16(v int16) *Node {
	return &Node{Type: I16Type, i: int64(v)}
}

func FromU16(v uint16) *Node {
	return &Node{Type: U16Type, i: int64(v)}
}

func FromI32(v int32) *Node {
	return &Node{Type: I32Type, i: int64(v)}
}

func FromU32(v uint32) *Node {
	return &Node{Type: U32Type, i: int64(v)}
}

func FromFloat(v float32) *Node {
	return &Node{Type: FloatType, f: v}
}

// FromHash panics if h does not fit in 40 bits.
func FromHash(h hash40.Hash40) *Node {
	if !h.Valid() {
		panic(fmt.Errorf("ir: FromHash: %w: %#x", hash40.ErrRange, uint64(h)))
	}
	return &Node{Type: HashType, h: h}
}

// FromString panics if v contains a NUL byte, which terminates strings in the
// binary format.
func FromString(v string) *Node {
	if strings.IndexByte(v, 0) != -1 {
		panic(fmt.Errorf("ir: FromString: %w: NUL byte in %q", ErrType, v))
	}
	return &Node{Type: StringType, s: v}
}

// NewList returns a list holding vs, which must not have parents.
func NewList(vs ...*Node) *Node {
	res := &Node{Type: ListType, values: make([]*Node, 0, len(vs))}
	for _, v := range vs {
		if err := res.Append(v); err != nil {
			panic(fmt.Errorf("ir: NewList: %w", err))
		}
	}
	return res
}

func NewStruct() *Node {
	return &Node{Type: StructType}
}

type KeyVal struct {
	Key hash40.Hash40
	Val *Node
}

// FromKeyVals builds a struct from kvs in order. A repeated key replaces the
// earlier value.
func FromKeyVals(kvs []KeyVal) *Node {
	res := NewStruct()
	for _, kv := range kvs {
		if err := res.Set(kv.Key, kv.Val); err != nil {
			panic(fmt.Errorf("ir: FromKeyVals: %w", err))
		}
	}
	return res
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) typeErr(want string) error {
	return fmt.Errorf("%w: %s is not %s", ErrType, n.Type, want)
}

func (n *Node) AsBool() (bool, error) {
	if n.Type != BoolType {
		return false, n.typeErr("bool")
	}
	return n.b, nil
}

func (n *Node) AsI8() (int8, error) {
	if n.Type != I8Type {
		return 0, n.typeErr("i8")
	}
	return int8(n.i), nil
}

func (n *Node) AsU8() (uint8, error) {
	if n.Type != U8Type {
		return 0, n.typeErr("u8")
	}
	return uint8(n.i), nil
}

func (n *Node) AsI16() (int16, error) {
	if n.Type != I16Type {
		return 0, n.typeErr("i16")
	}
	return int16(n.i), nil
}

func (n *Node) AsU16() (uint16, error) {
	if n.Type != U16Type {
		return 0, n.typeErr("u16")
	}
	return uint16(n.i), nil
}

func (n *Node) AsI32() (int32, error) {
	if n.Type != I32Type {
		return 0, n.typeErr("i32")
	}
	return int32(n.i), nil
}

func (n *Node) AsU32() (uint32, error) {
	if n.Type != U32Type {
		return 0, n.typeErr("u32")
	}
	return uint32(n.i), nil
}

// AsInt returns the value of any integer type widened to int64.
func (n *Node) AsInt() (int64, error) {
	if !n.Type.IsInt() {
		return 0, n.typeErr("an integer")
	}
	return n.i, nil
}

func (n *Node) AsFloat() (float32, error) {
	if n.Type != FloatType {
		return 0, n.typeErr("float")
	}
	return n.f, nil
}

func (n *Node) AsHash() (hash40.Hash40, error) {
	if n.Type != HashType {
		return 0, n.typeErr("hash")
	}
	return n.h, nil
}

func (n *Node) AsString() (string, error) {
	if n.Type != StringType {
		return "", n.typeErr("string")
	}
	return n.s, nil
}

// Len is the number of entries of a list or struct and 0 otherwise.
func (n *Node) Len() int {
	return len(n.values)
}

// Index returns the i'th element of a list, or nil.
func (n *Node) Index(i int) *Node {
	if n.Type != ListType || i < 0 || i >= len(n.values) {
		return nil
	}
	return n.values[i]
}

// Get returns the value under key in a struct, or nil.
func (n *Node) Get(key hash40.Hash40) *Node {
	v, _ := n.Lookup(key)
	return v
}

func (n *Node) Lookup(key hash40.Hash40) (*Node, bool) {
	if n.Type != StructType {
		return nil, false
	}
	i := n.find(key)
	if i == -1 {
		return nil, false
	}
	return n.values[i], true
}

const indexThreshold = 16

func (n *Node) find(key hash40.Hash40) int {
	if n.index == nil {
		return slices.Index(n.keys, key)
	}
	i, ok := n.index[key]
	if !ok {
		return -1
	}
	return i
}

func (n *Node) reindex() {
	if len(n.keys) <= indexThreshold {
		n.index = nil
		return
	}
	n.index = make(map[hash40.Hash40]int, len(n.keys))
	for i, k := range n.keys {
		n.index[k] = i
	}
}

// Keys returns the struct keys in insertion order.
func (n *Node) Keys() []hash40.Hash40 {
	return slices.Clone(n.keys)
}

// Values returns the list elements or struct values.
func (n *Node) Values() []*Node {
	return slices.Clone(n.values)
}

// Entries iterates over struct entries in insertion order.
func (n *Node) Entries() iter.Seq2[hash40.Hash40, *Node] {
	return func(yield func(hash40.Hash40, *Node) bool) {
		if n.Type != StructType {
			return
		}
		for i, k := range n.keys {
			if !yield(k, n.values[i]) {
				return
			}
		}
	}
}

// SortedEntries iterates over struct entries by ascending key.
func (n *Node) SortedEntries() iter.Seq2[hash40.Hash40, *Node] {
	return func(yield func(hash40.Hash40, *Node) bool) {
		if n.Type != StructType {
			return
		}
		order := make([]int, len(n.keys))
		for i := range order {
			order[i] = i
		}
		slices.SortFunc(order, func(a, b int) int {
			switch {
			case n.keys[a] < n.keys[b]:
				return -1
			case n.keys[a] > n.keys[b]:
				return 1
			}
			return 0
		})
		for _, i := range order {
			if !yield(n.keys[i], n.values[i]) {
				return
			}
		}
	}
}

func (n *Node) adopt(v *Node) error {
	if v == nil {
		return fmt.Errorf("%w: nil node", ErrType)
	}
	if v.parent != nil {
		return ErrOwned
	}
	for p := n; p != nil; p = p.parent {
		if p == v {
			return ErrCycle
		}
	}
	v.parent = n
	return nil
}

// Set inserts v under key in a struct, replacing and detaching any value
// already there.
func (n *Node) Set(key hash40.Hash40, v *Node) error {
	if n.Type != StructType {
		return n.typeErr("struct")
	}
	if !key.Valid() {
		return fmt.Errorf("%w: %#x", hash40.ErrRange, uint64(key))
	}
	if err := n.adopt(v); err != nil {
		return err
	}
	if i := n.find(key); i != -1 {
		n.values[i].parent = nil
		n.values[i] = v
		return nil
	}
	n.keys = append(n.keys, key)
	n.values = append(n.values, v)
	switch {
	case n.index != nil:
		n.index[key] = len(n.keys) - 1
	case len(n.keys) > indexThreshold:
		n.reindex()
	}
	return nil
}

// Remove detaches and returns the value under key, or nil.
func (n *Node) Remove(key hash40.Hash40) *Node {
	if n.Type != StructType {
		return nil
	}
	i := n.find(key)
	if i == -1 {
		return nil
	}
	v := n.values[i]
	n.keys = slices.Delete(n.keys, i, i+1)
	n.values = slices.Delete(n.values, i, i+1)
	n.reindex()
	v.parent = nil
	return v
}

func (n *Node) Append(v *Node) error {
	return n.Insert(len(n.values), v)
}

// Insert places v at position i of a list, shifting later elements.
func (n *Node) Insert(i int, v *Node) error {
	if n.Type != ListType {
		return n.typeErr("list")
	}
	if i < 0 || i > len(n.values) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(n.values))
	}
	if err := n.adopt(v); err != nil {
		return err
	}
	n.values = slices.Insert(n.values, i, v)
	return nil
}

// SetIndex replaces the i'th list element, detaching the old one.
func (n *Node) SetIndex(i int, v *Node) error {
	if n.Type != ListType {
		return n.typeErr("list")
	}
	if i < 0 || i >= len(n.values) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(n.values))
	}
	if err := n.adopt(v); err != nil {
		return err
	}
	n.values[i].parent = nil
	n.values[i] = v
	return nil
}

// RemoveIndex detaches and returns the i'th list element.
func (n *Node) RemoveIndex(i int) (*Node, error) {
	if n.Type != ListType {
		return nil, n.typeErr("list")
	}
	if i < 0 || i >= len(n.values) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(n.values))
	}
	v := n.values[i]
	n.values = slices.Delete(n.values, i, i+1)
	v.parent = nil
	return v, nil
}

// Clone returns a deep copy of n without a parent.
func (n *Node) Clone() *Node {
	dst := &Node{
		Type: n.Type,
		b:    n.b,
		i:    n.i,
		f:    n.f,
		h:    n.h,
		s:    n.s,
		keys: slices.Clone(n.keys),
	}
	dst.reindex()
	if n.values != nil {
		dst.values = make([]*Node, len(n.values))
		for i, v := range n.values {
			c := v.Clone()
			c.parent = dst
			dst.values[i] = c
		}
	}
	return dst
}

func (n *Node) Root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// FloatBits is the bit pattern of a float node, used for exact comparison.
func (n *Node) FloatBits() uint32 {
	return math.Float32bits(n.f)
}
