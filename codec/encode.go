package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ultimate-research/prc-rs/debug"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
	"github.com/ultimate-research/prc-rs/pool"
)

// a struct entry table waiting for final hash pool indices
type tableJob struct {
	slot    int
	keys    []hash40.Hash40
	offsets []uint32
}

type encoder struct {
	hashes *pool.HashPool
	refs   *pool.RefPool
	tables []tableJob
	// next table to emit, in traversal order
	next int
}

// Encode writes node as a complete param file.
func Encode(node *ir.Node) []byte {
	e := &encoder{
		hashes: pool.NewHashPool(),
		refs:   pool.NewRefPool(),
	}
	size := e.collect(node)
	e.hashes.Finalize()
	for _, job := range e.tables {
		entries := make([]pool.Entry, len(job.keys))
		for i, k := range job.keys {
			idx, _ := e.hashes.Index(k)
			entries[i] = pool.Entry{HashIndex: uint32(idx), Offset: job.offsets[i]}
		}
		e.refs.SetTable(job.slot, entries)
	}
	e.refs.Finalize()
	if debug.Encode() {
		debug.Logf("encode: %d hashes, %d strings, %d/%d tables, ref section %d bytes, nodes %d bytes",
			e.hashes.Len(), len(e.refs.Strings()), e.refs.Tables(), len(e.tables), e.refs.Size(), size)
	}

	out := make([]byte, 0, headerSize+e.hashes.Size()+e.refs.Size()+size)
	out = append(out, Magic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(e.hashes.Size()))
	out = binary.LittleEndian.AppendUint32(out, uint32(e.refs.Size()))
	out = e.hashes.AppendTo(out)
	out = e.refs.AppendTo(out)
	start := len(out)
	out = out[:start+size]
	end := e.emit(out, start, node)
	if end != len(out) {
		panic(fmt.Sprintf("codec: emitted %d node bytes, sized %d", end-start, size))
	}
	return out
}

// EncodeTo writes the encoding of node to w.
func EncodeTo(w io.Writer, node *ir.Node) error {
	_, err := w.Write(Encode(node))
	return err
}

// collect interns the pools for the subtree at n, in the order emit visits
// it, and returns the subtree's size in bytes.
func (e *encoder) collect(n *ir.Node) int {
	switch n.Type {
	case ir.BoolType, ir.I8Type, ir.U8Type:
		return 2
	case ir.I16Type, ir.U16Type:
		return 3
	case ir.I32Type, ir.U32Type, ir.FloatType:
		return 5
	case ir.HashType:
		h, _ := n.AsHash()
		e.hashes.Add(h)
		return 5
	case ir.StringType:
		s, _ := n.AsString()
		e.refs.AddString(s)
		return 5
	case ir.ListType:
		size := listHeader + 4*n.Len()
		for i := range n.Len() {
			size += e.collect(n.Index(i))
		}
		return size
	case ir.StructType:
		job := tableJob{
			slot:    e.refs.Reserve(),
			keys:    make([]hash40.Hash40, 0, n.Len()),
			offsets: make([]uint32, 0, n.Len()),
		}
		ji := len(e.tables)
		e.tables = append(e.tables, job)
		size := structHeader
		for k, v := range n.SortedEntries() {
			e.hashes.Add(k)
			job.keys = append(job.keys, k)
			job.offsets = append(job.offsets, uint32(size))
			size += e.collect(v)
		}
		e.tables[ji] = job
		return size
	default:
		panic(fmt.Sprintf("codec: unknown node type %d", n.Type))
	}
}

// emit writes the subtree at n to buf at pos and returns the end position.
func (e *encoder) emit(buf []byte, pos int, n *ir.Node) int {
	buf[pos] = byte(n.Type)
	p := pos + 1
	switch n.Type {
	case ir.BoolType:
		v, _ := n.AsBool()
		buf[p] = 0
		if v {
			buf[p] = 1
		}
		return p + 1
	case ir.I8Type:
		v, _ := n.AsI8()
		buf[p] = byte(v)
		return p + 1
	case ir.U8Type:
		v, _ := n.AsU8()
		buf[p] = v
		return p + 1
	case ir.I16Type:
		v, _ := n.AsI16()
		binary.LittleEndian.PutUint16(buf[p:], uint16(v))
		return p + 2
	case ir.U16Type:
		v, _ := n.AsU16()
		binary.LittleEndian.PutUint16(buf[p:], v)
		return p + 2
	case ir.I32Type:
		v, _ := n.AsI32()
		binary.LittleEndian.PutUint32(buf[p:], uint32(v))
		return p + 4
	case ir.U32Type:
		v, _ := n.AsU32()
		binary.LittleEndian.PutUint32(buf[p:], v)
		return p + 4
	case ir.FloatType:
		v, _ := n.AsFloat()
		binary.LittleEndian.PutUint32(buf[p:], math.Float32bits(v))
		return p + 4
	case ir.HashType:
		h, _ := n.AsHash()
		idx, _ := e.hashes.Index(h)
		binary.LittleEndian.PutUint32(buf[p:], uint32(idx))
		return p + 4
	case ir.StringType:
		s, _ := n.AsString()
		binary.LittleEndian.PutUint32(buf[p:], e.refs.Offset(e.refs.AddString(s)))
		return p + 4
	case ir.ListType:
		count := n.Len()
		binary.LittleEndian.PutUint32(buf[p:], uint32(count))
		table := pos + listHeader
		at := table + 4*count
		for i := range count {
			binary.LittleEndian.PutUint32(buf[table+4*i:], uint32(at-pos))
			at = e.emit(buf, at, n.Index(i))
		}
		return at
	case ir.StructType:
		job := e.tables[e.next]
		e.next++
		binary.LittleEndian.PutUint32(buf[p:], uint32(n.Len()))
		binary.LittleEndian.PutUint32(buf[p+4:], e.refs.Offset(job.slot))
		at := pos + structHeader
		for _, v := range n.SortedEntries() {
			at = e.emit(buf, at, v)
		}
		return at
	default:
		panic(fmt.Sprintf("codec: unknown node type %d", n.Type))
	}
}
