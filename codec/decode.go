package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"

	"github.com/ultimate-research/prc-rs/debug"
	"github.com/ultimate-research/prc-rs/hash40"
	"github.com/ultimate-research/prc-rs/ir"
)

type decoder struct {
	opts *decodeOpts
	data []byte

	hashes []hash40.Hash40

	refStart  int
	refEnd    int
	nodeStart int

	visited map[int]bool
}

// Decode parses a complete param file. On error no tree is returned.
func Decode(data []byte, opts ...DecodeOption) (*ir.Node, error) {
	d := &decoder{
		opts:    applyDecodeOpts(opts),
		data:    data,
		visited: map[int]bool{},
	}
	if err := d.header(); err != nil {
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("decode: %d hashes, ref section [%#x,%#x), nodes at %#x",
			len(d.hashes), d.refStart, d.refEnd, d.nodeStart)
	}
	return d.node(d.nodeStart, 0)
}

func (d *decoder) header() error {
	if len(d.data) < headerSize {
		return errAt(0, "file too short for header (%d bytes)", len(d.data))
	}
	if string(d.data[:len(Magic)]) != Magic {
		return errAt(0, "bad magic %q", d.data[:len(Magic)])
	}
	hashSize := int(binary.LittleEndian.Uint32(d.data[hashPoolSize:]))
	refSz := int(binary.LittleEndian.Uint32(d.data[refSize:]))
	if hashSize%8 != 0 {
		return errAt(hashPoolSize, "hash pool size %d is not a multiple of 8", hashSize)
	}
	d.refStart = headerSize + hashSize
	d.refEnd = d.refStart + refSz
	d.nodeStart = d.refEnd
	if hashSize > len(d.data)-headerSize || refSz > len(d.data)-d.refStart {
		return errAt(hashPoolSize, "pool sizes %d+%d exceed file size %d", hashSize, refSz, len(d.data))
	}
	if d.nodeStart >= len(d.data) {
		return errAt(d.nodeStart, "missing root node")
	}
	d.hashes = make([]hash40.Hash40, hashSize/8)
	for i := range d.hashes {
		off := headerSize + 8*i
		h := hash40.Hash40(binary.LittleEndian.Uint64(d.data[off:]))
		if !h.Valid() {
			return errAt(off, "hash %#x exceeds 40 bits", uint64(h))
		}
		if !d.opts.lenient && i > 0 && h <= d.hashes[i-1] {
			return errAt(off, "hash pool not strictly ascending at index %d", i)
		}
		d.hashes[i] = h
	}
	return nil
}

func (d *decoder) need(off, n int) error {
	if off < 0 || n > len(d.data)-off {
		return errAt(off, "truncated: need %d bytes", n)
	}
	return nil
}

func (d *decoder) u32(off int) (uint32, error) {
	if err := d.need(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d.data[off:]), nil
}

func (d *decoder) hash(off int) (hash40.Hash40, error) {
	i, err := d.u32(off)
	if err != nil {
		return 0, err
	}
	if int64(i) >= int64(len(d.hashes)) {
		return 0, errAt(off, "hash index %d out of range (%d hashes)", i, len(d.hashes))
	}
	return d.hashes[i], nil
}

func (d *decoder) str(off int) (string, error) {
	rel, err := d.u32(off)
	if err != nil {
		return "", err
	}
	start := d.refStart + int(rel)
	if int64(rel) >= int64(d.refEnd-d.refStart) {
		return "", errAt(off, "string offset %#x outside ref section", rel)
	}
	end := bytes.IndexByte(d.data[start:d.refEnd], 0)
	if end == -1 {
		return "", errAt(start, "unterminated string")
	}
	return string(d.data[start : start+end]), nil
}

// child resolves a container-relative offset to an absolute one, which must
// lie past the container's own header and within the node section.
func (d *decoder) child(at, pos, floor int, rel uint32) (int, error) {
	abs := int64(pos) + int64(rel)
	if abs < int64(floor) || abs >= int64(len(d.data)) {
		return 0, errAt(at, "child offset %#x out of range", rel)
	}
	return int(abs), nil
}

func (d *decoder) node(pos, depth int) (*ir.Node, error) {
	if d.visited[pos] {
		return nil, errAt(pos, "node visited twice")
	}
	d.visited[pos] = true
	if err := d.need(pos, 1); err != nil {
		return nil, err
	}
	t := ir.Type(d.data[pos])
	p := pos + 1
	switch t {
	case ir.BoolType, ir.I8Type, ir.U8Type:
		if err := d.need(p, 1); err != nil {
			return nil, err
		}
		v := d.data[p]
		switch t {
		case ir.BoolType:
			return ir.FromBool(v != 0), nil
		case ir.I8Type:
			return ir.FromI8(int8(v)), nil
		default:
			return ir.FromU8(v), nil
		}
	case ir.I16Type, ir.U16Type:
		if err := d.need(p, 2); err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint16(d.data[p:])
		if t == ir.I16Type {
			return ir.FromI16(int16(v)), nil
		}
		return ir.FromU16(v), nil
	case ir.I32Type, ir.U32Type, ir.FloatType:
		v, err := d.u32(p)
		if err != nil {
			return nil, err
		}
		switch t {
		case ir.I32Type:
			return ir.FromI32(int32(v)), nil
		case ir.U32Type:
			return ir.FromU32(v), nil
		default:
			return ir.FromFloat(math.Float32frombits(v)), nil
		}
	case ir.HashType:
		h, err := d.hash(p)
		if err != nil {
			return nil, err
		}
		return ir.FromHash(h), nil
	case ir.StringType:
		s, err := d.str(p)
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case ir.ListType:
		return d.list(pos, depth)
	case ir.StructType:
		return d.strukt(pos, depth)
	default:
		return nil, errAt(pos, "unknown type tag %d", uint8(t))
	}
}

func (d *decoder) enter(pos, depth int) error {
	if depth >= d.opts.maxDepth {
		return errAt(pos, "nesting deeper than %d", d.opts.maxDepth)
	}
	return nil
}

func (d *decoder) list(pos, depth int) (*ir.Node, error) {
	if err := d.enter(pos, depth); err != nil {
		return nil, err
	}
	count, err := d.u32(pos + 1)
	if err != nil {
		return nil, err
	}
	table := pos + listHeader
	if int64(count) > int64(len(d.data)-table)/4 {
		return nil, errAt(pos, "list of %d elements exceeds file", count)
	}
	floor := table + 4*int(count)
	res := ir.NewList()
	for i := range int(count) {
		at := table + 4*i
		rel := binary.LittleEndian.Uint32(d.data[at:])
		abs, err := d.child(at, pos, floor, rel)
		if err != nil {
			return nil, err
		}
		v, err := d.node(abs, depth+1)
		if err != nil {
			return nil, err
		}
		if err := res.Append(v); err != nil {
			return nil, errAt(abs, "%v", err)
		}
	}
	return res, nil
}

type row struct {
	hashIndex uint32
	offset    uint32
	at        int
}

func (d *decoder) strukt(pos, depth int) (*ir.Node, error) {
	if err := d.enter(pos, depth); err != nil {
		return nil, err
	}
	count, err := d.u32(pos + 1)
	if err != nil {
		return nil, err
	}
	tableRel, err := d.u32(pos + 5)
	if err != nil {
		return nil, err
	}
	refLen := int64(d.refEnd - d.refStart)
	if int64(tableRel) > refLen || int64(count) > (refLen-int64(tableRel))/tableRow {
		return nil, errAt(pos+5, "struct table [%#x, %d rows] outside ref section", tableRel, count)
	}
	table := d.refStart + int(tableRel)
	rows := make([]row, count)
	for i := range rows {
		at := table + tableRow*i
		rows[i] = row{
			hashIndex: binary.LittleEndian.Uint32(d.data[at:]),
			offset:    binary.LittleEndian.Uint32(d.data[at+4:]),
			at:        at,
		}
		if int64(rows[i].hashIndex) >= int64(len(d.hashes)) {
			return nil, errAt(at, "hash index %d out of range (%d hashes)", rows[i].hashIndex, len(d.hashes))
		}
		if !d.opts.lenient && i > 0 && rows[i].hashIndex <= rows[i-1].hashIndex {
			return nil, errAt(at, "struct table keys not strictly ascending")
		}
	}
	if d.opts.lenient {
		slices.SortStableFunc(rows, func(a, b row) int {
			ha, hb := d.hashes[a.hashIndex], d.hashes[b.hashIndex]
			switch {
			case ha < hb:
				return -1
			case ha > hb:
				return 1
			}
			return 0
		})
	}
	res := ir.NewStruct()
	for _, r := range rows {
		key := d.hashes[r.hashIndex]
		if _, dup := res.Lookup(key); dup {
			return nil, errAt(r.at, "duplicate struct key %s", key)
		}
		abs, err := d.child(r.at, pos, pos+structHeader, r.offset)
		if err != nil {
			return nil, err
		}
		v, err := d.node(abs, depth+1)
		if err != nil {
			return nil, err
		}
		if err := res.Set(key, v); err != nil {
			return nil, errAt(abs, "%v", err)
		}
	}
	return res, nil
}
