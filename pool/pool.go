// Package pool holds the interning tables built while encoding a param file:
// the hash pool and the ref section of strings and struct entry tables.
//
// Pools are scoped to one encode call and are not safe for concurrent use.
package pool

import (
	"encoding/binary"
	"slices"

	"github.com/ultimate-research/prc-rs/hash40"
)

// HashPool deduplicates hashes. Positions returned by Add are first-seen
// positions; after Finalize the pool is sorted ascending and Index reports
// sorted positions.
type HashPool struct {
	hashes []hash40.Hash40
	index  map[hash40.Hash40]int
	sorted bool
}

// NewHashPool returns a pool seeded with the zero hash, which param files
// always carry first.
func NewHashPool() *HashPool {
	p := &HashPool{index: map[hash40.Hash40]int{}}
	p.Add(0)
	return p
}

func (p *HashPool) Add(h hash40.Hash40) int {
	if i, ok := p.index[h]; ok {
		return i
	}
	i := len(p.hashes)
	p.hashes = append(p.hashes, h)
	p.index[h] = i
	p.sorted = false
	return i
}

func (p *HashPool) Finalize() {
	if p.sorted {
		return
	}
	slices.Sort(p.hashes)
	for i, h := range p.hashes {
		p.index[h] = i
	}
	p.sorted = true
}

func (p *HashPool) Index(h hash40.Hash40) (int, bool) {
	if !p.sorted {
		i, ok := p.index[h]
		return i, ok
	}
	return slices.BinarySearch(p.hashes, h)
}

func (p *HashPool) Hashes() []hash40.Hash40 { return slices.Clone(p.hashes) }

func (p *HashPool) Len() int { return len(p.hashes) }

// Size is the byte size of the pool on disk.
func (p *HashPool) Size() int { return 8 * len(p.hashes) }

func (p *HashPool) AppendTo(dst []byte) []byte {
	for _, h := range p.hashes {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(h))
	}
	return dst
}

// Entry is one row of a struct entry table: the hash pool index of a key and
// the offset of its value relative to the struct's type tag.
type Entry struct {
	HashIndex uint32
	Offset    uint32
}

type slot struct {
	str     string
	table   []Entry
	isTable bool
	// slot whose bytes this one shares, or -1
	dup    int
	offset uint32
}

// RefPool is the ref section of a param file. Strings are interned as they
// are added; struct tables are reserved in traversal order, filled in later
// and deduplicated by Finalize.
type RefPool struct {
	slots []slot
	strs  map[string]int
	size  int
}

func NewRefPool() *RefPool {
	return &RefPool{strs: map[string]int{}}
}

// AddString returns the slot of s, adding it if it is new.
func (p *RefPool) AddString(s string) int {
	if i, ok := p.strs[s]; ok {
		return i
	}
	i := len(p.slots)
	p.slots = append(p.slots, slot{str: s, dup: -1})
	p.strs[s] = i
	return i
}

// Reserve returns a new slot for a struct table.
func (p *RefPool) Reserve() int {
	p.slots = append(p.slots, slot{isTable: true, dup: -1})
	return len(p.slots) - 1
}

func (p *RefPool) SetTable(i int, entries []Entry) {
	p.slots[i].table = entries
}

// Finalize merges identical tables and assigns byte offsets in slot order.
func (p *RefPool) Finalize() {
	seen := map[string]int{}
	off := 0
	for i := range p.slots {
		s := &p.slots[i]
		s.dup = -1
		if s.isTable {
			key := string(appendTable(nil, s.table))
			if j, ok := seen[key]; ok {
				s.dup = j
				s.offset = p.slots[j].offset
				continue
			}
			seen[key] = i
			s.offset = uint32(off)
			off += 8 * len(s.table)
			continue
		}
		s.offset = uint32(off)
		off += len(s.str) + 1
	}
	p.size = off
}

func (p *RefPool) Offset(i int) uint32 { return p.slots[i].offset }

// Size is the byte size of the section; valid after Finalize.
func (p *RefPool) Size() int { return p.size }

// Strings returns the interned strings in first-seen order.
func (p *RefPool) Strings() []string {
	res := make([]string, 0, len(p.strs))
	for _, s := range p.slots {
		if !s.isTable {
			res = append(res, s.str)
		}
	}
	return res
}

// Tables is the number of distinct tables; valid after Finalize.
func (p *RefPool) Tables() int {
	n := 0
	for _, s := range p.slots {
		if s.isTable && s.dup == -1 {
			n++
		}
	}
	return n
}

func (p *RefPool) AppendTo(dst []byte) []byte {
	for _, s := range p.slots {
		if s.dup != -1 {
			continue
		}
		if s.isTable {
			dst = appendTable(dst, s.table)
			continue
		}
		dst = append(dst, s.str...)
		dst = append(dst, 0)
	}
	return dst
}

func appendTable(dst []byte, t []Entry) []byte {
	for _, e := range t {
		dst = binary.LittleEndian.AppendUint32(dst, e.HashIndex)
		dst = binary.LittleEndian.AppendUint32(dst, e.Offset)
	}
	return dst
}
