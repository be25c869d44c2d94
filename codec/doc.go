// Package codec reads and writes the binary param format.
//
// # Layout
//
// A param file is little endian and consists of a 16 byte header, the hash
// pool, the ref section and the node tree:
//
//	0x00 magic "paracobn"
//	0x08 u32 hash pool size in bytes
//	0x0c u32 ref section size in bytes
//	0x10 hash pool: u64 per hash
//	     ref section: NUL terminated strings and struct entry tables
//	     node tree, starting with the root
//
// Every node starts with a one byte type tag equal to its [ir.Type]. Scalars
// follow inline. A hash node holds a u32 index into the hash pool and a string
// node a u32 offset into the ref section. A list holds a u32 count followed by
// one u32 offset per element, relative to the list's tag byte. A struct holds a
// u32 count and the u32 ref section offset of its entry table, whose rows are a
// u32 hash pool index and a u32 value offset relative to the struct's tag byte.
//
// # Decoding
//
// [Decode] validates every offset and index before following it and fails
// with a [*DecodeError] on the first problem. Decoding is strict by default:
// the hash pool must be strictly ascending and struct tables must list their
// keys in ascending order, which is what [Encode] produces. Files written by
// other tools can be read with [Lenient].
//
// # Encoding
//
// [Encode] is total for any well formed tree. It interns hashes and strings,
// deduplicates identical struct tables and always writes struct entries by
// ascending hash, so that encoding a decoded file reproduces it byte for byte.
package codec
