// Package hash40 implements the 40-bit name hash used as struct keys in param
// files.
//
// # Overview
//
// A Hash40 packs the CRC-32 (IEEE) of a name into its low 32 bits and the
// name's length into bits 32 through 39:
//
//	h := hash40.Of("fighter_param")
//	h.CRC() // crc32 of "fighter_param"
//	h.Len() // 13
//
// Names are not stored in param files, only their hashes. Turning a hash back
// into a readable name requires a dictionary of known names, represented by
// [Labels]. Reverse lookup is lossy: a hash missing from the dictionary has no
// name, and [LabelOf] reports it as unknown rather than guessing. Two names may
// hash identically; the first one added to a [Labels] wins.
//
// # Raw form
//
// A hash without a name is written in its raw form, "0x" followed by exactly
// ten hex digits (see [Hash40.String] and [ParseRaw]). Text formats use this
// shape to tell raw hashes apart from names.
//
// # Related Packages
//
//   - github.com/ultimate-research/prc-rs/ir - node model keyed by Hash40
//   - github.com/ultimate-research/prc-rs/prcxml - XML bridge using labels
package hash40
