// Package prcxml converts param trees to and from an XML document.
//
// Every node becomes one element named after its type:
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<struct>
//	  <u32 hash="hip">42</u32>
//	  <hash hash="kind">fighter_kind_mario</hash>
//	  <list hash="0x00000abcde">
//	    <float>1.5</float>
//	    <string>head</string>
//	  </list>
//	  <struct hash="empty"/>
//	</struct>
//
// Struct children carry the key in a hash attribute. Keys and hash values are
// written as their label when a [hash40.Labels] dictionary knows one and as
// the raw form 0x followed by ten hex digits otherwise, so that no name is
// ever guessed. When parsing, a raw form is taken as is, a known label is
// looked up and any other text is hashed.
//
// Strings that cannot be represented as XML character data are written
// hex encoded with enc="hex". Floats are written with the shortest decimal
// that reads back to the same value, and NaNs with a payload other than the
// default one as NaN(0x7fc00001), so that text round trips are exact.
//
// The element names sbyte, byte, short, ushort, int, uint and hash40 used by
// older tools are accepted as aliases when parsing, and an index attribute on
// list children is ignored.
package prcxml
