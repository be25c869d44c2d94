// Package ir provides the in-memory node model for param documents.
//
// # Overview
//
// Every param document, whether decoded from a binary file, parsed from XML
// or built programmatically, is a tree of *Node values. A Node is a closed
// tagged union: the Type field selects one of twelve variants and the payload
// for that variant is only reachable through typed accessors.
//
// # Node Types
//
//   - BoolType: boolean
//   - I8Type, U8Type, I16Type, U16Type, I32Type, U32Type: fixed width integers
//   - FloatType: 32-bit float
//   - HashType: a hash40.Hash40 value
//   - StringType: text
//   - ListType: ordered, possibly heterogeneous elements
//   - StructType: values keyed by hash40.Hash40
//
// Type values are the type tags of the binary format.
//
// # Creating Nodes
//
//	root := ir.NewStruct()
//	root.Set(hash40.Of("walk_speed"), ir.FromFloat(1.2))
//	root.Set(hash40.Of("jump_count"), ir.FromU8(2))
//	root.Set(hash40.Of("hit_target"), ir.NewList(ir.FromI32(1), ir.FromI32(0)))
//
// # Ownership
//
// A node belongs to at most one container. Set, Append, Insert and SetIndex
// refuse a node that already has a parent (ErrOwned) or that is an ancestor of
// the container (ErrCycle), so trees never share sub-trees and never contain
// cycles. Remove and RemoveIndex detach the node and hand it back to the
// caller. A Node is not safe for concurrent mutation.
//
// # Structs
//
// Struct keys are unique: setting an existing key replaces its value in
// place. Keys keep insertion order in memory; encoders sort them by hash.
// Equal compares structs as key sets.
package ir
