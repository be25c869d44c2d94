// Package gomap reads param trees into Go values.
//
// Struct params map onto Go structs. Each exported field names its key with a
// `prc` tag holding a label or a raw hash:
//
//	type Fighter struct {
//		Name      string        `prc:"name"`
//		WalkSpeed float32       `prc:"walk_speed"`
//		Kind      hash40.Hash40 `prc:"0x0e5c1f0e49"`
//		Moves     []Move        `prc:"moves,optional"`
//	}
//
// Untagged fields use the snake_case form of the field name, `prc:"-"` skips a
// field, and ",optional" leaves the field untouched when its key is absent.
// Keys not named by any field are ignored.
//
// Sized integer, bool, float32 and string fields require the param of exactly
// that type. int and int64 accept any integer param, uint and uint64 any
// unsigned one, and float64 accepts a float. A hash40.Hash40 field takes a
// hash param; a string field also accepts a hash, as its label or raw form.
// Lists fill slices and arrays, structs also fill maps keyed by string or
// hash40.Hash40, and an *ir.Node field receives a copy of the subtree.
//
// Errors are *Error values carrying the path of the offending param.
package gomap
