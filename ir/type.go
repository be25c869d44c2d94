package ir

import "fmt"

// Type selects the variant held by a Node. Its values are the type tags used
// in the binary format.
type Type uint8

const (
	BoolType Type = iota + 1
	I8Type
	U8Type
	I16Type
	U16Type
	I32Type
	U32Type
	FloatType
	HashType
	StringType
	ListType
	StructType
)

var typeNames = [...]string{
	BoolType:   "bool",
	I8Type:     "i8",
	U8Type:     "u8",
	I16Type:    "i16",
	U16Type:    "u16",
	I32Type:    "i32",
	U32Type:    "u32",
	FloatType:  "float",
	HashType:   "hash",
	StringType: "string",
	ListType:   "list",
	StructType: "struct",
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("<unknown type %d>", uint8(t))
}

func (t Type) Valid() bool {
	return t >= BoolType && t <= StructType
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrType, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType maps a type name back to its Type.
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if typeNames[t] == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unrecognized type %q", ErrType, name)
}

func Types() []Type {
	return []Type{
		BoolType,
		I8Type,
		U8Type,
		I16Type,
		U16Type,
		I32Type,
		U32Type,
		FloatType,
		HashType,
		StringType,
		ListType,
		StructType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ListType, StructType:
		return false
	default:
		return true
	}
}

func (t Type) IsInt() bool {
	switch t {
	case I8Type, U8Type, I16Type, U16Type, I32Type, U32Type:
		return true
	default:
		return false
	}
}
