package valuegeneration

import (
	"fmt"
)

// ValueKindTag is an enum which discriminates between the Ethereum ABI parameter type categories a ValueKind can
// describe.
type ValueKindTag int

const (
	// ValueKindAddress describes a 20-byte account address.
	ValueKindAddress ValueKindTag = iota
	// ValueKindBytes describes a dynamic-length byte array.
	ValueKindBytes
	// ValueKindInt describes a signed integer of a given bit width.
	ValueKindInt
	// ValueKindUint describes an unsigned integer of a given bit width.
	ValueKindUint
	// ValueKindBool describes a boolean.
	ValueKindBool
	// ValueKindString describes a dynamic-length string.
	ValueKindString
	// ValueKindFixedBytes describes a byte vector of a fixed length.
	ValueKindFixedBytes
	// ValueKindArray describes a dynamic-length array of a given element kind.
	ValueKindArray
	// ValueKindFixedArray describes a fixed-length array of a given element kind.
	ValueKindFixedArray
	// ValueKindTuple describes an ordered grouping of component kinds.
	ValueKindTuple
)

// ValueKind describes a single Ethereum ABI parameter type. Leaf kinds carry a bit width or byte length where
// applicable, while composite kinds reference their element or component kinds. A ValueKind is immutable once
// constructed by ParseValueKind.
type ValueKind struct {
	// tag describes which category of ABI type this ValueKind represents.
	tag ValueKindTag

	// bitWidth describes the width of an integer kind, in bits. Only set for ValueKindInt and ValueKindUint.
	bitWidth int

	// byteLength describes the length of a fixed-size byte vector. Only set for ValueKindFixedBytes.
	byteLength int

	// length describes the element count of a fixed-size array. Only set for ValueKindFixedArray.
	length int

	// elementKind describes the element type of an array kind. Only set for ValueKindArray and ValueKindFixedArray.
	elementKind *ValueKind

	// components describes the ordered component kinds of a tuple. Only set for ValueKindTuple.
	components []*ValueKind
}

// Tag returns the category of ABI type this ValueKind represents.
func (k *ValueKind) Tag() ValueKindTag {
	return k.tag
}

// BitWidth returns the bit width of an integer kind. It is only meaningful for ValueKindInt and ValueKindUint.
func (k *ValueKind) BitWidth() int {
	return k.bitWidth
}

// UnsupportedTypeError indicates a declared ABI parameter type name is not one the value generation subsystem can
// encode. It is a setup-time failure: an interface which declares an unsupported type aborts the campaign before any
// call is ever generated, rather than risk a mis-encoded payload.
type UnsupportedTypeError struct {
	// TypeName describes the declared type name which could not be resolved to a supported ValueKind.
	TypeName string
}

// Error implements the error interface, returning the error message for an UnsupportedTypeError.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported ABI parameter type '%s'", e.TypeName)
}

// ParseValueKind parses a declared, human-readable ABI type name (e.g. "uint256", "address") into a ValueKind.
// The supported baseline is address, bytes, and the unsigned integer widths 8/16/32/64/128/256. Any other spelling,
// including every composite type, returns an *UnsupportedTypeError rather than silently approximating the encoding.
func ParseValueKind(typeName string) (*ValueKind, error) {
	switch typeName {
	case "address":
		return &ValueKind{tag: ValueKindAddress}, nil
	case "bytes":
		return &ValueKind{tag: ValueKindBytes}, nil
	case "uint8":
		return &ValueKind{tag: ValueKindUint, bitWidth: 8}, nil
	case "uint16":
		return &ValueKind{tag: ValueKindUint, bitWidth: 16}, nil
	case "uint32":
		return &ValueKind{tag: ValueKindUint, bitWidth: 32}, nil
	case "uint64":
		return &ValueKind{tag: ValueKindUint, bitWidth: 64}, nil
	case "uint128":
		return &ValueKind{tag: ValueKindUint, bitWidth: 128}, nil
	case "uint256":
		return &ValueKind{tag: ValueKindUint, bitWidth: 256}, nil
	default:
		return nil, &UnsupportedTypeError{TypeName: typeName}
	}
}
