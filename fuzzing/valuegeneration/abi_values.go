package valuegeneration

import (
	"github.com/ethereum/go-ethereum/common"
)

// abiWordLength describes the size of a single static ABI-encoded word, per the Ethereum ABI convention.
const abiWordLength = 32

// GenerateAbiWord generates a random value for the provided ValueKind using the provided ValueGenerator and encodes
// it in-place as a single 32-byte ABI word:
//   - Unsigned integers of n bits occupy the low n/8 bytes of the word, left-padded with zero bytes (big-endian).
//   - Addresses occupy the low 20 bytes of the word, with the high 12 bytes zero.
//
// Every other kind returns an *UnsupportedTypeError. In particular, no kind is ever approximated with a default
// encoding, as a mis-encoded argument would silently change the semantic meaning of the generated call.
func GenerateAbiWord(generator ValueGenerator, kind *ValueKind) ([]byte, error) {
	switch kind.tag {
	case ValueKindUint:
		// Draw bitWidth/8 random bytes and right-align them in a zero-padded word.
		value := generator.GenerateFixedBytes(kind.bitWidth / 8)
		return common.LeftPadBytes(value, abiWordLength), nil
	case ValueKindAddress:
		address := generator.GenerateAddress()
		return common.LeftPadBytes(address.Bytes(), abiWordLength), nil
	default:
		return nil, &UnsupportedTypeError{TypeName: kindTypeName(kind)}
	}
}

// kindTypeName derives a diagnostic type name for a ValueKind, used when reporting an unsupported encoding.
func kindTypeName(kind *ValueKind) string {
	switch kind.tag {
	case ValueKindAddress:
		return "address"
	case ValueKindBytes:
		return "bytes"
	case ValueKindInt:
		return "int"
	case ValueKindUint:
		return "uint"
	case ValueKindBool:
		return "bool"
	case ValueKindString:
		return "string"
	case ValueKindFixedBytes:
		return "fixed bytes"
	case ValueKindArray:
		return "array"
	case ValueKindFixedArray:
		return "fixed array"
	case ValueKindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}
