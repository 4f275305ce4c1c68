package valuegeneration

import (
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"
)

// ValueGenerator represents an interface for a provider used to generate function inputs and call arguments for use
// in fuzzing campaigns.
type ValueGenerator interface {
	// RandomProvider returns the internal random provider used for value generation.
	RandomProvider() *rand.Rand

	// GenerateAddress generates an address to use when populating inputs.
	GenerateAddress() common.Address

	// GenerateBool generates a bool to use when populating inputs.
	GenerateBool() bool

	// GenerateFixedBytes generates a fixed-sized byte array to use when populating inputs.
	GenerateFixedBytes(length int) []byte

	// GenerateInteger generates an integer of the given signedness and bit length to use when populating inputs.
	GenerateInteger(signed bool, bitLength int) *big.Int
}
