package valuegeneration

import (
	"math/big"
	"math/rand"
	"sync"

	"github.com/basilisk-fuzz/basilisk/utils"
	"github.com/ethereum/go-ethereum/common"
)

// RandomValueGenerator represents a ValueGenerator used to generate function inputs and call arguments using a
// random provider. All draws consume from the single provided random stream, so campaigns seeded identically
// reproduce identical values.
type RandomValueGenerator struct {
	// randomProvider offers a source of random data.
	randomProvider *rand.Rand

	// randomProviderLock is a lock to offer thread safety to the random number generator.
	randomProviderLock sync.Mutex
}

// NewRandomValueGenerator creates a new RandomValueGenerator using the provided random provider.
func NewRandomValueGenerator(randomProvider *rand.Rand) *RandomValueGenerator {
	generator := &RandomValueGenerator{
		randomProvider: randomProvider,
	}
	return generator
}

// RandomProvider returns the internal random provider used for value generation.
func (g *RandomValueGenerator) RandomProvider() *rand.Rand {
	return g.randomProvider
}

// GenerateAddress generates a random address to use when populating inputs.
func (g *RandomValueGenerator) GenerateAddress() common.Address {
	// Generate random bytes of the address length, then convert it to an address.
	addressBytes := make([]byte, common.AddressLength)
	g.randomProviderLock.Lock()
	g.randomProvider.Read(addressBytes)
	g.randomProviderLock.Unlock()
	return common.BytesToAddress(addressBytes)
}

// GenerateBool generates a random bool to use when populating inputs.
func (g *RandomValueGenerator) GenerateBool() bool {
	g.randomProviderLock.Lock()
	defer g.randomProviderLock.Unlock()
	return g.randomProvider.Uint32()%2 == 0
}

// GenerateFixedBytes generates a random fixed-sized byte array to use when populating inputs.
func (g *RandomValueGenerator) GenerateFixedBytes(length int) []byte {
	g.randomProviderLock.Lock()
	b := make([]byte, length)
	g.randomProvider.Read(b)
	g.randomProviderLock.Unlock()
	return b
}

// GenerateInteger generates a random integer of the given signedness and bit length to use when populating inputs.
func (g *RandomValueGenerator) GenerateInteger(signed bool, bitLength int) *big.Int {
	// Fill a byte array of the appropriate size with random bytes
	b := make([]byte, bitLength/8)
	g.randomProviderLock.Lock()
	g.randomProvider.Read(b)
	g.randomProviderLock.Unlock()

	// Create an unsigned integer.
	res := big.NewInt(0).SetBytes(b)

	// Constrain our integer bounds
	return utils.ConstrainIntegerToBitLength(res, signed, bitLength)
}
