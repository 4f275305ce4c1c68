package fuzzing

import (
	"math/rand"
	"testing"

	"github.com/basilisk-fuzz/basilisk/compilation/types"
	"github.com/basilisk-fuzz/basilisk/fuzzing/valuegeneration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCalldataGenerator builds a CalldataGenerator for the provided ABI with a fixed seed.
func testCalldataGenerator(t *testing.T, abi []types.FunctionDefinition) *CalldataGenerator {
	specs, err := BuildFunctionSpecs(&types.CompiledContract{Abi: abi})
	require.NoError(t, err)
	generator, err := NewCalldataGenerator(specs, valuegeneration.NewRandomValueGenerator(rand.New(rand.NewSource(0x1337))))
	require.NoError(t, err)
	return generator
}

// TestCalldataGeneratorEmptyInterface ensures construction fails when the target interface has no functions.
func TestCalldataGeneratorEmptyInterface(t *testing.T) {
	specs, err := BuildFunctionSpecs(&types.CompiledContract{
		Abi: []types.FunctionDefinition{
			{Type: "constructor"},
			{Type: "event", Name: "Ping"},
		},
	})
	require.NoError(t, err)

	generator, err := NewCalldataGenerator(specs, valuegeneration.NewRandomValueGenerator(rand.New(rand.NewSource(0x1337))))
	assert.Nil(t, generator)
	assert.ErrorIs(t, err, ErrEmptyInterface)
}

// TestCalldataLengthInvariant ensures every generated payload is exactly the selector plus one 32-byte word per
// parameter, across parameterless, single-parameter, and multi-parameter functions.
func TestCalldataLengthInvariant(t *testing.T) {
	generator := testCalldataGenerator(t, []types.FunctionDefinition{
		{Type: "function", Name: "reset"},
		{Type: "function", Name: "poke", Inputs: []types.ParameterDefinition{
			{Name: "amount", Type: "uint8", InternalType: "uint8"},
		}},
		{Type: "function", Name: "fund", Inputs: []types.ParameterDefinition{
			{Name: "recipient", Type: "address", InternalType: "address"},
			{Name: "amount", Type: "uint256", InternalType: "uint256"},
			{Name: "nonce", Type: "uint64", InternalType: "uint64"},
		}},
	})

	for i := 0; i < 256; i++ {
		spec, calldata, err := generator.Generate()
		require.NoError(t, err)
		assert.EqualValues(t, 4+32*len(spec.Params), len(calldata))
		assert.EqualValues(t, spec.Selector[:], calldata[:4])
	}
}

// TestCalldataGeneratorDeterminism ensures two generators with identical seeds produce identical call streams.
func TestCalldataGeneratorDeterminism(t *testing.T) {
	abi := []types.FunctionDefinition{
		{Type: "function", Name: "poke", Inputs: []types.ParameterDefinition{
			{Name: "amount", Type: "uint128", InternalType: "uint128"},
		}},
		{Type: "function", Name: "fund", Inputs: []types.ParameterDefinition{
			{Name: "recipient", Type: "address", InternalType: "address"},
		}},
	}
	first := testCalldataGenerator(t, abi)
	second := testCalldataGenerator(t, abi)

	for i := 0; i < 64; i++ {
		firstSpec, firstCalldata, err := first.Generate()
		require.NoError(t, err)
		secondSpec, secondCalldata, err := second.Generate()
		require.NoError(t, err)
		assert.EqualValues(t, firstSpec.Signature, secondSpec.Signature)
		assert.EqualValues(t, firstCalldata, secondCalldata)
	}
}
