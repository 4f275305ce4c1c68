package fuzzing

import (
	"testing"

	"github.com/basilisk-fuzz/basilisk/compilation/types"
	"github.com/basilisk-fuzz/basilisk/fuzzing/valuegeneration"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFunctionSelectorKnownValues ensures selector derivation matches well-known selectors of real-world signatures.
func TestFunctionSelectorKnownValues(t *testing.T) {
	expectedSelectors := map[string][4]byte{
		"setUp()":                {0x0a, 0x92, 0x54, 0xe4},
		"inv()":                  {0x03, 0x2d, 0x09, 0x61},
		"invariant_neverFalse()": {0xd6, 0xe7, 0x38, 0xf5},
		"poke(uint8)":            {0x04, 0x50, 0xb1, 0xe7},
	}
	for signature, expected := range expectedSelectors {
		assert.EqualValues(t, expected, FunctionSelector(signature), "selector mismatch for %s", signature)
	}
}

// TestFunctionSelectorDeterminism ensures selector derivation is a pure function of the signature string.
func TestFunctionSelectorDeterminism(t *testing.T) {
	assert.EqualValues(t, FunctionSelector("transfer(address,uint256)"), FunctionSelector("transfer(address,uint256)"))
	assert.NotEqualValues(t, FunctionSelector("transfer(address,uint256)"), FunctionSelector("transfer(address,uint128)"))
}

// TestBuildFunctionSpecs ensures spec construction covers callable functions only, preserves declared order, and
// derives canonical signatures from the declared parameter type names.
func TestBuildFunctionSpecs(t *testing.T) {
	contract := &types.CompiledContract{
		Abi: []types.FunctionDefinition{
			{Type: "constructor"},
			{Type: "function", Name: "poke", Inputs: []types.ParameterDefinition{
				{Name: "amount", Type: "uint8", InternalType: "uint8"},
			}},
			{Type: "event", Name: "Poked"},
			{Type: "function", Name: "setOwner", Inputs: []types.ParameterDefinition{
				{Name: "owner", Type: "address", InternalType: "address"},
				{Name: "stake", Type: "uint256", InternalType: "uint256"},
			}},
			{Type: "function", Name: "reset"},
		},
	}

	specs, err := BuildFunctionSpecs(contract)
	require.NoError(t, err)
	require.EqualValues(t, 3, len(specs))

	// Declared order is preserved and canonical signatures match the declared type names.
	assert.EqualValues(t, "poke(uint8)", specs[0].Signature)
	assert.EqualValues(t, "setOwner(address,uint256)", specs[1].Signature)
	assert.EqualValues(t, "reset()", specs[2].Signature)

	// Selectors are derived from the signatures and parameter kinds reflect the declared types.
	assert.EqualValues(t, FunctionSelector("poke(uint8)"), specs[0].Selector)
	require.EqualValues(t, 2, len(specs[1].Params))
	assert.EqualValues(t, valuegeneration.ValueKindAddress, specs[1].Params[0].Tag())
	assert.EqualValues(t, valuegeneration.ValueKindUint, specs[1].Params[1].Tag())
	assert.EqualValues(t, 256, specs[1].Params[1].BitWidth())
	assert.Empty(t, specs[2].Params)
}

// TestBuildFunctionSpecsUnsupportedType ensures a single unsupported parameter type aborts spec construction with
// the typed value generation error.
func TestBuildFunctionSpecsUnsupportedType(t *testing.T) {
	contract := &types.CompiledContract{
		Abi: []types.FunctionDefinition{
			{Type: "function", Name: "good", Inputs: []types.ParameterDefinition{
				{Name: "x", Type: "uint256", InternalType: "uint256"},
			}},
			{Type: "function", Name: "bad", Inputs: []types.ParameterDefinition{
				{Name: "y", Type: "uint24", InternalType: "uint24"},
			}},
		},
	}

	specs, err := BuildFunctionSpecs(contract)
	assert.Nil(t, specs)
	var unsupportedErr *valuegeneration.UnsupportedTypeError
	require.True(t, errors.As(err, &unsupportedErr))
	assert.EqualValues(t, "uint24", unsupportedErr.TypeName)
}

// TestBuildFunctionSpecsIdempotent ensures two runs over the same contract yield identical specs in identical order.
func TestBuildFunctionSpecsIdempotent(t *testing.T) {
	contract := &types.CompiledContract{
		Abi: []types.FunctionDefinition{
			{Type: "function", Name: "a", Inputs: []types.ParameterDefinition{
				{Name: "x", Type: "uint64", InternalType: "uint64"},
			}},
			{Type: "function", Name: "b"},
		},
	}

	first, err := BuildFunctionSpecs(contract)
	require.NoError(t, err)
	second, err := BuildFunctionSpecs(contract)
	require.NoError(t, err)
	require.EqualValues(t, len(first), len(second))
	for i := range first {
		assert.EqualValues(t, first[i].Signature, second[i].Signature)
		assert.EqualValues(t, first[i].Selector, second[i].Selector)
	}
}
