package platforms

import (
	"testing"

	"github.com/basilisk-fuzz/basilisk/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireSolc skips the calling test when no usable solc binary is available on the system path, so the suite
// passes in minimal environments.
func requireSolc(t *testing.T) {
	if _, err := GetSystemSolcVersion(); err != nil {
		t.Skip("solc is not available on the system path, skipping solc compilation test")
	}
}

// TestSolcVersion ensures the solc version probe returns a parseable semantic version.
func TestSolcVersion(t *testing.T) {
	requireSolc(t)

	version, err := GetSystemSolcVersion()
	require.NoError(t, err)
	assert.NotNil(t, version)
}

// TestSimpleSolcCompilation ensures a single Solidity source file compiles and yields ABI definitions and bytecode.
func TestSimpleSolcCompilation(t *testing.T) {
	requireSolc(t)

	// Copy our testdata over to our testing directory
	contractPath := testutils.CopyToTestDirectory(t, "testdata/contracts/simple_target.sol")

	// Execute our tests in the given test path
	testutils.ExecuteInDirectory(t, contractPath, func() {
		// Create a solc provider and compile the target.
		solcConfig := NewSolcCompilationConfig(contractPath)
		compilations, _, err := solcConfig.Compile()
		require.NoError(t, err)
		require.EqualValues(t, 1, len(compilations))

		// Locate the compiled contract and verify its artifacts.
		contract, found := compilations[0].FindContract("SimpleTarget")
		require.True(t, found)
		assert.Greater(t, len(contract.InitBytecode), 0)
		assert.Greater(t, len(contract.RuntimeBytecode), 0)

		// The ABI must carry the declared functions with their input parameter type names.
		var pokeFound bool
		for _, definition := range contract.Abi {
			if definition.IsFunction() && definition.Name == "poke" {
				pokeFound = true
				require.EqualValues(t, 1, len(definition.Inputs))
				assert.EqualValues(t, "uint8", definition.Inputs[0].DeclaredType())
			}
		}
		assert.True(t, pokeFound)
	})
}
