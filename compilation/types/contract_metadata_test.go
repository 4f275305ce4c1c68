package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMetadataTrailer is a handcrafted CBOR metadata trailer of the form solc appends to runtime bytecode:
// a map holding a "bzzr1" bytecode hash and a three byte "solc" compiler version (0.8.15).
var testMetadataTrailer = common.Hex2Bytes(
	"a2" + // map(2)
		"65627a7a7231" + // text(5) "bzzr1"
		"5820" + "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff" + // bytes(32)
		"64736f6c63" + // text(4) "solc"
		"4300080f", // bytes(3) 0.8.15
)

// TestExtractContractMetadata ensures a CBOR metadata trailer appended to bytecode is located and decoded.
func TestExtractContractMetadata(t *testing.T) {
	// Build synthetic runtime bytecode with the metadata trailer appended.
	bytecode := append(common.Hex2Bytes("6080604052600080fd"), testMetadataTrailer...)

	metadata := ExtractContractMetadata(bytecode)
	require.NotNil(t, metadata)

	// The embedded bytecode hash must be extracted verbatim.
	bytecodeHash := metadata.ExtractBytecodeHash()
	assert.EqualValues(t, common.Hex2Bytes("00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"), bytecodeHash)

	// The embedded compiler version must parse as a semantic version.
	version := metadata.ExtractCompilerVersion()
	require.NotNil(t, version)
	assert.EqualValues(t, "0.8.15", version.String())
}

// TestExtractContractMetadataMissing ensures bytecode without a metadata trailer yields nil rather than garbage.
func TestExtractContractMetadataMissing(t *testing.T) {
	metadata := ExtractContractMetadata(common.Hex2Bytes("6080604052600080fd"))
	assert.Nil(t, metadata)
}

// TestExtractCompilerVersionMissing ensures metadata without a usable solc entry yields a nil version.
func TestExtractCompilerVersionMissing(t *testing.T) {
	// No solc key at all.
	metadata := ContractMetadata{"ipfs": []byte{0x01}}
	assert.Nil(t, metadata.ExtractCompilerVersion())

	// A solc entry of the wrong shape (pre-release builds embed a string).
	metadata = ContractMetadata{"solc": "0.8.15-nightly"}
	assert.Nil(t, metadata.ExtractCompilerVersion())
}

// TestParameterDeclaredType ensures declared type resolution prefers the source spelling and falls back to the
// canonical ABI type name.
func TestParameterDeclaredType(t *testing.T) {
	parameter := ParameterDefinition{Name: "x", Type: "uint256", InternalType: "uint256"}
	assert.EqualValues(t, "uint256", parameter.DeclaredType())

	parameter = ParameterDefinition{Name: "x", Type: "uint256"}
	assert.EqualValues(t, "uint256", parameter.DeclaredType())

	// A user-defined value type retains its source spelling.
	parameter = ParameterDefinition{Name: "x", Type: "uint256", InternalType: "MyToken.Amount"}
	assert.EqualValues(t, "MyToken.Amount", parameter.DeclaredType())
}
