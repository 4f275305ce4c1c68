package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test fixtures below are handcrafted EVM bytecodes, each prefixed with a standard init sequence which copies
// the trailing runtime code into memory and returns it.
var (
	// stopBytecode deploys a runtime consisting of a single STOP.
	stopBytecode = common.Hex2Bytes("600180600b6000396000f3" + "00")

	// returnWordBytecode deploys a runtime returning a 32-byte word holding the value 42.
	returnWordBytecode = common.Hex2Bytes("600a80600b6000396000f3" + "602a60005260206000f3")

	// revertBytecode deploys a runtime which always reverts with no data.
	revertBytecode = common.Hex2Bytes("600580600b6000396000f3" + "60006000fd")

	// invalidOpcodeBytecode deploys a runtime consisting of a single INVALID opcode, halting execution abnormally.
	invalidOpcodeBytecode = common.Hex2Bytes("600180600b6000396000f3" + "fe")

	// logBytecode deploys a runtime which emits a single LOG0 and stops.
	logBytecode = common.Hex2Bytes("600680600b6000396000f3" + "60006000a000")

	// counterBytecode deploys a runtime which increments a storage counter on every call and returns its new value.
	counterBytecode = common.Hex2Bytes("601280600b6000396000f3" + "6000546001018060005560005260206000f3")

	// revertingInitBytecode is creation bytecode which reverts during deployment.
	revertingInitBytecode = common.Hex2Bytes("60006000fd")
)

// TestDeployAndCall ensures a deployed contract can be called and its return data and gas usage are reported.
func TestDeployAndCall(t *testing.T) {
	testVM, err := NewTestVM()
	require.NoError(t, err)

	contractAddress, err := testVM.DeployContract(returnWordBytecode)
	require.NoError(t, err)
	assert.NotEqualValues(t, common.Address{}, contractAddress)

	result, err := testVM.CallContract(contractAddress, nil)
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	require.EqualValues(t, 32, len(result.ReturnData))
	assert.EqualValues(t, 42, result.ReturnData[31])
	assert.Greater(t, result.GasUsed, uint64(0))
}

// TestCallOutcomeClassification ensures success, revert, and fault outcomes are kept strictly apart.
func TestCallOutcomeClassification(t *testing.T) {
	testVM, err := NewTestVM()
	require.NoError(t, err)

	// A STOP-only runtime succeeds with no return data.
	stopAddress, err := testVM.DeployContract(stopBytecode)
	require.NoError(t, err)
	result, err := testVM.CallContract(stopAddress, nil)
	require.NoError(t, err)
	assert.EqualValues(t, OutcomeSuccess, result.Outcome)
	assert.Nil(t, result.VMError)

	// A reverting runtime classifies as a revert, carrying the EVM's revert error.
	revertAddress, err := testVM.DeployContract(revertBytecode)
	require.NoError(t, err)
	result, err = testVM.CallContract(revertAddress, nil)
	require.NoError(t, err)
	assert.EqualValues(t, OutcomeRevert, result.Outcome)
	assert.True(t, errors.Is(result.VMError, vm.ErrExecutionReverted))

	// An INVALID opcode classifies as a fault, never as a revert.
	faultAddress, err := testVM.DeployContract(invalidOpcodeBytecode)
	require.NoError(t, err)
	result, err = testVM.CallContract(faultAddress, nil)
	require.NoError(t, err)
	assert.EqualValues(t, OutcomeFault, result.Outcome)
	require.Error(t, result.VMError)
	assert.False(t, errors.Is(result.VMError, vm.ErrExecutionReverted))
}

// TestDeploymentFailureIsFatal ensures a deployment which reverts surfaces as an error rather than a result.
func TestDeploymentFailureIsFatal(t *testing.T) {
	testVM, err := NewTestVM()
	require.NoError(t, err)

	contractAddress, err := testVM.DeployContract(revertingInitBytecode)
	require.Error(t, err)
	assert.EqualValues(t, common.Address{}, contractAddress)
}

// TestStatePersistsAcrossCalls ensures state changes of successful calls are visible to later calls.
func TestStatePersistsAcrossCalls(t *testing.T) {
	testVM, err := NewTestVM()
	require.NoError(t, err)

	contractAddress, err := testVM.DeployContract(counterBytecode)
	require.NoError(t, err)

	// Each call increments the counter and returns its new value.
	for expected := byte(1); expected <= 3; expected++ {
		result, err := testVM.CallContract(contractAddress, nil)
		require.NoError(t, err)
		require.True(t, result.Succeeded())
		require.EqualValues(t, 32, len(result.ReturnData))
		assert.EqualValues(t, expected, result.ReturnData[31])
	}
}

// TestLogsAttributedPerCall ensures emitted logs are captured per call rather than accumulating across calls.
func TestLogsAttributedPerCall(t *testing.T) {
	testVM, err := NewTestVM()
	require.NoError(t, err)

	contractAddress, err := testVM.DeployContract(logBytecode)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		result, err := testVM.CallContract(contractAddress, nil)
		require.NoError(t, err)
		require.True(t, result.Succeeded())
		require.EqualValues(t, 1, len(result.Logs))
		assert.EqualValues(t, contractAddress, result.Logs[0].Address)
	}
}
