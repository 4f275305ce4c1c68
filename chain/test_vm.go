package chain

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	coreTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// callGasLimit describes the gas ceiling supplied to every call and deployment. It is effectively unbounded so that
// only logical execution faults, not resource exhaustion, terminate calls during fuzzing.
const callGasLimit = math.MaxUint64

// senderAddress describes the single well-known account used to deploy contracts and send calls.
var senderAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")

// TestVM represents a deterministic in-memory EVM used to deploy contracts and execute calls against them. It wraps
// a fresh go-ethereum state database and invokes the EVM directly, classifying every call into an explicit tri-state
// CallResult instead of collapsing reverts and faults into a single failure channel.
//
// A TestVM is owned exclusively by a single fuzzing campaign: state mutations of successful calls persist across
// calls, and no synchronization is provided for concurrent use.
type TestVM struct {
	// chainConfig describes the fork configuration the EVM executes under.
	chainConfig *params.ChainConfig

	// state describes the current EVM world state, shared and mutated across all calls.
	state *state.StateDB

	// blockContext describes the fixed block environment calls execute in.
	blockContext vm.BlockContext

	// txIndex is a monotonic counter used to give each call a unique transaction context within the state database.
	txIndex int
}

// NewTestVM creates a TestVM over a fresh in-memory state database, with the well-known sender account funded.
// Returns the TestVM, or an error if one occurred.
func NewTestVM() (*TestVM, error) {
	// Create our state database over an in-memory backing store.
	db := rawdb.NewMemoryDatabase()
	stateDatabase := state.NewDatabase(db)
	stateDB, err := state.New(coreTypes.EmptyRootHash, stateDatabase, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Copy the test chain configuration and enable the time-based forks, so the EVM executes with current semantics.
	chainConfig := *params.TestChainConfig
	forkTime := uint64(0)
	chainConfig.ShanghaiTime = &forkTime
	chainConfig.CancunTime = &forkTime

	// Define a fixed block context for all calls. A zeroed mix digest is set so post-merge rules activate.
	blockContext := vm.BlockContext{
		CanTransfer: core.CanTransfer,
		Transfer:    core.Transfer,
		GetHash: func(n uint64) common.Hash {
			return common.Hash{}
		},
		Coinbase:    common.Address{},
		GasLimit:    callGasLimit,
		BlockNumber: big.NewInt(1),
		Time:        1,
		Difficulty:  common.Big0,
		BaseFee:     big.NewInt(0),
		BlobBaseFee: big.NewInt(1),
		Random:      &common.Hash{},
	}

	// Fund our sender account.
	funding := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 255), uint256.NewInt(1))
	stateDB.SetBalance(senderAddress, funding, tracing.BalanceChangeUnspecified)

	return &TestVM{
		chainConfig:  &chainConfig,
		state:        stateDB,
		blockContext: blockContext,
	}, nil
}

// SenderAddress returns the well-known account used to deploy contracts and send calls.
func (t *TestVM) SenderAddress() common.Address {
	return senderAddress
}

// newEVM creates an EVM instance over the current state, preparing the state database for a new transaction targeting
// the optionally provided destination. Returns the EVM instance and the transaction hash assigned to the call.
func (t *TestVM) newEVM(destination *common.Address) (*vm.EVM, common.Hash) {
	// Give this call a unique transaction context, so emitted logs can be attributed to it.
	t.txIndex++
	txHash := common.BigToHash(big.NewInt(int64(t.txIndex)))

	// Prepare our state for the rules of our fork configuration, warming the relevant addresses.
	rules := t.chainConfig.Rules(t.blockContext.BlockNumber, true, t.blockContext.Time)
	t.state.Prepare(rules, senderAddress, t.blockContext.Coinbase, destination, vm.ActivePrecompiles(rules), nil)
	t.state.SetTxContext(txHash, t.txIndex)

	// Create our EVM instance for this call.
	txContext := vm.TxContext{
		Origin:   senderAddress,
		GasPrice: big.NewInt(0),
	}
	return vm.NewEVM(t.blockContext, txContext, t.state, t.chainConfig, vm.Config{}), txHash
}

// DeployContract deploys a contract with the provided creation bytecode and returns the address it was deployed to.
// Any revert or fault during deployment is returned as an error, as campaign setup is fatal and never retried.
func (t *TestVM) DeployContract(initBytecode []byte) (common.Address, error) {
	evm, _ := t.newEVM(nil)

	// Execute the creation bytecode. The EVM derives the deployment address from the sender's current nonce.
	_, deployedAddress, _, err := evm.Create(vm.AccountRef(senderAddress), initBytecode, callGasLimit, uint256.NewInt(0))
	if err != nil {
		if errors.Is(err, vm.ErrExecutionReverted) {
			return common.Address{}, errors.Errorf("contract deployment reverted")
		}
		return common.Address{}, errors.Errorf("contract deployment faulted: %v", err)
	}
	return deployedAddress, nil
}

// CallContract executes a call against the contract at the provided address with the provided calldata, classifying
// the result into a tri-state CallResult. State changes of successful calls persist; reverted and faulted calls roll
// their changes back within the EVM. The returned error describes a harness-level failure only, never an outcome of
// the call itself.
func (t *TestVM) CallContract(contractAddress common.Address, calldata []byte) (*CallResult, error) {
	evm, txHash := t.newEVM(&contractAddress)

	// Execute the call and classify the EVM error, if any. A nil error is a success, an explicit revert carries its
	// revert data, and everything else is an abnormal halt.
	returnData, leftoverGas, err := evm.Call(vm.AccountRef(senderAddress), contractAddress, calldata, callGasLimit, uint256.NewInt(0))
	result := &CallResult{
		GasUsed:    callGasLimit - leftoverGas,
		ReturnData: returnData,
	}
	if err == nil {
		result.Outcome = OutcomeSuccess
		result.Logs = t.state.GetLogs(txHash, t.blockContext.BlockNumber.Uint64(), common.Hash{})
	} else if errors.Is(err, vm.ErrExecutionReverted) {
		result.Outcome = OutcomeRevert
		result.VMError = err
	} else {
		result.Outcome = OutcomeFault
		result.VMError = err
	}
	return result, nil
}
