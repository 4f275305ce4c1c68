package chain

import (
	coreTypes "github.com/ethereum/go-ethereum/core/types"
)

// CallOutcome classifies the result of a contract call into one of three mutually exclusive outcomes. The three are
// never conflated: a revert carries revert data and may still be tolerated by the caller's policy, while a fault is
// an abnormal EVM halt which short-circuits any further interpretation of the call.
type CallOutcome int

const (
	// OutcomeSuccess indicates the call completed normally.
	OutcomeSuccess CallOutcome = iota
	// OutcomeRevert indicates the call executed a REVERT, rolling back its state changes and optionally carrying
	// revert return data.
	OutcomeRevert
	// OutcomeFault indicates the EVM halted abnormally (e.g. an invalid opcode, stack limit breach, or out-of-gas
	// condition), distinct from both success and an explicit revert.
	OutcomeFault
)

// String returns a printable name for a CallOutcome.
func (o CallOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRevert:
		return "revert"
	case OutcomeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// CallResult describes the outcome of a single contract call executed by a TestVM.
type CallResult struct {
	// Outcome classifies the call as a success, revert, or fault.
	Outcome CallOutcome

	// GasUsed describes the amount of gas consumed by the call.
	GasUsed uint64

	// ReturnData describes the data returned by the call. On a revert this carries the revert data, if any.
	ReturnData []byte

	// VMError describes the EVM error which caused a revert or fault outcome. It is nil on success.
	VMError error

	// Logs describes the logs emitted during a successful call. Reverted and faulted calls emit no logs.
	Logs []*coreTypes.Log
}

// Succeeded returns a boolean indicating whether the call completed normally.
func (r *CallResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Reverted returns a boolean indicating whether the call reverted.
func (r *CallResult) Reverted() bool {
	return r.Outcome == OutcomeRevert
}

// Faulted returns a boolean indicating whether the call halted abnormally.
func (r *CallResult) Faulted() bool {
	return r.Outcome == OutcomeFault
}
