package fuzzing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/basilisk-fuzz/basilisk/chain"
	"github.com/basilisk-fuzz/basilisk/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// CrashKind describes the category of campaign verdict a CrashReport carries.
type CrashKind string

const (
	// CrashKindInvariantViolated indicates an invariant check returned false after the crashing call.
	CrashKindInvariantViolated CrashKind = "invariant_violated"
	// CrashKindRevert indicates the crashing call reverted and the campaign policy treats reverts as crashes.
	CrashKindRevert CrashKind = "revert"
	// CrashKindFault indicates the crashing call halted the EVM abnormally.
	CrashKindFault CrashKind = "fault"
	// CrashKindCheckFailed indicates the invariant check call itself reverted or faulted.
	CrashKindCheckFailed CrashKind = "invariant_check_failed"
)

// CrashReport describes a crashing input found by a fuzzing campaign. It carries everything needed to reproduce
// the crash: the campaign seed, the iteration it surfaced at, and the byte-exact calldata of the crashing call.
type CrashReport struct {
	// Iterations describes the 1-indexed iteration number the crash was found at.
	Iterations uint64 `json:"iterations"`

	// FunctionName describes the target function the crashing call invoked.
	FunctionName string `json:"functionName"`

	// Calldata describes the byte-exact payload of the crashing call.
	Calldata hexutil.Bytes `json:"calldata"`

	// CalldataHash describes the keccak256 digest of the crashing calldata, used as a stable identity for the input.
	CalldataHash hexutil.Bytes `json:"calldataHash"`

	// Kind categorizes the verdict which produced this report.
	Kind CrashKind `json:"kind"`

	// Reason describes the verdict in human-readable form (e.g. the EVM fault reason).
	Reason string `json:"reason"`

	// Seed describes the campaign seed, so the run which produced this crash can be replayed.
	Seed int64 `json:"seed"`
}

// newCrashReport creates a CrashReport for a crashing call, deriving the calldata digest from the payload.
func newCrashReport(iterations uint64, spec *FunctionSpec, calldata []byte, kind CrashKind, reason string, seed int64) *CrashReport {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(calldata)
	return &CrashReport{
		Iterations:   iterations,
		FunctionName: spec.Name,
		Calldata:     calldata,
		CalldataHash: hash.Sum(nil),
		Kind:         kind,
		Reason:       reason,
		Seed:         seed,
	}
}

// crashReasonForOutcome derives a human-readable reason string from the crashing call's result.
func crashReasonForOutcome(result *chain.CallResult) string {
	if result.VMError != nil {
		return fmt.Sprintf("call %s: %v", result.Outcome, result.VMError)
	}
	return fmt.Sprintf("call %s", result.Outcome)
}

// WriteToDirectory serializes the CrashReport as indented JSON to a uniquely named file in the provided directory,
// creating the directory if needed. Returns the path of the written artifact, or an error if one occurred.
func (c *CrashReport) WriteToDirectory(directory string) (string, error) {
	// Ensure our artifact directory exists.
	err := utils.MakeDirectory(directory)
	if err != nil {
		return "", err
	}

	// Serialize the report.
	b, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return "", errors.WithStack(err)
	}

	// Write it under a unique file name so repeated campaigns never clobber earlier findings.
	path := filepath.Join(directory, uuid.New().String()+".json")
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return path, nil
}
