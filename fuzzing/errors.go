package fuzzing

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ErrEmptyInterface indicates a target contract exposes no callable functions, leaving the fuzzer with nothing to
// generate calls against. It is a setup-time failure.
var ErrEmptyInterface = errors.New("target contract exposes no callable functions")

// ContractNotFoundError indicates one of the named campaign contracts was not present in the compilation output.
type ContractNotFoundError struct {
	// ContractName describes the contract name which was searched for across all compiled sources.
	ContractName string
}

// Error implements the error interface, returning the error message for a ContractNotFoundError.
func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("contract '%s' was not found in the compilation output", e.ContractName)
}

// SetupError indicates the campaign could not reach its fuzzing loop because a setup stage failed. Setup failures
// are fatal and never retried.
type SetupError struct {
	// Stage describes the setup stage which failed (e.g. deployment, the setup call, target resolution).
	Stage string

	// Err describes the underlying failure, if one exists beyond the stage description.
	Err error
}

// Error implements the error interface, returning the error message for a SetupError.
func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("campaign setup failed during %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("campaign setup failed during %s", e.Stage)
}

// Unwrap returns the underlying error wrapped by a SetupError.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// InvariantEncodingError indicates an invariant check call returned data which is not a strictly encoded ABI boolean
// word. This is a protocol violation by the checker contract, distinct from a legitimate false verdict, and is fatal.
type InvariantEncodingError struct {
	// FunctionName describes the invariant check function whose return data was malformed.
	FunctionName string

	// ReturnData describes the raw data the check call returned.
	ReturnData []byte
}

// Error implements the error interface, returning the error message for an InvariantEncodingError.
func (e *InvariantEncodingError) Error() string {
	return fmt.Sprintf("invariant check '%s' returned data which is not a strictly encoded boolean: %v", e.FunctionName, hexutil.Encode(e.ReturnData))
}
