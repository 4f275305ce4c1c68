package fuzzing

import (
	"strings"

	"github.com/basilisk-fuzz/basilisk/compilation/types"
	"github.com/basilisk-fuzz/basilisk/fuzzing/valuegeneration"
	"github.com/basilisk-fuzz/basilisk/utils"
	"github.com/ethereum/go-ethereum/crypto"
)

// selectorLength describes the byte length of a function selector, per the Ethereum ABI convention.
const selectorLength = 4

// FunctionSelector computes the 4-byte function selector for a canonical function signature. Per the Ethereum ABI
// convention, the selector is the first four bytes of the keccak256 hash of the UTF-8 signature string.
func FunctionSelector(signature string) [selectorLength]byte {
	var selector [selectorLength]byte
	copy(selector[:], crypto.Keccak256([]byte(signature)))
	return selector
}

// FunctionSpec describes a single callable function of a target contract, carrying everything needed to generate a
// well-formed call to it. A FunctionSpec is immutable once built.
type FunctionSpec struct {
	// Name describes the function's bare name. It is used for diagnostics only and never participates in encoding.
	Name string

	// Signature describes the canonical signature string the selector was derived from, in the form
	// "name(type1,type2,...)".
	Signature string

	// Selector describes the function's 4-byte selector.
	Selector [selectorLength]byte

	// Params describes the function's parameter kinds in declared order.
	Params []*valuegeneration.ValueKind
}

// BuildFunctionSpecs builds a FunctionSpec for every function definition in the provided contract's ABI, preserving
// declared order. Non-function ABI entries (constructors, events, errors) are skipped. The canonical signature is
// built from each parameter's declared type name, so the spelling the contract author wrote is the spelling that is
// hashed. Any parameter with an unsupported type aborts spec construction with the *valuegeneration.UnsupportedTypeError,
// as a partially constructed interface could mask the calls a campaign is expected to exercise.
func BuildFunctionSpecs(contract *types.CompiledContract) ([]*FunctionSpec, error) {
	// Only callable function entries participate; constructors, events, and errors are not part of the interface.
	functionDefinitions := utils.SliceWhere(contract.Abi, func(definition types.FunctionDefinition) bool {
		return definition.IsFunction()
	})

	specs := make([]*FunctionSpec, 0, len(functionDefinitions))
	for _, definition := range functionDefinitions {
		// Parse every parameter's declared type name and collect the names for the canonical signature.
		paramTypeNames := make([]string, 0, len(definition.Inputs))
		params := make([]*valuegeneration.ValueKind, 0, len(definition.Inputs))
		for _, input := range definition.Inputs {
			typeName := input.DeclaredType()
			kind, err := valuegeneration.ParseValueKind(typeName)
			if err != nil {
				return nil, err
			}
			paramTypeNames = append(paramTypeNames, typeName)
			params = append(params, kind)
		}

		// Derive the canonical signature and its selector.
		signature := definition.Name + "(" + strings.Join(paramTypeNames, ",") + ")"
		specs = append(specs, &FunctionSpec{
			Name:      definition.Name,
			Signature: signature,
			Selector:  FunctionSelector(signature),
			Params:    params,
		})
	}
	return specs, nil
}
