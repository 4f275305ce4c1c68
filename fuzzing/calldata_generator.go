package fuzzing

import (
	"github.com/basilisk-fuzz/basilisk/fuzzing/valuegeneration"
)

// CalldataGenerator generates random, ABI-conformant calldata payloads for the functions of a single target
// contract interface. Function choice is uniform across the interface and argument values are drawn from the
// underlying ValueGenerator, so a generator seeded identically produces an identical call stream.
type CalldataGenerator struct {
	// specs describes the callable functions of the target interface. It is never mutated after construction.
	specs []*FunctionSpec

	// valueGenerator describes the provider used to generate argument values and select functions.
	valueGenerator valuegeneration.ValueGenerator
}

// NewCalldataGenerator creates a CalldataGenerator over the provided function specs and value generator.
// Returns ErrEmptyInterface if the provided interface has no functions, as a generator with nothing to call
// could never make progress.
func NewCalldataGenerator(specs []*FunctionSpec, valueGenerator valuegeneration.ValueGenerator) (*CalldataGenerator, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyInterface
	}
	return &CalldataGenerator{
		specs:          specs,
		valueGenerator: valueGenerator,
	}, nil
}

// Generate selects a function uniformly at random from the target interface and generates a full calldata payload
// for it: the 4-byte selector followed by one 32-byte ABI word per parameter, in declared order. The payload length
// is always 4 + 32*len(spec.Params). Returns the chosen spec and the payload, or an error if a parameter could not
// be encoded.
func (g *CalldataGenerator) Generate() (*FunctionSpec, []byte, error) {
	// Select our function uniformly.
	spec := g.specs[g.valueGenerator.RandomProvider().Intn(len(g.specs))]

	// Build our payload, starting with the selector and appending one encoded word per parameter.
	calldata := make([]byte, 0, selectorLength+32*len(spec.Params))
	calldata = append(calldata, spec.Selector[:]...)
	for _, param := range spec.Params {
		word, err := valuegeneration.GenerateAbiWord(g.valueGenerator, param)
		if err != nil {
			return nil, nil, err
		}
		calldata = append(calldata, word...)
	}
	return spec, calldata, nil
}
