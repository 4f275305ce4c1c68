package types

// Compilation represents the artifacts of a smart contract compilation.
type Compilation struct {
	// Sources describes the CompiledSource objects provided in a compilation, keyed by source unit path.
	Sources map[string]CompiledSource
}

// CompiledSource represents a source unit from a smart contract compilation.
type CompiledSource struct {
	// Contracts describes the contracts compiled from this source unit, keyed by contract name.
	Contracts map[string]CompiledContract
}

// NewCompilation returns a new, empty Compilation object.
func NewCompilation() *Compilation {
	return &Compilation{
		Sources: make(map[string]CompiledSource),
	}
}

// FindContract searches all source units of the compilation for a contract with the provided name. Returns the
// contract and a boolean indicating whether it was found.
func (c *Compilation) FindContract(contractName string) (*CompiledContract, bool) {
	for _, source := range c.Sources {
		if contract, ok := source.Contracts[contractName]; ok {
			return &contract, true
		}
	}
	return nil, false
}
