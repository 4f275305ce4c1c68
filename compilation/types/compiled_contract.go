package types

// ParameterDefinition describes a single input parameter of a contract function, as declared in the compiler's ABI
// output.
type ParameterDefinition struct {
	// Name describes the declared parameter name. It carries no behavioral weight.
	Name string `json:"name"`

	// Type describes the canonical ABI type name of the parameter (e.g. "uint256").
	Type string `json:"type"`

	// InternalType describes the type name as spelled in the contract source. For elementary types this matches Type,
	// but user-defined value types and aliases retain their source spelling here.
	InternalType string `json:"internalType"`
}

// DeclaredType returns the type name as declared in the contract source, falling back to the canonical ABI type name
// when the compiler did not report a source spelling. Function signatures are canonicalized over these declared
// spellings, so this string participates in selector derivation.
func (p *ParameterDefinition) DeclaredType() string {
	if p.InternalType != "" {
		return p.InternalType
	}
	return p.Type
}

// FunctionDefinition describes a single entry of a contract's ABI definition, in the compiler's declared order.
type FunctionDefinition struct {
	// Type describes the kind of ABI entry, e.g. "function", "constructor", "event". Only function entries are
	// callable through generated calldata.
	Type string `json:"type"`

	// Name describes the declared function name.
	Name string `json:"name"`

	// Inputs describes the ordered input parameters of the function.
	Inputs []ParameterDefinition `json:"inputs"`

	// StateMutability describes the declared mutability of the function (e.g. "view", "payable"), when reported.
	StateMutability string `json:"stateMutability"`
}

// IsFunction returns a boolean indicating whether this ABI entry describes a callable function.
func (f *FunctionDefinition) IsFunction() bool {
	return f.Type == "function"
}

// CompiledContract represents a single contract unit from a smart contract compilation.
type CompiledContract struct {
	// Abi describes the contract's application binary interface entries, preserving the compiler's declared order.
	Abi []FunctionDefinition

	// InitBytecode describes the bytecode used to deploy the contract.
	InitBytecode []byte

	// RuntimeBytecode represents the rudimentary bytecode to be expected once the contract has been successfully
	// deployed. This may differ at runtime based on constructor arguments, immutables, linked libraries, etc.
	RuntimeBytecode []byte
}
