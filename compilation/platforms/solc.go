package platforms

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/basilisk-fuzz/basilisk/compilation/types"
	"github.com/basilisk-fuzz/basilisk/utils"
)

// minimumSolcVersion describes the oldest Solidity compiler version the solc platform supports.
var minimumSolcVersion = semver.MustParse("0.4.0")

// SolcCompilationConfig represents the configuration for compiling a single Solidity target with the solc binary.
type SolcCompilationConfig struct {
	// Target describes the Solidity source file to compile.
	Target string `json:"target"`
}

// NewSolcCompilationConfig returns a SolcCompilationConfig for the provided target.
func NewSolcCompilationConfig(target string) *SolcCompilationConfig {
	return &SolcCompilationConfig{
		Target: target,
	}
}

// Platform returns the platform identifier for this configuration.
func (s *SolcCompilationConfig) Platform() string {
	return "solc"
}

// GetTarget returns the target for compilation.
func (s *SolcCompilationConfig) GetTarget() string {
	return s.Target
}

// SetTarget sets the new target for compilation.
func (s *SolcCompilationConfig) SetTarget(newTarget string) {
	s.Target = newTarget
}

// GetSystemSolcVersion obtains the version of the solc binary available on the system path.
// Returns the parsed version, or an error if solc is not installed or its version could not be determined.
func GetSystemSolcVersion() (*semver.Version, error) {
	// Run solc --version to obtain our compiler version.
	out, err := exec.Command("solc", "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while executing solc:\nOUTPUT:\n%s\nERROR: %s\n", string(out), err.Error())
	}

	// Parse the compiler version out of the output
	exp := regexp.MustCompile(`\d+\.\d+\.\d+`)
	versionStr := exp.FindString(string(out))
	if versionStr == "" {
		return nil, errors.New("could not parse solc version using 'solc --version'")
	}

	// Parse our semver string and return it
	return semver.NewVersion(versionStr)
}

// solcCombinedJSON mirrors the structure of the solc --combined-json output we request.
type solcCombinedJSON struct {
	Contracts map[string]solcCombinedJSONContract `json:"contracts"`
	Version   string                              `json:"version"`
}

// solcCombinedJSONContract describes one contract entry of the combined JSON output, keyed "sourcePath:ContractName".
type solcCombinedJSONContract struct {
	// Abi holds the contract's ABI definition. Depending on the solc version this is either a JSON array or a
	// JSON-encoded string containing one.
	Abi json.RawMessage `json:"abi"`

	// Bin holds the hex-encoded creation bytecode.
	Bin string `json:"bin"`

	// BinRuntime holds the hex-encoded runtime bytecode.
	BinRuntime string `json:"bin-runtime"`
}

// Compile compiles the configured target with the system solc binary and parses its combined JSON output into
// compilation artifacts. Returns the compilations, the command's standard error output, and an error if one occurred.
func (s *SolcCompilationConfig) Compile() ([]types.Compilation, string, error) {
	// Obtain our solc version and verify it is usable.
	v, err := GetSystemSolcVersion()
	if err != nil {
		return nil, "", err
	}
	if v.LessThan(minimumSolcVersion) {
		return nil, "", fmt.Errorf("solc version %s is not supported, need at least %s", v.String(), minimumSolcVersion.String())
	}

	// Create our command. Optimizer settings are left at the compiler's defaults.
	cmd := exec.Command("solc", s.Target, "--combined-json", "bin,bin-runtime,abi")
	cmdStdout, cmdStderr, cmdCombined, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("error while executing solc:\n%s\n\nCommand Output:\n%s\n", err.Error(), string(cmdCombined))
	}

	// Our compilation succeeded, load the JSON
	var results solcCombinedJSON
	err = json.Unmarshal(cmdStdout, &results)
	if err != nil {
		return nil, "", fmt.Errorf("could not parse solc combined JSON output: %v", err)
	}

	// Create a compilation unit out of this and parse every contract entry into it.
	compilation := types.NewCompilation()
	for name, contract := range results.Contracts {
		// Split our name which should be of form "sourcePath:contractName"
		nameSplit := strings.Split(name, ":")
		sourcePath := strings.Join(nameSplit[0:len(nameSplit)-1], ":")
		contractName := nameSplit[len(nameSplit)-1]

		// Parse the ABI definition, preserving the compiler's declared entry order.
		abiDefinitions, err := parseAbiDefinitions(contract.Abi)
		if err != nil {
			return nil, "", fmt.Errorf("could not parse ABI for contract '%s': %v", contractName, err)
		}

		// Decode our init and runtime bytecode
		initBytecode, err := hex.DecodeString(strings.TrimPrefix(contract.Bin, "0x"))
		if err != nil {
			return nil, "", fmt.Errorf("unable to parse init bytecode for contract '%s'", contractName)
		}
		runtimeBytecode, err := hex.DecodeString(strings.TrimPrefix(contract.BinRuntime, "0x"))
		if err != nil {
			return nil, "", fmt.Errorf("unable to parse runtime bytecode for contract '%s'", contractName)
		}

		// Construct our compiled contract under its source unit.
		if _, ok := compilation.Sources[sourcePath]; !ok {
			compilation.Sources[sourcePath] = types.CompiledSource{
				Contracts: make(map[string]types.CompiledContract),
			}
		}
		compilation.Sources[sourcePath].Contracts[contractName] = types.CompiledContract{
			Abi:             abiDefinitions,
			InitBytecode:    initBytecode,
			RuntimeBytecode: runtimeBytecode,
		}
	}

	return []types.Compilation{*compilation}, string(cmdStderr), nil
}

// parseAbiDefinitions parses an ABI definition from solc combined JSON output. Older compiler versions emit the ABI
// as a JSON-encoded string rather than an array, so both forms are accepted.
func parseAbiDefinitions(raw json.RawMessage) ([]types.FunctionDefinition, error) {
	if len(raw) == 0 {
		return nil, errors.New("missing ABI definition")
	}

	// If the ABI was emitted as a string, unwrap it first.
	abiJSON := []byte(raw)
	if abiJSON[0] == '"' {
		var unwrapped string
		if err := json.Unmarshal(raw, &unwrapped); err != nil {
			return nil, err
		}
		abiJSON = []byte(unwrapped)
	}

	var definitions []types.FunctionDefinition
	if err := json.Unmarshal(abiJSON, &definitions); err != nil {
		return nil, err
	}
	return definitions, nil
}
