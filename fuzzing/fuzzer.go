package fuzzing

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/basilisk-fuzz/basilisk/chain"
	"github.com/basilisk-fuzz/basilisk/compilation/types"
	"github.com/basilisk-fuzz/basilisk/fuzzing/config"
	"github.com/basilisk-fuzz/basilisk/fuzzing/valuegeneration"
	"github.com/basilisk-fuzz/basilisk/logging"
	"github.com/basilisk-fuzz/basilisk/logging/colors"
	"github.com/basilisk-fuzz/basilisk/utils"
	"github.com/basilisk-fuzz/basilisk/utils/randomutils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/exp/slices"
)

const (
	// TargetContractName describes the name of the contract whose interface the fuzzer generates calls against.
	TargetContractName = "InvariantBreaker"

	// InvariantCheckerContractName describes the name of the contract which is deployed, set up, and queried for
	// the invariant verdict after every target call.
	InvariantCheckerContractName = "InvariantTest"

	// setupFunctionSignature describes the checker function invoked once after deployment to initialize the
	// campaign, including deployment of the target contract.
	setupFunctionSignature = "setUp()"

	// targetAccessorSignature describes the checker function whose return word carries the target contract address.
	targetAccessorSignature = "inv()"

	// invariantCheckSignature describes the checker function whose strict boolean return word is the invariant
	// verdict after each target call.
	invariantCheckSignature = "invariant_neverFalse()"
)

// Fuzzer represents an invariant fuzzing provider for compiled smart contracts.
type Fuzzer struct {
	// ctx describes the context for the fuzzing run, used to cancel running operations.
	ctx context.Context
	// ctxCancelFunc describes a function which can be used to cancel the fuzzing operations ctx tracks.
	ctxCancelFunc context.CancelFunc

	// config describes the project configuration which the fuzzing is targeting.
	config config.ProjectConfig
	// compilations describes the compiled targets in which the campaign contracts are looked up.
	compilations []types.Compilation
	// metrics represents the metrics for the fuzzing campaign.
	metrics *FuzzerMetrics
	// logger describes the Fuzzer's log object that can be used to log important events
	logger *logging.Logger

	// Events describes the event system for the Fuzzer.
	Events FuzzerEvents
}

// NewFuzzer returns an instance of a new Fuzzer provided a project configuration, or an error if one is encountered
// while initializing the code.
func NewFuzzer(config config.ProjectConfig) (*Fuzzer, error) {
	// Validate our provided config
	err := config.Validate()
	if err != nil {
		logging.GlobalLogger.Error("Invalid configuration", err)
		return nil, err
	}

	// Replace the global logger with one configured per the project, then derive our sub-logger from it.
	logging.GlobalLogger = logging.NewLogger(config.Logging.Level, config.Logging.EnableConsoleLogging)
	if config.Logging.LogDirectory != "" {
		// Log files are kept in structured format regardless of console settings.
		file, err := utils.CreateFile(config.Logging.LogDirectory, "basilisk.log")
		if err != nil {
			logging.GlobalLogger.Error("Failed to create log file", err)
			return nil, err
		}
		logging.GlobalLogger.AddWriter(file, logging.STRUCTURED)
	}

	// Create our fuzzing instance.
	fuzzer := &Fuzzer{
		config:       config,
		compilations: make([]types.Compilation, 0),
		logger:       logging.GlobalLogger.NewSubLogger("module", "fuzzer"),
	}

	// If we have a compilation config, compile the targets it describes now.
	if fuzzer.config.Compilation != nil {
		fuzzer.logger.Info("Compiling targets with ", colors.Bold, fuzzer.config.Compilation.Platform, colors.Reset)
		start := time.Now()
		compilations, _, err := fuzzer.config.Compilation.Compile()
		if err != nil {
			fuzzer.logger.Error("Failed to compile target", err)
			return nil, err
		}
		fuzzer.logger.Info("Finished compiling targets in ", time.Since(start).Round(time.Millisecond))
		fuzzer.AddCompilationTargets(compilations)
	}

	return fuzzer, nil
}

// Config exposes the underlying project configuration provided to the Fuzzer.
func (f *Fuzzer) Config() config.ProjectConfig {
	return f.config
}

// Metrics exposes the underlying metrics of the current or last campaign run by the Fuzzer. It is nil before the
// first Start call.
func (f *Fuzzer) Metrics() *FuzzerMetrics {
	return f.metrics
}

// Compilations exposes the compiled targets registered with the Fuzzer.
func (f *Fuzzer) Compilations() []types.Compilation {
	return slices.Clone(f.compilations)
}

// AddCompilationTargets registers additional compiled targets with the Fuzzer, in which the campaign contracts will
// be looked up when a fuzzing operation starts.
func (f *Fuzzer) AddCompilationTargets(compilations []types.Compilation) {
	f.compilations = append(f.compilations, compilations...)
}

// findCompiledContract looks up a contract by name across every registered compilation. Returns the contract, or a
// ContractNotFoundError if no compiled source defines it.
func (f *Fuzzer) findCompiledContract(contractName string) (*types.CompiledContract, error) {
	for i := range f.compilations {
		if contract, found := f.compilations[i].FindContract(contractName); found {
			return contract, nil
		}
	}
	return nil, &ContractNotFoundError{ContractName: contractName}
}

// Start begins a fuzzing campaign on the registered compilation targets. The campaign deploys the invariant checker,
// resolves the target contract, and hammers the target with random calls until an invariant breaks, a limit is hit,
// or the operation is cancelled through Stop.
//
// A crash is the campaign's success condition, not an error: when a crashing input is found it is returned as a
// CrashReport with a nil error. A nil report with a nil error indicates the campaign exhausted its limits without
// finding a crash. An error indicates the campaign itself could not run or complete.
func (f *Fuzzer) Start() (*CrashReport, error) {
	// Create our running context (allows us to cancel across threads)
	f.ctx, f.ctxCancelFunc = context.WithCancel(context.Background())

	// If we set a timeout, create the timeout context now, as we're about to begin fuzzing.
	if f.config.Fuzzing.Timeout > 0 {
		f.logger.Info("Running with a timeout of ", colors.Bold, f.config.Fuzzing.Timeout, " seconds")
		f.ctx, f.ctxCancelFunc = context.WithTimeout(f.ctx, time.Duration(f.config.Fuzzing.Timeout)*time.Second)
	}

	// Locate both campaign contracts before touching the chain, so a misnamed project fails fast.
	checker, err := f.findCompiledContract(InvariantCheckerContractName)
	if err != nil {
		return nil, err
	}
	target, err := f.findCompiledContract(TargetContractName)
	if err != nil {
		return nil, err
	}

	// Derive the campaign seed and always log it, so any run can be reproduced after the fact.
	seed := f.config.Fuzzing.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f.logger.Info("Fuzzing with seed ", colors.Bold, seed, colors.Reset)
	randomProvider := rand.New(rand.NewSource(seed))

	// Create the campaign's dedicated EVM and deploy the invariant checker onto it.
	testVM, err := chain.NewTestVM()
	if err != nil {
		return nil, err
	}
	checkerAddress, err := testVM.DeployContract(checker.InitBytecode)
	if err != nil {
		return nil, &SetupError{Stage: "invariant checker deployment", Err: err}
	}

	// If the checker's bytecode carries contract metadata, surface the compiler it was built with.
	if metadata := types.ExtractContractMetadata(checker.RuntimeBytecode); metadata != nil {
		if version := metadata.ExtractCompilerVersion(); version != nil {
			f.logger.Debug("Invariant checker was compiled with solc ", version.String())
		}
	}

	// Run the checker's setup entry point. Setup performs the target deployment, so any failure here is fatal.
	setupSelector := FunctionSelector(setupFunctionSignature)
	setupResult, err := testVM.CallContract(checkerAddress, setupSelector[:])
	if err != nil {
		return nil, err
	}
	if !setupResult.Succeeded() {
		return nil, &SetupError{Stage: "the " + setupFunctionSignature + " call", Err: setupResult.VMError}
	}

	// Resolve the target contract address from the checker's accessor. The low 20 bytes of the returned ABI word
	// carry the address.
	accessorSelector := FunctionSelector(targetAccessorSignature)
	accessorResult, err := testVM.CallContract(checkerAddress, accessorSelector[:])
	if err != nil {
		return nil, err
	}
	if !accessorResult.Succeeded() {
		return nil, &SetupError{Stage: "the " + targetAccessorSignature + " call", Err: accessorResult.VMError}
	}
	if len(accessorResult.ReturnData) != 32 {
		return nil, &SetupError{Stage: "target address resolution"}
	}
	targetAddress := common.BytesToAddress(accessorResult.ReturnData[12:32])
	f.logger.Info("Fuzzing ", colors.Bold, TargetContractName, colors.Reset, " at ", targetAddress.String())

	// Build the target's callable interface and the calldata generator over it. The generator draws values from a
	// forked random provider, keeping the campaign's call stream decoupled from any other consumer of the seed.
	specs, err := BuildFunctionSpecs(target)
	if err != nil {
		return nil, err
	}
	signatures := utils.SliceSelect(specs, func(spec *FunctionSpec) string {
		return spec.Signature
	})
	f.logger.Debug("Target interface: ", strings.Join(signatures, ", "))
	valueGenerator := valuegeneration.NewRandomValueGenerator(randomutils.ForkRandomProvider(randomProvider))
	calldataGenerator, err := NewCalldataGenerator(specs, valueGenerator)
	if err != nil {
		return nil, err
	}

	// Initialize our metrics now that we are about to begin fuzzing.
	f.metrics = newFuzzerMetrics()

	// Publish a fuzzer starting event.
	err = f.Events.FuzzerStarting.Publish(FuzzerStartingEvent{Fuzzer: f})
	if err != nil {
		return nil, err
	}

	// Run the main fuzzing loop, then publish a fuzzer stopping event regardless of how it exited.
	report, err := f.runCampaignLoop(testVM, calldataGenerator, targetAddress, checkerAddress, seed)
	stoppingErr := f.Events.FuzzerStopping.Publish(FuzzerStoppingEvent{Fuzzer: f, err: err})
	if err == nil && stoppingErr != nil {
		err = stoppingErr
	}
	return report, err
}

// Stop stops a running operation invoked by the Start method. This method may return before complete operation
// teardown occurs.
func (f *Fuzzer) Stop() {
	// Call the cancel function on our running context to stop the fuzzing loop
	if f.ctxCancelFunc != nil {
		f.ctxCancelFunc()
	}
}

// runCampaignLoop executes the main fuzzing loop: it generates a random call against the target, classifies its
// outcome, queries the invariant checker, and repeats until a crash is found, a limit is reached, or the context is
// cancelled. Returns a CrashReport when a crashing input was found, or nil when the campaign exited without one.
func (f *Fuzzer) runCampaignLoop(testVM *chain.TestVM, calldataGenerator *CalldataGenerator, targetAddress common.Address, checkerAddress common.Address, seed int64) (*CrashReport, error) {
	checkSelector := FunctionSelector(invariantCheckSignature)
	for iterations := uint64(1); ; iterations++ {
		// Halt without a report when cancelled, timed out, or past the configured call budget.
		if utils.CheckContextDone(f.ctx) {
			f.logger.Info("Fuzzing operation cancelled after ", colors.Bold, f.metrics.CallsTested(), colors.Reset, " calls")
			return nil, nil
		}
		if f.config.Fuzzing.TestLimit > 0 && iterations > f.config.Fuzzing.TestLimit {
			f.logger.Info("Test limit of ", colors.Bold, f.config.Fuzzing.TestLimit, colors.Reset, " calls reached, halting now")
			return nil, nil
		}
		f.metrics.callsTested = iterations

		// Generate the next call and execute it against the target.
		spec, calldata, err := calldataGenerator.Generate()
		if err != nil {
			return nil, err
		}
		result, err := testVM.CallContract(targetAddress, calldata)
		if err != nil {
			return nil, err
		}
		f.logger.Debug("Called ", spec.Name, " with payload ", hexutil.Encode(calldata), " (", result.Outcome.String(), ", gas used: ", result.GasUsed, ")")

		// Classify the call outcome. A fault is a crash verdict unconditionally. A revert is a crash verdict under
		// the default policy, and tolerated otherwise, in which case the invariant check still decides.
		if result.Faulted() {
			return f.reportCrash(newCrashReport(iterations, spec, calldata, CrashKindFault, crashReasonForOutcome(result), seed))
		}
		if result.Reverted() && f.config.Fuzzing.TreatRevertAsCrash {
			return f.reportCrash(newCrashReport(iterations, spec, calldata, CrashKindRevert, crashReasonForOutcome(result), seed))
		}
		if result.Succeeded() {
			for _, emittedLog := range result.Logs {
				f.logger.Debug("Log emitted by ", emittedLog.Address.String(), " with topics ", emittedLog.Topics)
			}
		}

		// Query the invariant checker. A revert or fault of the check call itself is a crash verdict, while
		// malformed return data is a fatal protocol violation distinct from a legitimate false.
		checkResult, err := testVM.CallContract(checkerAddress, checkSelector[:])
		if err != nil {
			return nil, err
		}
		if !checkResult.Succeeded() {
			return f.reportCrash(newCrashReport(iterations, spec, calldata, CrashKindCheckFailed, crashReasonForOutcome(checkResult), seed))
		}
		holds, err := decodeInvariantVerdict(checkResult.ReturnData)
		if err != nil {
			return nil, err
		}
		if !holds {
			return f.reportCrash(newCrashReport(iterations, spec, calldata, CrashKindInvariantViolated, invariantCheckSignature+" returned false", seed))
		}

		// Emit a liveness line on the configured interval.
		if iterations%f.config.Fuzzing.ProgressReportInterval == 0 {
			f.logger.Info(
				"Tested ", colors.Bold, iterations, colors.Reset, " calls",
				" (elapsed: ", time.Duration(f.metrics.ElapsedSeconds()*float64(time.Second)).Round(time.Second),
				", calls/sec: ", f.metrics.CallsPerSecond(), ")",
			)
		}
	}
}

// reportCrash logs a found crash, writes its artifact if an artifact directory is configured, and publishes the
// CrashDetected event. Returns the report for the campaign to surface as its result.
func (f *Fuzzer) reportCrash(report *CrashReport) (*CrashReport, error) {
	f.logger.Info(colors.RedBold, "Crash found after ", report.Iterations, " iterations!", colors.Reset)
	f.logger.Info("Crashing call: ", colors.Bold, report.FunctionName, colors.Reset, " with payload ", hexutil.Encode(report.Calldata))
	f.logger.Info("Crash verdict: ", string(report.Kind), " (", report.Reason, ")")

	// Persist the crash artifact for replay tooling, if configured.
	if f.config.Fuzzing.CrashArtifactDirectory != "" {
		path, err := report.WriteToDirectory(f.config.Fuzzing.CrashArtifactDirectory)
		if err != nil {
			f.logger.Error("Failed to write crash artifact", err)
			return nil, err
		}
		f.logger.Info("Crash artifact written to ", path)
	}

	// Publish a crash detected event.
	err := f.Events.CrashDetected.Publish(CrashDetectedEvent{Fuzzer: f, Report: report})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// decodeInvariantVerdict decodes the strict ABI boolean word an invariant check must return: exactly 32 bytes, the
// first 31 of which are zero, with a final byte of zero or one. Any other shape returns an *InvariantEncodingError.
func decodeInvariantVerdict(returnData []byte) (bool, error) {
	if len(returnData) != 32 {
		return false, &InvariantEncodingError{FunctionName: invariantCheckSignature, ReturnData: returnData}
	}
	for _, b := range returnData[:31] {
		if b != 0 {
			return false, &InvariantEncodingError{FunctionName: invariantCheckSignature, ReturnData: returnData}
		}
	}
	switch returnData[31] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &InvariantEncodingError{FunctionName: invariantCheckSignature, ReturnData: returnData}
	}
}
