package config

import (
	"encoding/json"
	"os"

	"github.com/basilisk-fuzz/basilisk/compilation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ProjectConfig describes the complete configuration of a fuzzing project.
type ProjectConfig struct {
	// Fuzzing describes the configuration used in fuzzing campaigns.
	Fuzzing FuzzingConfig `json:"fuzzing"`

	// Compilation describes the configuration used to compile the underlying project. If nil, the fuzzer expects
	// compilation targets to be provided programmatically.
	Compilation *compilation.CompilationConfig `json:"compilation"`

	// Logging describes the configuration used for logging to file and console.
	Logging LoggingConfig `json:"logging"`
}

// FuzzingConfig describes the configuration options used by the fuzzing.Fuzzer.
type FuzzingConfig struct {
	// Timeout describes a time in seconds for which the fuzzing operation should run. Providing negative or zero
	// value will result in no timeout.
	Timeout int `json:"timeout"`

	// TestLimit describes a threshold for the number of calls to test, after which the campaign will exit without
	// a crash report. A zero value indicates the test limit should not be enforced.
	TestLimit uint64 `json:"testLimit"`

	// ProgressReportInterval describes after how many calls a liveness line is logged during the campaign.
	ProgressReportInterval uint64 `json:"progressReportInterval"`

	// RandomSeed describes the seed for the campaign's random provider. A zero value derives the seed from the
	// current time; any other value makes the campaign reproducible.
	RandomSeed int64 `json:"randomSeed"`

	// TreatRevertAsCrash describes whether a reverting target call is itself a crash verdict, or whether reverts
	// are tolerated and only the invariant check decides.
	TreatRevertAsCrash bool `json:"treatRevertAsCrash"`

	// CrashArtifactDirectory describes the directory where crash reports are serialized for later replay. If the
	// string is empty, no artifacts are written.
	CrashArtifactDirectory string `json:"crashArtifactDirectory"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// EnableConsoleLogging describes whether console logging is enabled
	EnableConsoleLogging bool `json:"enableConsoleLogging"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty,
	// then no log files are kept
	LogDirectory string `json:"logDirectory"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration over defaults, so omitted keys keep their default values.
	projectConfig, err := GetDefaultProjectConfig(DefaultCompilationPlatform)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// Verify the timeout is not negative.
	if p.Fuzzing.Timeout < 0 {
		return errors.Errorf("project configuration must specify a non-negative timeout")
	}

	// Verify a liveness interval exists, as a zero interval would divide the campaign into nothing.
	if p.Fuzzing.ProgressReportInterval == 0 {
		return errors.Errorf("project configuration must specify a positive progress report interval")
	}

	// The log level must be a known zerolog level.
	if p.Logging.Level < zerolog.TraceLevel || p.Logging.Level > zerolog.Disabled {
		return errors.Errorf("project configuration must specify a valid log level")
	}
	return nil
}
