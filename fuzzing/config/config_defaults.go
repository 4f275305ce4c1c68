package config

import (
	"github.com/basilisk-fuzz/basilisk/compilation"
	"github.com/rs/zerolog"
)

// DefaultCompilationPlatform describes the compilation platform a project uses when none is specified.
const DefaultCompilationPlatform = "solc"

// GetDefaultProjectConfig obtains a default configuration for a project. It populates a default compilation config
// based on the provided platform, or a nil one if an empty string is provided.
func GetDefaultProjectConfig(platform string) (*ProjectConfig, error) {
	var (
		compilationConfig *compilation.CompilationConfig
		err               error
	)
	if platform != "" {
		compilationConfig, err = compilation.NewCompilationConfig(platform)
		if err != nil {
			return nil, err
		}
	}

	// Create a project configuration
	projectConfig := &ProjectConfig{
		Fuzzing: FuzzingConfig{
			Timeout:                0,
			TestLimit:              0,
			ProgressReportInterval: 100_000,
			RandomSeed:             0,
			TreatRevertAsCrash:     true,
			CrashArtifactDirectory: "crashes",
		},
		Compilation: compilationConfig,
		Logging: LoggingConfig{
			Level:                zerolog.InfoLevel,
			EnableConsoleLogging: true,
			LogDirectory:         "",
		},
	}

	// Return the project configuration
	return projectConfig, nil
}
