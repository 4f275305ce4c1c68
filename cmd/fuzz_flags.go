package cmd

import (
	"fmt"

	"github.com/basilisk-fuzz/basilisk/fuzzing/config"
	"github.com/spf13/cobra"
)

// addFuzzFlags adds the various flags for the fuzz command
func addFuzzFlags() error {
	// Get the default project config and throw an error if we cant
	defaultConfig, err := config.GetDefaultProjectConfig(DefaultCompilationPlatform)
	if err != nil {
		return err
	}

	// Prevent alphabetical sorting of usage message
	fuzzCmd.Flags().SortFlags = false

	// Config file
	fuzzCmd.Flags().String("config", "", "path to config file")

	// Target
	fuzzCmd.Flags().String("target", "", TargetFlagDescription)

	// Timeout
	fuzzCmd.Flags().Int("timeout", 0,
		fmt.Sprintf("number of seconds to run the fuzzer campaign for (unless a config file is provided, default is %d). 0 means that timeout is not enforced", defaultConfig.Fuzzing.Timeout))

	// Test limit
	fuzzCmd.Flags().Uint64("test-limit", 0,
		fmt.Sprintf("number of calls to test before exiting (unless a config file is provided, default is %d). 0 means that test limit is not enforced", defaultConfig.Fuzzing.TestLimit))

	// Seed
	fuzzCmd.Flags().Int64("seed", 0,
		"campaign seed for a reproducible run. 0 means the seed is derived from the current time")

	// Progress report interval
	fuzzCmd.Flags().Uint64("progress-interval", 0,
		fmt.Sprintf("number of calls between liveness log lines (unless a config file is provided, default is %d)", defaultConfig.Fuzzing.ProgressReportInterval))

	// Crash artifact directory
	fuzzCmd.Flags().String("crash-dir", "",
		fmt.Sprintf("directory path for crash artifacts (unless a config file is provided, default is %q). An empty value disables artifacts", defaultConfig.Fuzzing.CrashArtifactDirectory))
	return nil
}

// updateProjectConfigWithFuzzFlags will update the given projectConfig with any CLI arguments that were provided to the fuzz command
func updateProjectConfigWithFuzzFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// Update compilation target
	err := updateCompilationTarget(cmd, projectConfig)
	if err != nil {
		return err
	}

	// Update timeout
	if cmd.Flags().Changed("timeout") {
		projectConfig.Fuzzing.Timeout, err = cmd.Flags().GetInt("timeout")
		if err != nil {
			return err
		}
	}

	// Update test limit
	if cmd.Flags().Changed("test-limit") {
		projectConfig.Fuzzing.TestLimit, err = cmd.Flags().GetUint64("test-limit")
		if err != nil {
			return err
		}
	}

	// Update seed
	if cmd.Flags().Changed("seed") {
		projectConfig.Fuzzing.RandomSeed, err = cmd.Flags().GetInt64("seed")
		if err != nil {
			return err
		}
	}

	// Update progress report interval
	if cmd.Flags().Changed("progress-interval") {
		projectConfig.Fuzzing.ProgressReportInterval, err = cmd.Flags().GetUint64("progress-interval")
		if err != nil {
			return err
		}
	}

	// Update crash artifact directory
	if cmd.Flags().Changed("crash-dir") {
		projectConfig.Fuzzing.CrashArtifactDirectory, err = cmd.Flags().GetString("crash-dir")
		if err != nil {
			return err
		}
	}
	return nil
}
