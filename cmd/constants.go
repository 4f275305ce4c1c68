package cmd

import "github.com/basilisk-fuzz/basilisk/fuzzing/config"

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "basilisk.json"

// DefaultCompilationPlatform describes the default compilation platform to use if one is not provided.
const DefaultCompilationPlatform = config.DefaultCompilationPlatform

// TargetFlagDescription describes the --target flag, shared by the commands which accept it.
const TargetFlagDescription = "target file to compile (the Solidity source defining the campaign contracts)"
