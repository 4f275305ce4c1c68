package cmd

import (
	"github.com/basilisk-fuzz/basilisk/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object which all other commands are attached to.
var rootCmd = &cobra.Command{
	Use:   "basilisk",
	Short: "A Solidity smart contract invariant fuzzing harness",
	Long:  "basilisk is a Solidity smart contract fuzzing harness that hammers a target contract with random calls until an invariant breaks",
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true)

// Execute provides an exportable function to invoke the CLI.
// Returns an error if one was encountered.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}
