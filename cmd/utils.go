package cmd

import (
	"github.com/basilisk-fuzz/basilisk/fuzzing/config"
	"github.com/spf13/cobra"
)

// updateCompilationTarget will update the compilation target in the projectConfig if the --target flag is used in the
// command
func updateCompilationTarget(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// If --target was used
	if cmd.Flags().Changed("target") {
		// Get the new target
		newTarget, err := cmd.Flags().GetString("target")
		if err != nil {
			return err
		}

		// Update the target on the underlying platform config
		err = projectConfig.Compilation.SetTarget(newTarget)
		if err != nil {
			return err
		}
	}
	return nil
}
