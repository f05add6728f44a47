package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/origins/internal/facts"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <facts-dir>",
		Short: "Check a facts directory without solving",
		Long: `Check that a facts directory matches the expected shape: all eight
relation files present, no stray relation files, consistent arities.
Nothing is interned and no analysis runs.

Example:
  origins validate ./nll-facts/main`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := facts.ValidateDir(dir); err != nil {
				return WrapExitError(ExitFailure, "facts validation failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", dir)
			return nil
		},
	}
	return cmd
}
