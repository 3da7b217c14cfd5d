package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <volume>",
	Short: "Create a new volume shadow copy",
	Long: `Create takes a new shadow copy of a volume and prints its ID.

Creating shadow copies requires administrator rights on Windows.

Examples:
  shadowforensic create C:\`,
	Args: RequireVolume,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	volume := args[0]

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	env.logger.Info("Creating shadow copy for %s...", volume)
	id, err := env.backend.Snapshot.Create(cmd.Context(), volume)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully created shadow copy: %s\n", id)
	return nil
}
