package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:   "mount <snapshot_id> <path>",
	Short: "Mount a shadow copy at a local path",
	Long: `Mount exposes a shadow copy as a directory at path.

The path must not exist yet. Remove the mount with 'shadowforensic unmount'.

Examples:
  shadowforensic mount {1111-2222-3333} C:\mnt\shadow1`,
	Args:              RequireMountArgs,
	ValidArgsFunction: completeMountArgs,
	RunE:              runMount,
}

var unmountCmd = &cobra.Command{
	Use:   "unmount <path>",
	Short: "Unmount a previously mounted shadow copy",
	Long: `Unmount removes a mount created by 'shadowforensic mount'.

Nothing happens if no shadow copy is mounted at path.

Examples:
  shadowforensic unmount C:\mnt\shadow1`,
	Args:              RequireMountPath,
	ValidArgsFunction: completeDirectories,
	RunE:              runUnmount,
}

func init() {
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(unmountCmd)
}

func completeMountArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeSnapshotIDs(cmd, args, toComplete)
	}
	return completeDirectories(cmd, args, toComplete)
}

func runMount(cmd *cobra.Command, args []string) error {
	id, path := args[0], args[1]

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	env.logger.Info("Mounting %s to %s...", id, path)
	if _, err := env.recoverer().MountSnapshot(cmd.Context(), id, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully mounted to %s\n", path)
	return nil
}

func runUnmount(cmd *cobra.Command, args []string) error {
	path := args[0]

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	env.logger.Info("Unmounting %s...", path)
	unmounted, err := env.recoverer().UnmountPath(path)
	if err != nil {
		return err
	}

	if !unmounted {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing is mounted at %s\n", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Successfully unmounted.")
	return nil
}
