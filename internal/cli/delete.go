package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/snapshot"
	"github.com/vvka-141/shadowforensic/internal/tui"
	"github.com/vvka-141/shadowforensic/internal/ui"
	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <snapshot_id>",
	Short: "Delete a volume shadow copy",
	Long: `Delete removes a shadow copy permanently.

You are asked to type the snapshot ID to confirm. With --force a short
countdown runs instead, which can be cancelled with Ctrl+C. Without a terminal
--force is required.

Examples:
  shadowforensic delete {1111-2222-3333}
  shadowforensic delete {1111-2222-3333} --force`,
	Args:              RequireSnapshotID,
	ValidArgsFunction: completeSnapshotIDs,
	RunE:              runDelete,
}

var deleteFlags struct {
	force bool
}

// newApprover picks the confirmation strategy. Tests replace it.
var newApprover = func(force, verbose bool) (shadowforensic.Approver, error) {
	if force {
		return ui.NewForcedApprover(verbose), nil
	}
	if !tui.IsInteractive() {
		return nil, fmt.Errorf("refusing to delete without confirmation in non-interactive mode; use --force: %w",
			shadowforensic.ErrApprovalDenied)
	}
	return ui.NewInteractiveApprover(verbose), nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteFlags.force, "force", "f", false, "Skip the typed confirmation and delete after a countdown")
}

func runDelete(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	record, err := snapshot.Find(cmd.Context(), env.backend.Snapshot, args[0])
	if err != nil {
		return err
	}

	approver, err := newApprover(deleteFlags.force, env.verbose)
	if err != nil {
		return err
	}
	approved, err := approver.RequestApproval(cmd.Context(), record.ID)
	if err != nil {
		return err
	}
	if !approved {
		return fmt.Errorf("deletion of %s: %w", record.ID, shadowforensic.ErrApprovalDenied)
	}

	deleted, err := env.backend.Snapshot.Delete(cmd.Context(), record.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return shadowforensic.SnapshotServiceError("delete", record.ID, shadowforensic.ErrSnapshotNotFound)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted shadow copy: %s\n", record.ID)
	return nil
}
