package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requireArgs returns a cobra.PositionalArgs that demands exactly the named
// arguments and prints an example when any is missing.
func requireArgs(example string, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return fmt.Errorf(`missing required argument: <%s>

Usage: %s

Example:
  %s %s`, names[len(args)], cmd.UseLine(), cmd.CommandPath(), example)
		}
		if len(args) > len(names) {
			return fmt.Errorf("accepts %d arg(s), received %d", len(names), len(args))
		}
		return nil
	}
}

// RequireSnapshotID validates that exactly one snapshot ID argument is provided.
var RequireSnapshotID = requireArgs("{1111-2222-3333}", "snapshot_id")

// RequireVolume validates that exactly one volume argument is provided.
var RequireVolume = requireArgs(`C:\`, "volume")

// RequireMountArgs validates the snapshot ID and mount path of `mount`.
var RequireMountArgs = requireArgs(`{1111-2222-3333} C:\mnt\shadow1`, "snapshot_id", "path")

// RequireMountPath validates that exactly one mount path argument is provided.
var RequireMountPath = requireArgs(`C:\mnt\shadow1`, "path")
