package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/logging"
	"github.com/vvka-141/shadowforensic/internal/output"
	"github.com/vvka-141/shadowforensic/internal/platform"
	"github.com/vvka-141/shadowforensic/internal/snapshot"
)

func filterPrefix(candidates []string, toComplete string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(toComplete)) {
			matches = append(matches, c)
		}
	}
	return matches
}

// completeSnapshotIDs provides shell completion for the snapshot ID argument.
// The backend is resolved from the command's flags so --backend fake completes
// the fake catalog.
func completeSnapshotIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	backendName, _ := cmd.Flags().GetString("backend")
	backend, err := newBackend(backendName)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	ids, err := snapshot.IDs(context.Background(), backend.Snapshot)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return filterPrefix(ids, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats provides shell completion for --output/--format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(output.Formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeBackends provides shell completion for --backend values.
func completeBackends(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(platform.Backends, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeLogFormats provides shell completion for --log-format values.
func completeLogFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{logging.FormatText, logging.FormatJSON}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}
