package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing volume shadow copies",
	Long: `List prints every shadow copy known to the snapshot service.

Examples:
  shadowforensic list
  shadowforensic list --output json
  shadowforensic list --backend fake -o yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFlags struct {
	output string
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listFlags.output, "output", "o", string(output.FormatTable), "Output format: table, json or yaml")
	_ = listCmd.RegisterFlagCompletionFunc("output", completeFormats)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listFlags.output)
	if err != nil {
		return err
	}

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	records, err := env.backend.Snapshot.List(cmd.Context())
	if err != nil {
		return err
	}
	env.logger.Verbose("Snapshot service returned %d record(s)", len(records))

	return output.WriteSnapshots(cmd.OutOrStdout(), format, records)
}
