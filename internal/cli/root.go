package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/shadowforensic/internal/logging"
	"github.com/vvka-141/shadowforensic/internal/platform"
)

const banner = `
  _____ _               _               ______                       _
 / ____| |             | |             |  ____|                     (_)
| (___ | |__   __ _  __| | _____      _| |__ ___  _ __ ___ _ __  ___ _  ___
 \___ \| '_ \ / _' |/ _' |/ _ \ \ /\ / /  __/ _ \| '__/ _ \ '_ \/ __| |/ __|
 ____) | | | | (_| | (_| | (_) \ V  V /| | | (_) | | |  __/ | | \__ \ | (__
|_____/|_| |_|\__,_|\__,_|\___/ \_/\_/ |_|  \___/|_|  \___|_| |_|___/_|\___|`

var rootCmd = &cobra.Command{
	Use:   "shadowforensic",
	Short: "Recover files from volume shadow copies",
	Long: banner + `

shadowforensic lists, creates and deletes volume shadow copies, mounts them as
ordinary directories and recovers files from them into an output directory.

Every recovery mounts the snapshot read-only under a private temporary
directory, copies the matching files in parallel and always unmounts again.
Files that cannot be copied are reported individually; one bad file never
stops the run.

Configuration is read from shadowforensic.yaml (or --config), a .env file and
SHADOWFORENSIC_* environment variables. Command-line flags win.

Exit Codes:
  0 - Success
  1 - Snapshot service, mount or recovery error
  2 - CLI usage error (invalid arguments or flags)
  3 - Panic or unexpected system error`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for shadowforensic")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default ./shadowforensic.yaml if present)")
	rootCmd.PersistentFlags().String("backend", platform.BackendAuto, "Snapshot backend: auto, native or fake")
	rootCmd.PersistentFlags().String("log-format", logging.FormatText, "Log format: text or json")

	_ = rootCmd.RegisterFlagCompletionFunc("backend", completeBackends)
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", completeLogFormats)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
