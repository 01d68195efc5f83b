package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `                   _     _ _
  _ __  _ __ ___  (_) __| | |__
 | '_ \| '__/ _ \ | |/ _` + "`" + ` | '_ \
 | |_) | | | (_) || | (_| | |_) |
 | .__/|_|  \___/_/ |\__,_|_.__/
 |_|            |__/`

var rootCmd = &cobra.Command{
	Use:   "projdb",
	Short: "EPSG registry to proj.db fixture builder",
	Long: asciiLogo + `

projdb is a one-shot build tool: it ingests the EPSG geodetic parameter
registry from its PostgreSQL dump scripts, reshapes it into the proj.db
schema and writes one SQL fixture file per destination table.

The build is a finite batch transformation meant to run from a release
pipeline; its output files are reviewed and committed, never edited.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Required source dump file not found
  12 - Dump ingestion failed (malformed or truncated SQL)
  13 - Source data violated a registry invariant
  14 - Destination schema script not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
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
