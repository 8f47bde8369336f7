package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csvmongo",
	Short: "Load a CSV dataset into a MongoDB collection",
	Long: `csvmongo reads a CSV file into memory, infers a type per column, and
replaces the contents of a MongoDB collection with one document per row.

By default the new documents are written to a staging collection that is
renamed over the target in one step, so a failed run never leaves the
target half-loaded.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - MongoDB connection failed
  12 - Input file not found
  13 - Input file is not valid CSV
  14 - Writing documents failed`,
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
	rootCmd.PersistentFlags().String("config", "",
		"Path to a csvmongo.yaml file\n"+
			"(default: ./csvmongo.yaml if present)")
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
