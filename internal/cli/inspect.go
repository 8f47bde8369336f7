package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvmongo/internal/logging"
	"github.com/vvka-141/csvmongo/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the schema csvmongo would infer, without connecting",
	Long: `Inspect runs the existence check and the CSV loader only, then prints
one line per column with its inferred type, the number of missing cells and
a sample value. Nothing is written to MongoDB.

Examples:
  csvmongo inspect
  csvmongo inspect -i ./credit.csv --delimiter tab`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addInputFlags(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := resolveImportConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	importer := newImporter(logging.NewNullLogger())
	table, err := importer.Inspect(cfg)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, report.RenderSchema(cfg.InputPath, table, report.DetectMode(out)))
	return nil
}
