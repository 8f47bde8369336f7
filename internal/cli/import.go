package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvmongo/internal/files/csvload"
	"github.com/vvka-141/csvmongo/internal/files/guard"
	"github.com/vvka-141/csvmongo/internal/logging"
	"github.com/vvka-141/csvmongo/internal/services"
	"github.com/vvka-141/csvmongo/internal/store"
	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace a collection with the rows of a CSV file",
	Long: `Import loads a CSV file and replaces the contents of a MongoDB collection.

The import command:
1. Checks that the input file exists
2. Parses it into memory, inferring a type per column
3. Connects to MongoDB (retrying transient failures)
4. Replaces every document in the target collection with one document per row

Each column becomes a field named after its header. Empty cells are stored
as null. A column that mixes numbers and text is stored as text throughout.

Configuration precedence: flags > environment > csvmongo.yaml > defaults.
A .env file in the working directory is loaded into the environment first.

Examples:
  # Defaults of the docker-compose setup
  csvmongo import

  # Different file and target
  csvmongo import -i ./credit.csv --uri mongodb://localhost:27017/ -d credit -c applicants

  # Semicolon-separated file, fail on repeated column names
  csvmongo import -i ./export.csv --delimiter ";" --duplicate-headers reject

  # Original delete-then-insert behaviour, no connection retries
  csvmongo import --mode direct --retries 0`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	addInputFlags(importCmd)
	addStoreFlags(importCmd)
}

// newImporter wires the production dependencies.
func newImporter(logger csvmongo.Logger) *services.ImportService {
	return services.NewImportService(
		store.NewConnectorFactory(logger),
		func(cfg csvmongo.ImportConfig) csvmongo.TableLoader {
			return csvload.NewLoader(csvload.OptionsFromConfig(cfg))
		},
		guard.NewGuard(),
		logger,
	)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveImportConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logConfigVerbose(cfg)
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	importer := newImporter(logger)

	// Setup context with timeout and signal handling for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), timeoutOrDefault(cfg.Timeout))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling import...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := importer.Run(ctx, cfg); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}
