package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/csvmongo/internal/config"
	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// Environment variables consulted between flags and csvmongo.yaml.
const (
	EnvInputPath  = "CSVMONGO_INPUT_PATH"
	EnvURI        = "CSVMONGO_URI"
	EnvMongoURI   = "MONGO_URI"
	EnvDatabase   = "CSVMONGO_DATABASE"
	EnvCollection = "CSVMONGO_COLLECTION"
	EnvMode       = "CSVMONGO_MODE"
)

// addInputFlags registers the flags shared by every command that reads the CSV.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "",
		"CSV file to load\n"+
			"Precedence: --input > $CSVMONGO_INPUT_PATH > csvmongo.yaml > "+csvmongo.DefaultInputPath)
	cmd.Flags().String("delimiter", "",
		"Field separator: a single character or \"tab\" (default \",\")")
	cmd.Flags().String("duplicate-headers", "",
		"What to do when the header repeats a column name: rename|reject (default rename)\n"+
			"rename: second occurrence becomes name.1, third name.2, ...")
}

// addStoreFlags registers the flags that select and write the target collection.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("uri", "",
		"MongoDB connection URI\n"+
			"Precedence: --uri > $CSVMONGO_URI > $MONGO_URI > csvmongo.yaml > "+csvmongo.DefaultStoreAddress)
	cmd.Flags().StringP("database", "d", "",
		"Target database (default \""+csvmongo.DefaultDatabaseName+"\", or $CSVMONGO_DATABASE)")
	cmd.Flags().StringP("collection", "c", "",
		"Target collection; its contents are replaced (default \""+csvmongo.DefaultCollectionName+"\", or $CSVMONGO_COLLECTION)")
	cmd.Flags().String("mode", "",
		"How previous documents are replaced: staging|direct (default staging)\n"+
			"staging: load into a temporary collection and rename it over the target\n"+
			"direct:  delete all documents, then insert (not atomic)")
	cmd.Flags().Duration("timeout", csvmongo.DefaultTimeout,
		"Catastrophic failure protection timeout for the whole run\n"+
			"Examples: 30s, 5m, 1h30m")
	cmd.Flags().Int("retries", csvmongo.DefaultRetryMaxAttempts,
		"Connection retries on transient failures (0 = fail fast)")
}

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if no file was requested and ./csvmongo.yaml does not exist.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", path, csvmongo.ErrInvalidConfig, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadFromDir(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, csvmongo.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// resolveImportConfig layers defaults < csvmongo.yaml < environment < flags.
// Only flags the user set explicitly override lower layers.
func resolveImportConfig(cmd *cobra.Command, getenv func(string) string) (csvmongo.ImportConfig, error) {
	cfg := csvmongo.DefaultImportConfig()

	configPath, _ := cmd.Flags().GetString("config")
	projectCfg, err := loadProjectConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if projectCfg != nil {
		if err := projectCfg.ApplyTo(&cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg, getenv)

	if err := applyFlags(cmd, &cfg); err != nil {
		return cfg, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

func applyEnv(cfg *csvmongo.ImportConfig, getenv func(string) string) {
	if v := getenv(EnvInputPath); v != "" {
		cfg.InputPath = v
	}
	if v := getenv(EnvURI); v != "" {
		cfg.StoreAddress = v
	} else if v := getenv(EnvMongoURI); v != "" {
		cfg.StoreAddress = v
	}
	if v := getenv(EnvDatabase); v != "" {
		cfg.DatabaseName = v
	}
	if v := getenv(EnvCollection); v != "" {
		cfg.CollectionName = v
	}
	if v := getenv(EnvMode); v != "" {
		cfg.Mode = csvmongo.ReplaceMode(v)
	}
}

func applyFlags(cmd *cobra.Command, cfg *csvmongo.ImportConfig) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}

	if changed("input") {
		cfg.InputPath = str("input")
	}
	if changed("uri") {
		cfg.StoreAddress = str("uri")
	}
	if changed("database") {
		cfg.DatabaseName = str("database")
	}
	if changed("collection") {
		cfg.CollectionName = str("collection")
	}
	if changed("mode") {
		cfg.Mode = csvmongo.ReplaceMode(str("mode"))
	}
	if changed("duplicate-headers") {
		cfg.DuplicateHeaders = csvmongo.HeaderPolicy(str("duplicate-headers"))
	}
	if changed("delimiter") {
		d, err := config.ParseDelimiter(str("delimiter"))
		if err != nil {
			return fmt.Errorf("invalid --delimiter: %w", err)
		}
		cfg.Delimiter = d
	}
	if changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		cfg.Timeout = v
	}
	if changed("retries") {
		v, _ := flags.GetInt("retries")
		cfg.Retries = v
	}
	return nil
}

// logConfigVerbose logs the resolved configuration when verbose mode is enabled.
func logConfigVerbose(cfg csvmongo.ImportConfig) {
	fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
	fmt.Fprintf(os.Stderr, "  Input: %s\n", cfg.InputPath)
	fmt.Fprintf(os.Stderr, "  Target: %s.%s\n", cfg.DatabaseName, cfg.CollectionName)
	fmt.Fprintf(os.Stderr, "  Mode: %s\n", cfg.Mode)
	fmt.Fprintf(os.Stderr, "  Duplicate headers: %s\n", cfg.DuplicateHeaders)
	fmt.Fprintf(os.Stderr, "  Delimiter: %q\n", cfg.Delimiter)
	fmt.Fprintf(os.Stderr, "  Timeout: %s\n", cfg.Timeout)
	fmt.Fprintf(os.Stderr, "  Retries: %d\n", cfg.Retries)
}

// timeoutOrDefault maps a zero timeout to the default.
func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return csvmongo.DefaultTimeout
	}
	return d
}
