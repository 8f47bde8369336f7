package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// newTestCommand builds a command with the same flags as import, parsed from args.
func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().String("config", "", "")
	addInputFlags(cmd)
	addStoreFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csvmongo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveImportConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := resolveImportConfig(newTestCommand(t), envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, csvmongo.DefaultImportConfig(), cfg)
}

func TestResolveImportConfig_Precedence(t *testing.T) {
	chdir(t, t.TempDir())

	yamlPath := writeYAML(t, `input:
  path: /yaml/input.csv
store:
  uri: mongodb://yaml:27017/
  database: yamldb
  collection: yamlcoll
  mode: direct
timeout: 1m
`)

	env := envMap(map[string]string{
		EnvURI:      "mongodb://env:27017/",
		EnvDatabase: "envdb",
	})

	cmd := newTestCommand(t, "--config", yamlPath, "--database", "flagdb", "--retries", "0")
	cfg, err := resolveImportConfig(cmd, env)
	require.NoError(t, err)

	assert.Equal(t, "/yaml/input.csv", cfg.InputPath, "yaml beats default")
	assert.Equal(t, "mongodb://env:27017/", cfg.StoreAddress, "env beats yaml")
	assert.Equal(t, "flagdb", cfg.DatabaseName, "flag beats env")
	assert.Equal(t, "yamlcoll", cfg.CollectionName)
	assert.Equal(t, csvmongo.ReplaceModeDirect, cfg.Mode)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retries)
}

func TestResolveImportConfig_MongoURIFallback(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := resolveImportConfig(newTestCommand(t), envMap(map[string]string{EnvMongoURI: "mongodb://fallback/"}))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://fallback/", cfg.StoreAddress)

	cfg, err = resolveImportConfig(newTestCommand(t), envMap(map[string]string{
		EnvMongoURI: "mongodb://fallback/",
		EnvURI:      "mongodb://primary/",
	}))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary/", cfg.StoreAddress)
}

func TestResolveImportConfig_AllFlags(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newTestCommand(t,
		"-i", "/tmp/x.csv",
		"--uri", "mongodb://flag/",
		"-d", "db",
		"-c", "coll",
		"--mode", "direct",
		"--duplicate-headers", "reject",
		"--delimiter", "tab",
		"--timeout", "30s",
		"--retries", "9",
		"-v",
	)
	cfg, err := resolveImportConfig(cmd, envMap(map[string]string{EnvInputPath: "/env.csv"}))
	require.NoError(t, err)

	assert.Equal(t, csvmongo.ImportConfig{
		InputPath:        "/tmp/x.csv",
		StoreAddress:     "mongodb://flag/",
		DatabaseName:     "db",
		CollectionName:   "coll",
		Mode:             csvmongo.ReplaceModeDirect,
		DuplicateHeaders: csvmongo.HeaderPolicyReject,
		Delimiter:        '\t',
		Timeout:          30 * time.Second,
		Retries:          9,
		Verbose:          true,
	}, cfg)
}

func TestResolveImportConfig_LocalYAMLPickedUp(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "csvmongo.yaml"), []byte("store:\n  collection: local\n"), 0644))

	cfg, err := resolveImportConfig(newTestCommand(t), envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.CollectionName)
}

func TestResolveImportConfig_ExplicitConfigMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newTestCommand(t, "--config", "/nonexistent/csvmongo.yaml")
	_, err := resolveImportConfig(cmd, envMap(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvmongo.ErrInvalidConfig))
	assert.Equal(t, csvmongo.ExitConfigError, csvmongo.ExitCodeForError(err))
}

func TestResolveImportConfig_BadDelimiter(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := resolveImportConfig(newTestCommand(t, "--delimiter", ";;"), envMap(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvmongo.ErrInvalidConfig))
}

func TestResolveImportConfig_BadYAMLTimeout(t *testing.T) {
	chdir(t, t.TempDir())

	path := writeYAML(t, "timeout: eventually\n")
	_, err := resolveImportConfig(newTestCommand(t, "--config", path), envMap(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvmongo.ErrInvalidConfig))
}

func TestTimeoutOrDefault(t *testing.T) {
	assert.Equal(t, csvmongo.DefaultTimeout, timeoutOrDefault(0))
	assert.Equal(t, time.Second, timeoutOrDefault(time.Second))
}
