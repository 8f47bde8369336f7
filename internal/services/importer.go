package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// closeTimeout bounds how long releasing the store may take once the run's
// own context is already done.
const closeTimeout = 10 * time.Second

// ConnectorFactory builds a Connector for the store named by the config.
type ConnectorFactory func(csvmongo.ImportConfig) (csvmongo.Connector, error)

// LoaderFactory builds a TableLoader honouring the config's parse options.
type LoaderFactory func(csvmongo.ImportConfig) csvmongo.TableLoader

var _ csvmongo.Importer = (*ImportService)(nil)

// ImportService implements the Importer interface.
// Thread-Safety: NOT safe for concurrent Run() calls against the same collection.
type ImportService struct {
	connectorFactory ConnectorFactory
	loaderFactory    LoaderFactory
	guard            csvmongo.InputGuard
	logger           csvmongo.Logger
}

// NewImportService creates a new ImportService with all dependencies injected.
// Panics on nil dependencies.
func NewImportService(
	connectorFactory ConnectorFactory,
	loaderFactory LoaderFactory,
	guard csvmongo.InputGuard,
	logger csvmongo.Logger,
) *ImportService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if loaderFactory == nil {
		panic("loaderFactory cannot be nil")
	}
	if guard == nil {
		panic("guard cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ImportService{
		connectorFactory: connectorFactory,
		loaderFactory:    loaderFactory,
		guard:            guard,
		logger:           logger,
	}
}

// Inspect runs the existence check and the loader only.
func (s *ImportService) Inspect(config csvmongo.ImportConfig) (*csvmongo.Table, error) {
	if err := s.guard.Check(config.InputPath); err != nil {
		return nil, err
	}
	return s.loaderFactory(config).Load(config.InputPath)
}

// Run executes one import. The store is closed on every path once connected.
func (s *ImportService) Run(ctx context.Context, config csvmongo.ImportConfig) (result csvmongo.ImportResult, err error) {
	if err := config.Validate(); err != nil {
		return result, fmt.Errorf("invalid import configuration: %w", err)
	}

	s.logger.Verbose("Checking input file %s", config.InputPath)
	if err := s.guard.Check(config.InputPath); err != nil {
		return result, s.halt(result, err)
	}
	s.advance(&result, csvmongo.StageFileChecked)

	table, err := s.loaderFactory(config).Load(config.InputPath)
	if err != nil {
		return result, s.halt(result, err)
	}
	result.Rows = table.RowCount()
	result.Columns = table.ColumnCount()
	s.advance(&result, csvmongo.StageTableLoaded)
	if sum := table.Checksum(); sum != "" {
		s.logger.Verbose("Input checksum %s", sum)
	}
	s.logger.Info("✓ Dataset loaded from %s: %d rows, %d columns", config.InputPath, result.Rows, result.Columns)

	connector, err := s.connectorFactory(config)
	if err != nil {
		return result, s.halt(result, fmt.Errorf("failed to create connector: %w", err))
	}

	s.logger.Verbose("Connecting to %s.%s", config.DatabaseName, config.CollectionName)
	store, err := connector.Connect(ctx)
	if err != nil {
		return result, s.halt(result, err)
	}
	defer s.closeStore(store)
	s.advance(&result, csvmongo.StageConnected)

	namespace := config.DatabaseName + "." + config.CollectionName
	switch config.Mode {
	case csvmongo.ReplaceModeDirect:
		err = s.replaceDirect(ctx, store, table, namespace, &result)
	default:
		err = s.replaceStaged(ctx, store, table, namespace, &result)
	}
	if err != nil {
		return result, s.halt(result, err)
	}

	s.advance(&result, csvmongo.StageDone)
	return result, nil
}

// replaceDirect deletes everything and then bulk-inserts in place.
func (s *ImportService) replaceDirect(ctx context.Context, store csvmongo.Store, table *csvmongo.Table, namespace string, result *csvmongo.ImportResult) error {
	removed, err := store.Clear(ctx)
	if err != nil {
		return err
	}
	result.Removed = removed
	s.advance(result, csvmongo.StageCleared)
	s.logger.Info("✓ Removed %d previous documents from %s", removed, namespace)

	inserted, err := store.Insert(ctx, table)
	result.Inserted = inserted
	if err != nil {
		return err
	}
	s.advance(result, csvmongo.StageInserted)
	s.logger.Info("✓ Inserted %d records into %s", inserted, namespace)
	return nil
}

// replaceStaged loads a staging collection and swaps it over the target.
// The target is untouched unless the swap succeeds.
func (s *ImportService) replaceStaged(ctx context.Context, store csvmongo.Store, table *csvmongo.Table, namespace string, result *csvmongo.ImportResult) error {
	load, err := store.Stage(ctx, table)
	if err != nil {
		return err
	}
	defer func() {
		discardCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if err := load.Discard(discardCtx); err != nil {
			s.logger.Error("%v", err)
		}
	}()
	s.logger.Verbose("Staged %d documents", load.Inserted())

	removed, err := load.Commit(ctx)
	if err != nil {
		return err
	}
	result.Removed = removed
	result.Inserted = load.Inserted()
	s.advance(result, csvmongo.StageCleared)
	s.logger.Info("✓ Removed %d previous documents from %s", removed, namespace)
	s.advance(result, csvmongo.StageInserted)
	s.logger.Info("✓ Inserted %d records into %s", result.Inserted, namespace)
	return nil
}

func (s *ImportService) advance(result *csvmongo.ImportResult, stage csvmongo.Stage) {
	result.Stage = stage
	s.logger.Verbose("Stage %s reached", stage)
}

func (s *ImportService) halt(result csvmongo.ImportResult, err error) error {
	return &csvmongo.StageError{Stage: result.Stage, Err: err}
}

func (s *ImportService) closeStore(store csvmongo.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		s.logger.Verbose("Failed to close store connection: %v", err)
	}
}
