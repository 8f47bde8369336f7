package csvmongo

import "context"

// Importer runs the import state machine end to end.
type Importer interface {
	// Run checks, loads and replaces. On failure the returned error is a
	// *StageError and the result reports how far the run got.
	Run(ctx context.Context, config ImportConfig) (ImportResult, error)

	// Inspect checks and loads the input without touching the store.
	Inspect(config ImportConfig) (*Table, error)
}

// InputGuard verifies the input file exists before anything else happens.
type InputGuard interface {
	Check(path string) error
}

// TableLoader parses an input file into a Table.
type TableLoader interface {
	Load(path string) (*Table, error)
}
