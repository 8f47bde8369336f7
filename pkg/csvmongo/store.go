package csvmongo

import "context"

// Connector opens a Store for the configured database and collection.
type Connector interface {
	Connect(ctx context.Context) (Store, error)
}

// Store is a live handle on the target collection.
// Close must be called on every exit path once Connect succeeded.
type Store interface {
	// Count returns the number of documents in the target collection.
	Count(ctx context.Context) (int64, error)

	// Clear deletes every document in the target collection and returns how many were removed.
	Clear(ctx context.Context) (int64, error)

	// Insert writes one document per table row into the target collection
	// with a single bulk call. An empty table is a no-op.
	Insert(ctx context.Context, table *Table) (int64, error)

	// Stage writes one document per table row into a fresh staging
	// collection. The target is untouched until the load is committed.
	Stage(ctx context.Context, table *Table) (StagedLoad, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// StagedLoad is a fully written staging collection awaiting the swap.
type StagedLoad interface {
	// Inserted returns the number of documents in the staging collection.
	Inserted() int64

	// Commit atomically replaces the target with the staging collection and
	// returns the number of documents the target held before.
	Commit(ctx context.Context) (int64, error)

	// Discard drops the staging collection. It is a no-op after a successful Commit.
	Discard(ctx context.Context) error
}
