package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

const cleanupTimeout = 10 * time.Second

// mongoStore implements csvmongo.Store for one database/collection pair.
type mongoStore struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
}

func newMongoStore(client *mongo.Client, database, collection string) *mongoStore {
	db := client.Database(database)
	return &mongoStore{
		client:     client,
		db:         db,
		collection: db.Collection(collection),
	}
}

func (s *mongoStore) namespace() string {
	return s.db.Name() + "." + s.collection.Name()
}

// Count returns the exact number of documents in the target collection.
func (s *mongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents in %s: %w", s.namespace(), err)
	}
	return n, nil
}

// Clear runs DeleteMany with an empty filter.
func (s *mongoStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w: %w", s.namespace(), csvmongo.ErrInsert, err)
	}
	return res.DeletedCount, nil
}

// Insert bulk-inserts one document per row into the target collection.
func (s *mongoStore) Insert(ctx context.Context, table *csvmongo.Table) (int64, error) {
	return insertTable(ctx, s.collection, table)
}

// Stage creates a uniquely named staging collection next to the target and
// loads the table into it. The staging collection is dropped if the load fails.
func (s *mongoStore) Stage(ctx context.Context, table *csvmongo.Table) (csvmongo.StagedLoad, error) {
	name := s.collection.Name() + csvmongo.StagingSuffix + uuid.NewString()

	if err := s.db.CreateCollection(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to create staging collection %s.%s: %w: %w", s.db.Name(), name, csvmongo.ErrInsert, err)
	}

	staging := s.db.Collection(name)
	inserted, err := insertTable(ctx, staging, table)
	if err != nil {
		return nil, dropAfterFailure(ctx, staging.Drop, s.db.Name()+"."+name, err)
	}

	return &stagedLoad{
		store:    s,
		staging:  staging,
		inserted: inserted,
	}, nil
}

// dropAfterFailure removes a staging collection whose load failed. It runs
// even when ctx is already cancelled, bounded by cleanupTimeout. A failed
// drop is joined to cause so the leftover collection is reported.
func dropAfterFailure(ctx context.Context, drop func(context.Context) error, namespace string, cause error) error {
	dropCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := drop(dropCtx); err != nil {
		return errors.Join(cause, fmt.Errorf("staging collection %s was left behind and must be dropped manually: %w", namespace, err))
	}
	return cause
}

// Close disconnects the client.
func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func insertTable(ctx context.Context, coll *mongo.Collection, table *csvmongo.Table) (int64, error) {
	if table.RowCount() == 0 {
		return 0, nil
	}

	res, err := coll.InsertMany(ctx, toDocuments(table), options.InsertMany().SetOrdered(true))
	if err != nil {
		var inserted int64
		if res != nil {
			inserted = int64(len(res.InsertedIDs))
		}
		return inserted, fmt.Errorf("failed to insert %d documents into %s.%s (%d written): %w: %w",
			table.RowCount(), coll.Database().Name(), coll.Name(), inserted, csvmongo.ErrInsert, err)
	}
	return int64(len(res.InsertedIDs)), nil
}

// stagedLoad implements csvmongo.StagedLoad.
type stagedLoad struct {
	store     *mongoStore
	staging   *mongo.Collection
	inserted  int64
	committed bool
}

func (l *stagedLoad) Inserted() int64 {
	return l.inserted
}

// Commit renames the staging collection over the target with dropTarget.
// The rename is atomic within a database.
func (l *stagedLoad) Commit(ctx context.Context) (int64, error) {
	if l.committed {
		return 0, fmt.Errorf("staging collection %s already committed", l.staging.Name())
	}

	removed, err := l.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", csvmongo.ErrInsert, err)
	}

	dbName := l.store.db.Name()
	cmd := bson.D{
		{Key: "renameCollection", Value: dbName + "." + l.staging.Name()},
		{Key: "to", Value: l.store.namespace()},
		{Key: "dropTarget", Value: true},
	}
	if err := l.store.client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		return 0, fmt.Errorf("failed to swap %s.%s into %s: %w: %w",
			dbName, l.staging.Name(), l.store.namespace(), csvmongo.ErrInsert, err)
	}

	l.committed = true
	return removed, nil
}

// Discard drops the staging collection unless it was committed.
func (l *stagedLoad) Discard(ctx context.Context) error {
	if l.committed {
		return nil
	}
	if err := l.staging.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop staging collection %s: %w", l.staging.Name(), err)
	}
	return nil
}
