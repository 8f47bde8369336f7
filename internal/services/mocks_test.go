package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// memoryCollection stands in for a MongoDB collection. It only tracks the
// number of documents, which is all the import semantics depend on.
type memoryCollection struct {
	mu      sync.Mutex
	docs    int64
	staging int
}

type mockConnector struct {
	coll     *memoryCollection
	err      error
	connects int
	store    *mockStore
}

func (m *mockConnector) Connect(_ context.Context) (csvmongo.Store, error) {
	m.connects++
	if m.err != nil {
		return nil, m.err
	}
	if m.store == nil {
		m.store = &mockStore{coll: m.coll}
	}
	return m.store, nil
}

type mockStore struct {
	coll *memoryCollection

	clearErr  error
	insertErr error
	stageErr  error
	commitErr error
	closeErr  error

	// partialInsert is how many documents land before insertErr is returned.
	partialInsert int64

	calls  []string
	closed int
	loads  []*mockStagedLoad
}

func (m *mockStore) Count(_ context.Context) (int64, error) {
	m.coll.mu.Lock()
	defer m.coll.mu.Unlock()
	return m.coll.docs, nil
}

func (m *mockStore) Clear(_ context.Context) (int64, error) {
	m.calls = append(m.calls, "clear")
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	m.coll.mu.Lock()
	defer m.coll.mu.Unlock()
	removed := m.coll.docs
	m.coll.docs = 0
	return removed, nil
}

func (m *mockStore) Insert(_ context.Context, table *csvmongo.Table) (int64, error) {
	m.calls = append(m.calls, "insert")
	m.coll.mu.Lock()
	defer m.coll.mu.Unlock()
	if m.insertErr != nil {
		m.coll.docs += m.partialInsert
		return m.partialInsert, m.insertErr
	}
	m.coll.docs += int64(table.RowCount())
	return int64(table.RowCount()), nil
}

func (m *mockStore) Stage(_ context.Context, table *csvmongo.Table) (csvmongo.StagedLoad, error) {
	m.calls = append(m.calls, "stage")
	if m.stageErr != nil {
		return nil, m.stageErr
	}
	m.coll.mu.Lock()
	m.coll.staging++
	m.coll.mu.Unlock()

	load := &mockStagedLoad{store: m, inserted: int64(table.RowCount())}
	m.loads = append(m.loads, load)
	return load, nil
}

func (m *mockStore) Close(_ context.Context) error {
	m.closed++
	return m.closeErr
}

type mockStagedLoad struct {
	store     *mockStore
	inserted  int64
	committed bool
	discarded bool
}

func (l *mockStagedLoad) Inserted() int64 { return l.inserted }

func (l *mockStagedLoad) Commit(_ context.Context) (int64, error) {
	l.store.calls = append(l.store.calls, "commit")
	if l.store.commitErr != nil {
		return 0, l.store.commitErr
	}
	coll := l.store.coll
	coll.mu.Lock()
	defer coll.mu.Unlock()
	removed := coll.docs
	coll.docs = l.inserted
	coll.staging--
	l.committed = true
	return removed, nil
}

func (l *mockStagedLoad) Discard(_ context.Context) error {
	if l.committed {
		return nil
	}
	l.store.calls = append(l.store.calls, "discard")
	coll := l.store.coll
	coll.mu.Lock()
	defer coll.mu.Unlock()
	coll.staging--
	l.discarded = true
	return nil
}

type mockGuard struct {
	err    error
	checks int
}

func (m *mockGuard) Check(_ string) error {
	m.checks++
	return m.err
}

type mockLoader struct {
	table *csvmongo.Table
	err   error
	loads int
}

func (m *mockLoader) Load(_ string) (*csvmongo.Table, error) {
	m.loads++
	return m.table, m.err
}

// recordingLogger captures Info lines, the status output of a run.
type recordingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *recordingLogger) Verbose(_ string, _ ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(_ string, _ ...interface{}) {}
