package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vvka-141/csvmongo/internal/files/csvload"
	"github.com/vvka-141/csvmongo/internal/files/filesystem"
	"github.com/vvka-141/csvmongo/internal/files/guard"
	"github.com/vvka-141/csvmongo/internal/logging"
	"github.com/vvka-141/csvmongo/internal/services"
	"github.com/vvka-141/csvmongo/internal/store"
	"github.com/vvka-141/csvmongo/internal/testinfra"
	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

var (
	testContainerOnce sync.Once
	testContainerURI  string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartMongo(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerURI = container.URI
	})
	return testContainerURI, testContainerErr
}

// GetTestURI returns the MongoDB URI used by integration tests.
// Priority: CSVMONGO_TEST_URI env var > auto-started testcontainer > skip test.
func GetTestURI(t *testing.T) string {
	t.Helper()

	if uri := os.Getenv("CSVMONGO_TEST_URI"); uri != "" {
		return uri
	}

	uri, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("CSVMONGO_TEST_URI not set and Docker unavailable: %v", err)
	}
	return uri
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireStore combines SkipIfShort and GetTestURI for convenience.
func RequireStore(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestURI(t)
}

// UniqueDatabaseName returns a database name derived from the test name so
// parallel tests never share data. Names are capped at the server's 63-byte limit.
func UniqueDatabaseName(t *testing.T) string {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", ".", "_", "$", "_").Replace(t.Name())
	name = fmt.Sprintf("csvmongo_%s_%d", strings.ToLower(name), time.Now().UnixNano()%1_000_000)
	if len(name) > 63 {
		name = name[len(name)-63:]
	}
	return name
}

// GetTestClient connects a client for assertions and disconnects it when the test ends.
func GetTestClient(t *testing.T, uri string) *mongo.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("Failed to connect test client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return client
}

// DropTestDB drops dbName when the test ends.
func DropTestDB(t *testing.T, client *mongo.Client, dbName string) {
	t.Helper()

	t.Cleanup(func() {
		if err := client.Database(dbName).Drop(context.Background()); err != nil {
			t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
		}
	})
}

// NewTestImporter creates an Importer wired to the real store connector and
// a filesystem provider, typically an in-memory one.
func NewTestImporter(t *testing.T, fsProvider filesystem.FileSystemProvider) csvmongo.Importer {
	t.Helper()

	logger := logging.NewNullLogger()
	return services.NewImportService(
		store.NewConnectorFactory(logger),
		func(cfg csvmongo.ImportConfig) csvmongo.TableLoader {
			return csvload.NewLoaderWithFS(fsProvider, csvload.OptionsFromConfig(cfg))
		},
		guard.NewGuardWithFS(fsProvider),
		logger,
	)
}
