package csvmongo

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Import completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to the document store
	ExitMissingInput    = 12 // Input file not found
	ExitParseError      = 13 // Input file is not valid CSV
	ExitInsertError     = 14 // Bulk write rejected
)

// Defaults mirror the docker-compose deployment the loader was written for:
// the CSV is mounted under /data/import and MongoDB runs as service "mongo".
const (
	DefaultInputPath      = "/data/import/german_credit_data.csv"
	DefaultStoreAddress   = "mongodb://mongo:27017/"
	DefaultDatabaseName   = "german_credit_data"
	DefaultCollectionName = "records"

	// DefaultTimeout bounds the whole import run.
	DefaultTimeout = 5 * time.Minute

	// DefaultConnectTimeout bounds server selection for a single connection attempt.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultDelimiter is the CSV field separator.
	DefaultDelimiter = ','

	// StagingSuffix is inserted between the target collection name and a
	// random id to name the staging collection.
	StagingSuffix = "_staging_"

	// UnnamedColumnPrefix names header cells that are empty.
	UnnamedColumnPrefix = "Unnamed: "
)
