package csvmongo

import (
	"errors"
	"fmt"
	"time"
)

// ImportConfig contains all parameters needed for an import run.
type ImportConfig struct {
	// InputPath is the CSV file to load
	InputPath string

	// StoreAddress is the MongoDB connection URI (mongodb:// or mongodb+srv://)
	StoreAddress string

	// DatabaseName is the target database
	DatabaseName string

	// CollectionName is the target collection; its contents are replaced
	CollectionName string

	// Mode selects how the previous contents are replaced
	Mode ReplaceMode

	// DuplicateHeaders selects what happens when the header repeats a column name
	DuplicateHeaders HeaderPolicy

	// Delimiter is the CSV field separator (defaults to ',')
	Delimiter rune

	// Timeout is the global timeout for the entire import
	Timeout time.Duration

	// Retries is the number of connection retries on transient failures (0 = fail fast)
	Retries int

	// Verbose enables detailed logging
	Verbose bool
}

// DefaultImportConfig returns the configuration of the original docker-compose setup.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		InputPath:        DefaultInputPath,
		StoreAddress:     DefaultStoreAddress,
		DatabaseName:     DefaultDatabaseName,
		CollectionName:   DefaultCollectionName,
		Mode:             ReplaceModeStaging,
		DuplicateHeaders: HeaderPolicyRename,
		Delimiter:        DefaultDelimiter,
		Timeout:          DefaultTimeout,
		Retries:          DefaultRetryMaxAttempts,
	}
}

// Validate checks if the ImportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ImportConfig) Validate() error {
	var errs []error

	if c.InputPath == "" {
		errs = append(errs, fmt.Errorf("InputPath is required: %w", ErrInvalidConfig))
	}

	if c.StoreAddress == "" {
		errs = append(errs, fmt.Errorf("StoreAddress is required: %w", ErrInvalidConfig))
	}

	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}

	if c.CollectionName == "" {
		errs = append(errs, fmt.Errorf("CollectionName is required: %w", ErrInvalidConfig))
	}

	if !c.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("unknown replace mode %q (want staging or direct): %w", c.Mode, ErrInvalidConfig))
	}

	if !c.DuplicateHeaders.IsValid() {
		errs = append(errs, fmt.Errorf("unknown duplicate header policy %q (want rename or reject): %w", c.DuplicateHeaders, ErrInvalidConfig))
	}

	switch c.Delimiter {
	case '\r', '\n', '"':
		errs = append(errs, fmt.Errorf("delimiter %q is not allowed: %w", c.Delimiter, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ReplaceMode selects how a collection's previous contents are replaced.
type ReplaceMode string

const (
	// ReplaceModeStaging loads into a fresh collection and renames it over
	// the target, so a failed load never leaves the target half-empty.
	ReplaceModeStaging ReplaceMode = "staging"

	// ReplaceModeDirect deletes every document and then bulk-inserts the
	// new ones in place. A failed insert leaves the target partially loaded.
	ReplaceModeDirect ReplaceMode = "direct"
)

// IsValid returns true if the ReplaceMode is a defined value.
func (m ReplaceMode) IsValid() bool {
	return m == ReplaceModeStaging || m == ReplaceModeDirect
}

// HeaderPolicy decides how repeated column names in the CSV header are handled.
type HeaderPolicy string

const (
	// HeaderPolicyRename suffixes repeats with .1, .2, ... in header order.
	HeaderPolicyRename HeaderPolicy = "rename"

	// HeaderPolicyReject fails the load with ErrParse.
	HeaderPolicyReject HeaderPolicy = "reject"
)

// IsValid returns true if the HeaderPolicy is a defined value.
func (p HeaderPolicy) IsValid() bool {
	return p == HeaderPolicyRename || p == HeaderPolicyReject
}

// Stage is a step of the import state machine.
// A run moves strictly forward and halts in place on failure.
type Stage int

const (
	StageStart Stage = iota
	StageFileChecked
	StageTableLoaded
	StageConnected
	StageCleared
	StageInserted
	StageDone
)

// String returns the stage name used in logs and errors.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "START"
	case StageFileChecked:
		return "FILE_CHECKED"
	case StageTableLoaded:
		return "TABLE_LOADED"
	case StageConnected:
		return "CONNECTED"
	case StageCleared:
		return "CLEARED"
	case StageInserted:
		return "INSERTED"
	case StageDone:
		return "DONE"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageError records the last stage a run completed before failing.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("import halted after %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ImportResult summarises an import run.
type ImportResult struct {
	// Stage is the last stage completed
	Stage Stage

	Rows    int
	Columns int

	// Removed is the number of documents the target held before the run
	Removed int64

	// Inserted is the number of documents written
	Inserted int64
}
