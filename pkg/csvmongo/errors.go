package csvmongo

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure classes of an import run.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := importer.Run(ctx, config)
//	if errors.Is(err, csvmongo.ErrMissingInput) {
//	    // the volume holding the CSV is probably not mounted
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingInput indicates the input file does not exist.
	ErrMissingInput = errors.New("input file not found")

	// ErrParse indicates the input file is not valid CSV.
	ErrParse = errors.New("malformed CSV")

	// ErrConnection indicates the document store is unreachable or refused the connection.
	ErrConnection = errors.New("connection failed")

	// ErrInsert indicates the store rejected the replace-all write.
	ErrInsert = errors.New("insert failed")
)

// usagePatterns are message prefixes cobra and pflag produce for CLI misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingInput):
		return ExitMissingInput
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrConnection):
		return ExitConnectionError
	case errors.Is(err, ErrInsert):
		return ExitInsertError
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.HasPrefix(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
