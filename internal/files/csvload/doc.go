// Package csvload parses a CSV file into a csvmongo.Table.
//
// The first record is the header. Every later record must have the same
// number of fields; anything else is a parse error, as is malformed quoting.
//
// # Column types
//
// Each column gets one type, inferred from all of its non-missing cells:
//
//	all integers            -> int64
//	all numbers             -> float64 (integers widened)
//	all true/false          -> bool
//	anything else           -> string (every cell kept verbatim)
//
// Empty cells and the usual missing-value markers (NA, N/A, NaN, null, ...)
// become nil. A column with no values at all has type null.
//
// # Header
//
// An empty header cell is named "Unnamed: <index>". Repeated names are either
// renamed to name.1, name.2, ... or rejected, depending on Options.DuplicateHeaders.
package csvload
