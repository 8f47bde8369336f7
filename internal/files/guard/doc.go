// Package guard checks that the input file is present before an import
// connects to anything. A missing file usually means the data volume was
// not mounted into the container, so the error says so.
package guard
