// Package filesystem provides the filesystem abstraction used to locate and
// read input files.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
