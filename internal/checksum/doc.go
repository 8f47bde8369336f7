// Package checksum fingerprints input files while they are being read.
//
// The loader wraps the file in a Reader so the SHA-256 of the exact bytes
// parsed is available once parsing finishes, without a second pass over
// the file. The digest identifies which version of a dataset produced a
// collection's contents.
//
// # Example Usage
//
//	cr := checksum.NewReader(f)
//	table, err := loader.Read(cr)
//	sum := cr.Sum() // "sha256:9f86d0..."
package checksum
