package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Prefix names the algorithm in rendered checksums.
const Prefix = "sha256:"

// Reader hashes everything read through it.
// Not safe for concurrent use.
type Reader struct {
	r     io.Reader
	h     hash.Hash
	bytes int64
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: sha256.New()}
}

func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.h.Write(p[:n])
		c.bytes += int64(n)
	}
	return n, err
}

// Sum returns the checksum of the bytes read so far.
func (c *Reader) Sum() string {
	return Prefix + hex.EncodeToString(c.h.Sum(nil))
}

// BytesRead returns how many bytes passed through the reader.
func (c *Reader) BytesRead() int64 {
	return c.bytes
}

// Calculate returns the checksum of content.
func Calculate(content []byte) string {
	sum := sha256.Sum256(content)
	return Prefix + hex.EncodeToString(sum[:])
}
