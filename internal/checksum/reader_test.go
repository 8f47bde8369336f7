package checksum

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_KnownVector(t *testing.T) {
	// sha256("test")
	assert.Equal(t, "sha256:9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08", Calculate([]byte("test")))
}

func TestReader_MatchesCalculate(t *testing.T) {
	content := ",Age,Sex\n0,67,male\n1,22,female\n"
	cr := NewReader(strings.NewReader(content))

	got, err := io.ReadAll(cr)
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
	assert.Equal(t, Calculate([]byte(content)), cr.Sum())
	assert.Equal(t, int64(len(content)), cr.BytesRead())
}

func TestReader_SmallReads(t *testing.T) {
	content := bytes.Repeat([]byte("a,b,c\n"), 1000)
	cr := NewReader(iotest.OneByteReader(bytes.NewReader(content)))

	_, err := io.Copy(io.Discard, cr)
	require.NoError(t, err)
	assert.Equal(t, Calculate(content), cr.Sum())
}

func TestReader_PartialRead(t *testing.T) {
	cr := NewReader(strings.NewReader("abcdef"))
	buf := make([]byte, 3)
	_, err := io.ReadFull(cr, buf)
	require.NoError(t, err)

	assert.Equal(t, Calculate([]byte("abc")), cr.Sum())
}

func TestReader_ErrorPassthrough(t *testing.T) {
	cr := NewReader(iotest.ErrReader(io.ErrUnexpectedEOF))
	_, err := cr.Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, Calculate(nil), cr.Sum())
}

func BenchmarkReader(b *testing.B) {
	content := bytes.Repeat([]byte("0,67,male,2,own,,little,1169,6,radio/TV\n"), 1000)
	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cr := NewReader(bytes.NewReader(content))
		_, _ = io.Copy(io.Discard, cr)
		_ = cr.Sum()
	}
}
