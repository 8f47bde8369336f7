package report

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

func schemaTable(t *testing.T) *csvmongo.Table {
	t.Helper()
	table, err := csvmongo.NewTable(
		[]csvmongo.Column{
			{Name: "Age", Type: csvmongo.ColumnTypeInt},
			{Name: "Saving accounts", Type: csvmongo.ColumnTypeString},
			{Name: "Rate", Type: csvmongo.ColumnTypeFloat},
			{Name: "Empty", Type: csvmongo.ColumnTypeNull},
		},
		[][]any{
			{int64(67), nil, 0.25, nil},
			{int64(22), "little", nil, nil},
			{nil, "moderate", 1.5, nil},
		},
	)
	require.NoError(t, err)
	return table
}

func TestSummarize(t *testing.T) {
	got := Summarize(schemaTable(t))
	require.Len(t, got, 4)

	assert.Equal(t, ColumnSummary{Index: 0, Name: "Age", Type: csvmongo.ColumnTypeInt, Missing: 1, Sample: "67"}, got[0])
	assert.Equal(t, ColumnSummary{Index: 1, Name: "Saving accounts", Type: csvmongo.ColumnTypeString, Missing: 1, Sample: `"little"`}, got[1])
	assert.Equal(t, "0.25", got[2].Sample)
	assert.Equal(t, 3, got[3].Missing)
	assert.Empty(t, got[3].Sample)
}

func TestRenderSchema_Plain(t *testing.T) {
	out := RenderSchema("/data/import/x.csv", schemaTable(t), ModePlain)

	assert.True(t, strings.HasPrefix(out, "/data/import/x.csv: 3 rows, 4 columns\n"))
	for _, want := range []string{"COLUMN", "TYPE", "Saving accounts", "int64", "float64", "string", "null"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "╭")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderSchema_Styled(t *testing.T) {
	out := RenderSchema("x.csv", schemaTable(t), ModeStyled)

	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "Saving accounts")
	assert.Contains(t, out, "x.csv: 3 rows, 4 columns")
}

func TestRenderSchema_EmptyTable(t *testing.T) {
	table, err := csvmongo.NewTable([]csvmongo.Column{{Name: "a"}}, nil)
	require.NoError(t, err)

	out := RenderSchema("empty.csv", table, ModePlain)
	assert.Contains(t, out, "0 rows, 1 columns")
	assert.Contains(t, out, "null")
}

func TestFormatSample_Truncates(t *testing.T) {
	s := formatSample(strings.Repeat("ü", 100))
	assert.Equal(t, maxSampleWidth, len([]rune(s)))
	assert.True(t, strings.HasSuffix(s, "..."))
}

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"plain override", map[string]string{"CSVMONGO_PLAIN": "1"}},
		{"ci", map[string]string{"CI": "true"}},
		{"no color", map[string]string{"NO_COLOR": "1"}},
		{"no terminal", map[string]string{}},
	}

	writers := []struct {
		name string
		w    io.Writer
	}{
		{"nil", nil},
		{"nil file", (*os.File)(nil)},
		{"buffer", &bytes.Buffer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"CSVMONGO_PLAIN", "CI", "NO_COLOR"} {
				t.Setenv(k, tt.env[k])
			}
			for _, w := range writers {
				assert.Equal(t, ModePlain, DetectMode(w.w), w.name)
			}
		})
	}
}
