package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// maxSampleWidth truncates long sample values in the schema report.
const maxSampleWidth = 32

// ColumnSummary describes one column of a loaded table.
type ColumnSummary struct {
	Index   int
	Name    string
	Type    csvmongo.ColumnType
	Missing int
	Sample  string
}

// Summarize computes per-column missing counts and the first non-empty value.
func Summarize(t *csvmongo.Table) []ColumnSummary {
	cols := t.Columns()
	out := make([]ColumnSummary, len(cols))
	for j, c := range cols {
		out[j] = ColumnSummary{Index: j, Name: c.Name, Type: c.Type}
	}

	for i := 0; i < t.RowCount(); i++ {
		for j, v := range t.Row(i) {
			if v == nil {
				out[j].Missing++
				continue
			}
			if out[j].Sample == "" {
				out[j].Sample = formatSample(v)
			}
		}
	}
	return out
}

// RenderSchema renders the inferred schema of t as a table.
// In ModePlain the table has no borders and no styling.
func RenderSchema(path string, t *csvmongo.Table, mode Mode) string {
	summaries := Summarize(t)

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			strconv.Itoa(s.Index),
			s.Name,
			s.Type.String(),
			strconv.Itoa(s.Missing),
			s.Sample,
		}
	}

	tbl := table.New().
		Headers("#", "COLUMN", "TYPE", "MISSING", "SAMPLE").
		Rows(rows...)

	title := fmt.Sprintf("%s: %d rows, %d columns", path, t.RowCount(), t.ColumnCount())
	if sum := t.Checksum(); sum != "" {
		title += "\n" + sum
	}

	if mode == ModePlain {
		tbl = tbl.
			Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingRight(2)
			})
		return title + "\n" + tbl.Render() + "\n"
	}

	tbl = tbl.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if col == 2 {
				s := summaries[row]
				if s.Type == csvmongo.ColumnTypeString || s.Type == csvmongo.ColumnTypeNull {
					return WarnCellStyle
				}
				return TypeStyle
			}
			return CellStyle
		})

	return TitleStyle.Render(title) + "\n" + tbl.Render() + "\n"
}

func formatSample(v any) string {
	var s string
	switch x := v.(type) {
	case string:
		s = strconv.Quote(x)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	if r := []rune(s); len(r) > maxSampleWidth {
		s = string(r[:maxSampleWidth-3]) + "..."
	}
	return strings.ReplaceAll(s, "\n", " ")
}
