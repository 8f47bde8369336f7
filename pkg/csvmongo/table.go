package csvmongo

import "fmt"

// ColumnType is the type inferred for every cell of a column.
type ColumnType int

const (
	// ColumnTypeNull marks a column whose cells are all empty.
	ColumnTypeNull ColumnType = iota
	ColumnTypeInt
	ColumnTypeFloat
	ColumnTypeBool
	ColumnTypeString
)

// String returns a human-readable string representation of the ColumnType.
func (t ColumnType) String() string {
	switch t {
	case ColumnTypeNull:
		return "null"
	case ColumnTypeInt:
		return "int64"
	case ColumnTypeFloat:
		return "float64"
	case ColumnTypeBool:
		return "bool"
	case ColumnTypeString:
		return "string"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is an in-memory CSV: ordered columns and ordered rows.
// Cells are int64, float64, bool, string or nil (empty cell).
type Table struct {
	columns  []Column
	rows     [][]any
	checksum string
}

// NewTable creates a Table. Every row must have exactly len(columns) cells.
func NewTable(columns []Column, rows [][]any) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(columns), ErrParse)
		}
	}
	return &Table{columns: columns, rows: rows}, nil
}

// RowCount returns the number of data rows (the header is not a row).
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns the columns in header order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in header order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the cells of row i in column order.
// The returned slice is owned by the table and must not be modified.
func (t *Table) Row(i int) []any {
	return t.rows[i]
}

// Checksum identifies the source bytes the table was parsed from.
// Empty when the table was not loaded from a file.
func (t *Table) Checksum() string { return t.checksum }

// SetChecksum records the checksum of the source bytes.
func (t *Table) SetChecksum(sum string) { t.checksum = sum }

// Value returns the cell at row i, column j.
func (t *Table) Value(i, j int) any {
	return t.rows[i][j]
}
