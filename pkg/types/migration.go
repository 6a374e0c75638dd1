package types

// TableName identifies a user table. Names carrying the engine's reserved
// prefix never appear as a TableName.
type TableName string

// Row is one source record: the textual key and the raw JSON text stored
// next to it.
type Row struct {
	ID       string
	RawValue string
}

// NormalizedRow is a Row whose value has been unwrapped to its innermost
// representation.
type NormalizedRow struct {
	ID    string
	Value string
}

// Destination schema column names. They are fixed for every migrated table.
const (
	ColumnID   = "ID"
	ColumnJSON = "json"
)

// TableSummary records how many rows one table produced.
type TableSummary struct {
	Name TableName `json:"name"`
	Rows int64     `json:"rows"`
}

// Summary describes a completed run.
type Summary struct {
	RunID    string         `json:"run_id"`
	Tables   []TableSummary `json:"tables"`
	Verified bool           `json:"verified"`
}

// TotalRows returns the number of rows written across all tables.
func (s Summary) TotalRows() int64 {
	var n int64
	for _, t := range s.Tables {
		n += t.Rows
	}
	return n
}
