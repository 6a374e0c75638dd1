package types

// SourceDB is the read side of a migration.
type SourceDB interface {
	// Tables lists user tables, excluding engine-reserved names.
	Tables() ([]TableName, error)

	// Rows opens a forward-only cursor over (ID, json) pairs of table.
	Rows(table TableName) (Cursor, error)

	// Count returns the number of rows in table.
	Count(table TableName) (int64, error)
}

// DestinationDB is the write side of a migration.
type DestinationDB interface {
	// CreateTable creates table with the fixed two-column schema. It fails
	// if the table already exists.
	CreateTable(table TableName) (Writer, error)

	// Count returns the number of rows in table.
	Count(table TableName) (int64, error)

	// Lookup returns the value stored for id. ok is false when no row has
	// that ID or the stored value is NULL.
	Lookup(table TableName, id string) (value string, ok bool, err error)
}

// Cursor walks rows of one table in source order.
type Cursor interface {
	Next() bool
	Row() Row
	Err() error
	Close() error
}

// Writer appends rows to one destination table.
type Writer interface {
	Insert(row NormalizedRow) error
	Rows() int64
	Close() error
}
