package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// ErrNullValue is reported for a row whose json column is NULL.
var ErrNullValue = errors.New("json value is NULL")

// ErrNullID is reported for a row whose ID column is NULL.
var ErrNullID = errors.New("ID is NULL")

// Source is a read-only handle on the database being migrated.
type Source struct {
	path string
	db   *sql.DB
}

// OpenSource opens the database file at path read-only and checks that its
// catalog is readable. The file must already exist.
func OpenSource(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("%s: %w", path, err))
	}
	if info.IsDir() {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("%s: is a directory", path))
	}

	dsn, err := fileURI(path, url.Values{"mode": {"ro"}})
	if err != nil {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("open %s: %w", path, err))
	}
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("open %s: %w", path, err))
	}
	db.SetMaxOpenConns(1)

	var n int
	if err := db.QueryRow(probeCatalogSQL).Scan(&n); err != nil {
		db.Close()
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("open %s: %w", path, err))
	}

	return &Source{path: path, db: db}, nil
}

// Path returns the file the source was opened from.
func (s *Source) Path() string { return s.path }

// Close releases the connection. Close is idempotent.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Tables lists user tables in catalog order. Tables whose name starts with
// ReservedPrefix are excluded.
func (s *Source) Tables() ([]types.TableName, error) {
	rows, err := s.db.Query(listTablesSQL)
	if err != nil {
		return nil, types.NewError(types.ErrDiscovery, "", "", err)
	}
	defer rows.Close()

	var tables []types.TableName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, types.NewError(types.ErrDiscovery, "", "", err)
		}
		tables = append(tables, types.TableName(name))
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewError(types.ErrDiscovery, "", "", err)
	}
	return tables, nil
}

// Count returns the number of rows in table.
func (s *Source) Count(table types.TableName) (int64, error) {
	var n int64
	if err := s.db.QueryRow(tableSQL(countRowsSQL, table)).Scan(&n); err != nil {
		return 0, types.NewError(types.ErrRead, table, "", err)
	}
	return n, nil
}

// Rows opens a forward-only cursor over the (ID, json) pairs of table. The
// caller must Close the cursor.
func (s *Source) Rows(table types.TableName) (types.Cursor, error) {
	rows, err := s.db.Query(tableSQL(selectRowsSQL, table))
	if err != nil {
		return nil, types.NewError(types.ErrRead, table, "", err)
	}
	return &RowCursor{table: table, rows: rows}, nil
}

// RowCursor walks the rows of one source table.
type RowCursor struct {
	table types.TableName
	rows  *sql.Rows
	row   types.Row
	err   error
}

// Next advances to the next row. It returns false at the end of the table or
// on the first error; Err tells the two apart.
func (c *RowCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			c.err = types.NewError(types.ErrRead, c.table, c.row.ID, err)
		}
		return false
	}

	var id, value sql.NullString
	if err := c.rows.Scan(&id, &value); err != nil {
		c.err = types.NewError(types.ErrRead, c.table, "", err)
		return false
	}
	if !id.Valid {
		c.err = types.NewError(types.ErrRead, c.table, "", ErrNullID)
		return false
	}
	if !value.Valid {
		c.err = types.NewError(types.ErrMalformedInput, c.table, id.String, ErrNullValue)
		return false
	}
	c.row = types.Row{ID: id.String, RawValue: value.String}
	return true
}

// Row returns the row loaded by the last successful Next.
func (c *RowCursor) Row() types.Row { return c.row }

// Err returns the error that stopped the cursor, if any.
func (c *RowCursor) Err() error { return c.err }

// Close releases the cursor.
func (c *RowCursor) Close() error { return c.rows.Close() }

var (
	_ types.SourceDB = (*Source)(nil)
	_ types.Cursor   = (*RowCursor)(nil)
)
