package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// Destination is the freshly created database that receives normalized rows.
type Destination struct {
	path string
	db   *sql.DB
}

// CreateDestination creates a new database file at path. It fails if the file
// already exists. busyTimeout bounds how long statements wait on a locked file.
func CreateDestination(path string, busyTimeout time.Duration) (*Destination, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrOutputExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("stat %s: %w", path, err))
	}

	dsn, err := fileURI(path, url.Values{
		"mode":    {"rwc"},
		"_pragma": {fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds())},
	})
	if err != nil {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("create %s: %w", path, err))
	}
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("create %s: %w", path, err))
	}
	db.SetMaxOpenConns(1)

	// The file is only materialized once a connection touches it.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("create %s: %w", path, err))
	}
	var n int
	if err := db.QueryRow(probeCatalogSQL).Scan(&n); err != nil {
		db.Close()
		return nil, types.NewError(types.ErrConnection, "", "", fmt.Errorf("create %s: %w", path, err))
	}

	return &Destination{path: path, db: db}, nil
}

// Path returns the file the destination was created at.
func (d *Destination) Path() string { return d.path }

// Close releases the connection. Close is idempotent.
func (d *Destination) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// CreateTable creates table with the fixed (ID TEXT, json TEXT) schema and
// returns a writer for it. The caller must Close the writer.
func (d *Destination) CreateTable(table types.TableName) (types.Writer, error) {
	if _, err := d.db.Exec(tableSQL(createTableSQL, table)); err != nil {
		return nil, types.NewError(types.ErrSchemaCreation, table, "", err)
	}

	stmt, err := d.db.Prepare(tableSQL(insertRowSQL, table))
	if err != nil {
		return nil, types.NewError(types.ErrSchemaCreation, table, "", fmt.Errorf("preparing insert: %w", err))
	}
	return &TableWriter{table: table, stmt: stmt}, nil
}

// Count returns the number of rows in table.
func (d *Destination) Count(table types.TableName) (int64, error) {
	var n int64
	if err := d.db.QueryRow(tableSQL(countRowsSQL, table)).Scan(&n); err != nil {
		return 0, types.NewError(types.ErrRead, table, "", err)
	}
	return n, nil
}

// Lookup returns the json value stored for id in table. ok is false when no
// row carries that ID or its value is NULL.
func (d *Destination) Lookup(table types.TableName, id string) (string, bool, error) {
	var v sql.NullString
	err := d.db.QueryRow(tableSQL(lookupRowSQL, table), id).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, types.NewError(types.ErrRead, table, id, err)
	}
	return v.String, v.Valid, nil
}

// TableWriter inserts rows into one destination table. Each Insert is its
// own statement; there is no enclosing transaction.
type TableWriter struct {
	table types.TableName
	stmt  *sql.Stmt
	rows  int64
}

// Insert writes one normalized row.
func (w *TableWriter) Insert(row types.NormalizedRow) error {
	if _, err := w.stmt.Exec(row.ID, row.Value); err != nil {
		return types.NewError(types.ErrWrite, w.table, row.ID, err)
	}
	w.rows++
	return nil
}

// Rows returns how many rows this writer has inserted.
func (w *TableWriter) Rows() int64 { return w.rows }

// Close releases the prepared statement.
func (w *TableWriter) Close() error { return w.stmt.Close() }

var (
	_ types.DestinationDB = (*Destination)(nil)
	_ types.Writer        = (*TableWriter)(nil)
)
