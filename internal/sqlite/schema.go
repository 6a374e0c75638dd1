// Package sqlite is the embedded-engine side of a migration: it opens the
// source database read-only, creates the destination database, lists user
// tables from the catalog, streams rows, and writes normalized rows.
package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// ReservedPrefix marks tables owned by the engine itself (sqlite_sequence,
// sqlite_stat1, ...). They are never migrated.
const ReservedPrefix = "sqlite_"

// Catalog queries. The underscore in the reserved prefix is escaped so that
// LIKE matches it literally.
const (
	listTablesSQL = `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
ORDER BY rowid`

	probeCatalogSQL = `SELECT count(*) FROM sqlite_master`
)

// Destination DDL and DML. %s is a quoted identifier.
const (
	createTableSQL = `CREATE TABLE %s (ID TEXT, json TEXT)`
	insertRowSQL   = `INSERT INTO %s (ID, json) VALUES (?, ?)`
	selectRowsSQL  = `SELECT ID, json FROM %s`
	countRowsSQL   = `SELECT count(*) FROM %s`
	lookupRowSQL   = `SELECT json FROM %s WHERE ID = ? LIMIT 1`
)

// QuoteIdent returns name as a double-quoted SQL identifier, doubling any
// embedded double quotes.
func QuoteIdent(name types.TableName) string {
	return `"` + strings.ReplaceAll(string(name), `"`, `""`) + `"`
}

func tableSQL(format string, table types.TableName) string {
	return fmt.Sprintf(format, QuoteIdent(table))
}

// fileURI returns a file: URI naming path with the given query parameters.
// The path is made absolute and percent-encoded so that '?', '#' and '%' in a
// file name are not read as URI delimiters.
func fileURI(path string, query url.Values) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	u := url.URL{Scheme: "file", OmitHost: true, Path: abs, RawQuery: query.Encode()}
	return u.String(), nil
}
