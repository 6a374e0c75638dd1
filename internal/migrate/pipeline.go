// Package migrate copies every user table of a source database into a new
// destination database, unwrapping over-encoded JSON values on the way.
//
// Tables are processed one at a time and rows one at a time, in source
// order. Each insert is its own statement: the first failure stops the run
// and leaves whatever was already written in place.
package migrate

import (
	"errors"

	"github.com/mesh-intelligence/jsonmend/internal/normalize"
	"github.com/mesh-intelligence/jsonmend/internal/report"
	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// Pipeline moves rows from a source to a destination. It owns the lifecycle
// of every destination table it creates.
type Pipeline struct {
	src    types.SourceDB
	dst    types.DestinationDB
	report report.Reporter
}

// NewPipeline returns a Pipeline over src and dst. A nil reporter discards
// progress events.
func NewPipeline(src types.SourceDB, dst types.DestinationDB, rep report.Reporter) *Pipeline {
	if rep == nil {
		rep = report.Nop{}
	}
	return &Pipeline{src: src, dst: dst, report: rep}
}

// Discover lists the tables to migrate.
func (p *Pipeline) Discover() ([]types.TableName, error) {
	tables, err := p.src.Tables()
	if err != nil {
		return nil, withContext(types.ErrDiscovery, "", "", err)
	}
	p.report.TablesFound(tables)
	return tables, nil
}

// Migrate runs MigrateTable for each table in order and stops at the first
// error.
func (p *Pipeline) Migrate(tables []types.TableName) ([]types.TableSummary, error) {
	summaries := make([]types.TableSummary, 0, len(tables))
	for _, table := range tables {
		n, err := p.MigrateTable(table)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, types.TableSummary{Name: table, Rows: n})
	}
	return summaries, nil
}

// MigrateTable creates table in the destination, then streams its source
// rows through the normalizer into it. It returns the number of rows written.
func (p *Pipeline) MigrateTable(table types.TableName) (int64, error) {
	p.report.TableStarted(table)

	w, err := p.dst.CreateTable(table)
	if err != nil {
		return 0, withContext(types.ErrSchemaCreation, table, "", err)
	}
	defer w.Close()

	cur, err := p.src.Rows(table)
	if err != nil {
		return 0, withContext(types.ErrRead, table, "", err)
	}
	defer cur.Close()

	for cur.Next() {
		row := cur.Row()
		p.report.RowStarted(table, row.ID)

		out, err := normalize.Row(row)
		if err != nil {
			return w.Rows(), withContext(types.ErrMalformedInput, table, row.ID, err)
		}
		if err := w.Insert(out); err != nil {
			return w.Rows(), withContext(types.ErrWrite, table, row.ID, err)
		}
	}
	if err := cur.Err(); err != nil {
		return w.Rows(), withContext(types.ErrRead, table, "", err)
	}

	p.report.TableFinished(table, w.Rows())
	return w.Rows(), nil
}

// withContext fills in the table and row key of a MigrationError carried by
// err, or wraps err in a new one of the given kind.
func withContext(kind error, table types.TableName, rowID string, err error) error {
	var merr *types.MigrationError
	if errors.As(err, &merr) {
		if merr.Table == "" {
			merr.Table = table
		}
		if merr.RowID == "" {
			merr.RowID = rowID
		}
		return err
	}
	return types.NewError(kind, table, rowID, err)
}
