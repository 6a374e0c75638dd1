// Package verify checks that a finished migration kept every source row.
package verify

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/jsonmend/internal/report"
	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// Errors reported through types.ErrIntegrity.
var (
	ErrRowMissing    = errors.New("row is missing or null in the destination table")
	ErrCountMismatch = errors.New("row count mismatch")
)

// Check walks every source row of each table and requires the destination to
// hold a non-NULL value under the same ID, then compares row counts. It stops
// at the first violation.
func Check(src types.SourceDB, dst types.DestinationDB, tables []types.TableName, rep report.Reporter) error {
	for _, table := range tables {
		rep.VerifyStarted(table)
		if err := checkTable(src, dst, table); err != nil {
			return err
		}
	}
	return nil
}

func checkTable(src types.SourceDB, dst types.DestinationDB, table types.TableName) error {
	want, err := src.Count(table)
	if err != nil {
		return err
	}
	got, err := dst.Count(table)
	if err != nil {
		return err
	}
	if want != got {
		return types.NewError(types.ErrIntegrity, table, "",
			fmt.Errorf("%w: source has %d, destination has %d", ErrCountMismatch, want, got))
	}

	cur, err := src.Rows(table)
	if err != nil {
		return err
	}
	defer cur.Close()

	for cur.Next() {
		id := cur.Row().ID
		_, ok, err := dst.Lookup(table, id)
		if err != nil {
			return err
		}
		if !ok {
			return types.NewError(types.ErrIntegrity, table, id, ErrRowMissing)
		}
	}
	return cur.Err()
}
