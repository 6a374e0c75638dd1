package migrate

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// fakeSource serves rows from memory.
type fakeSource struct {
	order     []types.TableName
	rows      map[types.TableName][]types.Row
	tablesErr error
	rowsErr   map[types.TableName]error
	// cursorErrAt fails the cursor of a table after that many rows.
	cursorErrAt map[types.TableName]int
}

func (s *fakeSource) Tables() ([]types.TableName, error) {
	if s.tablesErr != nil {
		return nil, s.tablesErr
	}
	return s.order, nil
}

func (s *fakeSource) Rows(table types.TableName) (types.Cursor, error) {
	if err := s.rowsErr[table]; err != nil {
		return nil, err
	}
	failAt := -1
	if n, ok := s.cursorErrAt[table]; ok {
		failAt = n
	}
	return &fakeCursor{rows: s.rows[table], pos: -1, failAt: failAt}, nil
}

func (s *fakeSource) Count(table types.TableName) (int64, error) {
	return int64(len(s.rows[table])), nil
}

type fakeCursor struct {
	rows   []types.Row
	pos    int
	failAt int
	err    error
	closed bool
}

func (c *fakeCursor) Next() bool {
	if c.pos+1 == c.failAt {
		c.err = errors.New("cursor exploded")
		return false
	}
	c.pos++
	return c.pos < len(c.rows)
}

func (c *fakeCursor) Row() types.Row { return c.rows[c.pos] }
func (c *fakeCursor) Err() error     { return c.err }
func (c *fakeCursor) Close() error   { c.closed = true; return nil }

// fakeDestination records created tables and inserted rows.
type fakeDestination struct {
	tables   map[types.TableName][]types.NormalizedRow
	created  []types.TableName
	writeErr map[types.TableName]error
}

func newFakeDestination() *fakeDestination {
	return &fakeDestination{tables: map[types.TableName][]types.NormalizedRow{}}
}

func (d *fakeDestination) CreateTable(table types.TableName) (types.Writer, error) {
	if _, ok := d.tables[table]; ok {
		return nil, fmt.Errorf("table %s already exists", table)
	}
	d.tables[table] = []types.NormalizedRow{}
	d.created = append(d.created, table)
	return &fakeWriter{dst: d, table: table}, nil
}

func (d *fakeDestination) Count(table types.TableName) (int64, error) {
	return int64(len(d.tables[table])), nil
}

func (d *fakeDestination) Lookup(table types.TableName, id string) (string, bool, error) {
	for _, r := range d.tables[table] {
		if r.ID == id {
			return r.Value, true, nil
		}
	}
	return "", false, nil
}

type fakeWriter struct {
	dst   *fakeDestination
	table types.TableName
	n     int64
}

func (w *fakeWriter) Insert(row types.NormalizedRow) error {
	if err := w.dst.writeErr[w.table]; err != nil {
		return err
	}
	w.dst.tables[w.table] = append(w.dst.tables[w.table], row)
	w.n++
	return nil
}

func (w *fakeWriter) Rows() int64  { return w.n }
func (w *fakeWriter) Close() error { return nil }

// recorder captures progress events as strings.
type recorder struct {
	events []string
}

func (r *recorder) RunStarted(runID, input, output string) {
	r.events = append(r.events, "run "+input+" "+output)
}

func (r *recorder) TablesFound(tables []types.TableName) {
	r.events = append(r.events, fmt.Sprintf("tables %v", tables))
}

func (r *recorder) TableStarted(table types.TableName) {
	r.events = append(r.events, "table "+string(table))
}

func (r *recorder) RowStarted(table types.TableName, id string) {
	r.events = append(r.events, "row "+string(table)+"/"+id)
}

func (r *recorder) TableFinished(table types.TableName, rows int64) {
	r.events = append(r.events, fmt.Sprintf("done %s %d", table, rows))
}

func (r *recorder) VerifyStarted(table types.TableName) {
	r.events = append(r.events, "verify "+string(table))
}

func (r *recorder) RunFinished(summary types.Summary) {
	r.events = append(r.events, fmt.Sprintf("finished %d", summary.TotalRows()))
}
