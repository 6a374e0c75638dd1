// Package report prints migration progress.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// Reporter receives progress events from a migration. It is informational
// only; errors never travel through it.
type Reporter interface {
	RunStarted(runID, input, output string)
	TablesFound(tables []types.TableName)
	TableStarted(table types.TableName)
	RowStarted(table types.TableName, id string)
	TableFinished(table types.TableName, rows int64)
	VerifyStarted(table types.TableName)
	RunFinished(summary types.Summary)
}

// Console writes human-readable progress lines to an io.Writer.
type Console struct {
	w     io.Writer
	quiet bool

	head *color.Color
	ok   *color.Color
	dim  *color.Color
}

// NewConsole returns a Console writing to w. quiet drops per-row lines;
// noColor disables ANSI colors regardless of the terminal.
func NewConsole(w io.Writer, quiet, noColor bool) *Console {
	c := &Console{
		w:     w,
		quiet: quiet,
		head:  color.New(color.FgCyan, color.Bold),
		ok:    color.New(color.FgGreen),
		dim:   color.New(color.Faint),
	}
	if noColor {
		c.head.DisableColor()
		c.ok.DisableColor()
		c.dim.DisableColor()
	}
	return c
}

// RunStarted prints the input and output paths and the run ID.
func (c *Console) RunStarted(runID, input, output string) {
	c.head.Fprintf(c.w, "Migrating %s -> %s\n", input, output)
	c.dim.Fprintf(c.w, "run %s\n", runID)
}

// TablesFound prints the discovered table names in catalog order.
func (c *Console) TablesFound(tables []types.TableName) {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = string(t)
	}
	fmt.Fprintf(c.w, "Tables found: [%s]\n", strings.Join(names, ", "))
}

// TableStarted announces that table is about to be copied.
func (c *Console) TableStarted(table types.TableName) {
	c.head.Fprintf(c.w, "Processing %s table\n", table)
}

// RowStarted prints the key of the row being copied unless the console is quiet.
func (c *Console) RowStarted(table types.TableName, id string) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "Processing row with key %s\n", id)
}

// TableFinished prints how many rows were written to table.
func (c *Console) TableFinished(table types.TableName, rows int64) {
	c.ok.Fprintf(c.w, "Table %s: %d rows\n", table, rows)
}

// VerifyStarted announces the integrity check for table.
func (c *Console) VerifyStarted(table types.TableName) {
	fmt.Fprintf(c.w, "Checking integrity for table: %s\n", table)
}

// RunFinished prints the table and row totals.
func (c *Console) RunFinished(summary types.Summary) {
	c.ok.Fprintf(c.w, "Done! %d tables, %d rows", len(summary.Tables), summary.TotalRows())
	if summary.Verified {
		c.ok.Fprint(c.w, " (integrity verified)")
	}
	fmt.Fprintln(c.w)
}

// Nop discards every event.
type Nop struct{}

func (Nop) RunStarted(string, string, string)    {}
func (Nop) TablesFound([]types.TableName)        {}
func (Nop) TableStarted(types.TableName)         {}
func (Nop) RowStarted(types.TableName, string)   {}
func (Nop) TableFinished(types.TableName, int64) {}
func (Nop) VerifyStarted(types.TableName)        {}
func (Nop) RunFinished(types.Summary)            {}

var (
	_ Reporter = (*Console)(nil)
	_ Reporter = Nop{}
)
