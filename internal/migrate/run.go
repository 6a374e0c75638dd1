package migrate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/jsonmend/internal/report"
	"github.com/mesh-intelligence/jsonmend/internal/sqlite"
	"github.com/mesh-intelligence/jsonmend/internal/verify"
	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// Run migrates cfg.Input into a new database at cfg.Output.
//
// Preconditions are checked in order before anything is written: the paths
// must differ, the source must open as a database, and the destination must
// not exist. Both connections are released on every return path.
func Run(cfg types.Config, rep report.Reporter) (summary types.Summary, err error) {
	if rep == nil {
		rep = report.Nop{}
	}
	if err := cfg.Validate(); err != nil {
		return summary, err
	}

	src, err := sqlite.OpenSource(cfg.Input)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = types.NewError(types.ErrConnection, "", "", fmt.Errorf("close source: %w", cerr))
		}
	}()

	dst, err := sqlite.CreateDestination(cfg.Output, cfg.BusyTimeout)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = types.NewError(types.ErrConnection, "", "", fmt.Errorf("close destination: %w", cerr))
		}
	}()

	summary.RunID = newRunID()
	rep.RunStarted(summary.RunID, cfg.Input, cfg.Output)

	p := NewPipeline(src, dst, rep)
	tables, err := p.Discover()
	if err != nil {
		return summary, err
	}

	summary.Tables, err = p.Migrate(tables)
	if err != nil {
		return summary, err
	}

	if cfg.CheckIntegrity {
		if err := verify.Check(src, dst, tables, rep); err != nil {
			return summary, err
		}
		summary.Verified = true
	}

	rep.RunFinished(summary)
	return summary, nil
}

// newRunID returns a UUIDv7, falling back to v4 if the clock source fails.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// IsUserError reports whether err was caused by how the tool was invoked
// rather than by the databases involved.
func IsUserError(err error) bool {
	return errors.Is(err, types.ErrConfiguration)
}
