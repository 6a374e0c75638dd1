package types

import (
	"fmt"
	"path/filepath"
	"time"
)

// DefaultBusyTimeout is how long the destination connection waits on a
// locked database file before failing a statement.
const DefaultBusyTimeout = 60 * time.Second

// Config holds the parameters of a single migration run.
type Config struct {
	Input          string        `json:"input" yaml:"input" mapstructure:"input"`
	Output         string        `json:"output" yaml:"output" mapstructure:"output"`
	CheckIntegrity bool          `json:"check_integrity" yaml:"check_integrity" mapstructure:"check_integrity"`
	BusyTimeout    time.Duration `json:"busy_timeout" yaml:"busy_timeout" mapstructure:"busy_timeout"`
	Quiet          bool          `json:"quiet" yaml:"quiet" mapstructure:"quiet"`
	NoColor        bool          `json:"no_color" yaml:"no_color" mapstructure:"no_color"`
}

// Config validation errors. All of them wrap ErrConfiguration.
var (
	ErrInputEmpty         = fmt.Errorf("%w: missing input", ErrConfiguration)
	ErrOutputEmpty        = fmt.Errorf("%w: missing output", ErrConfiguration)
	ErrSamePath           = fmt.Errorf("%w: output cannot be the same as input", ErrConfiguration)
	ErrBusyTimeoutInvalid = fmt.Errorf("%w: busy timeout must be positive", ErrConfiguration)
	ErrOutputExists       = fmt.Errorf("%w: output file already exists", ErrConfiguration)
)

// Validate checks that the Config is well-formed. Paths are compared after
// cleaning and resolving to absolute form, so "./a.db" and "a.db" collide.
func (c Config) Validate() error {
	if c.Input == "" {
		return ErrInputEmpty
	}
	if c.Output == "" {
		return ErrOutputEmpty
	}
	if c.BusyTimeout <= 0 {
		return ErrBusyTimeoutInvalid
	}

	in, err := filepath.Abs(c.Input)
	if err != nil {
		return fmt.Errorf("%w: resolve input: %w", ErrConfiguration, err)
	}
	out, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("%w: resolve output: %w", ErrConfiguration, err)
	}
	if in == out {
		return ErrSamePath
	}
	return nil
}
