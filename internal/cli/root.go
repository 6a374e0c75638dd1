// Package cli implements the jsonmend command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/jsonmend/internal/migrate"
	"github.com/mesh-intelligence/jsonmend/internal/report"
	"github.com/mesh-intelligence/jsonmend/pkg/jsonmend"
	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Flag names. Config keys use the same names with underscores.
const (
	flagInput          = "input"
	flagOutput         = "output"
	flagCheckIntegrity = "check-integrity"
	flagBusyTimeout    = "busy-timeout"
	flagQuiet          = "quiet"
	flagNoColor        = "no-color"
	flagConfigDir      = "config-dir"
)

// NewRootCmd creates the top-level "jsonmend" command. Running it migrates
// --input into a new database at --output.
func NewRootCmd() *cobra.Command {
	return newRootCmd(viper.New())
}

// newRootCmd builds the command tree with its flags bound to v.
func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonmend -i <input.db> -o <output.db>",
		Short: "Copy a SQLite database while unwrapping over-encoded JSON values",
		Long: `jsonmend copies every user table of a SQLite database into a new file.

Each table is recreated with two text columns, ID and json. Values of the json
column that were serialized more than once ("\"value\"") are decoded until the
innermost value is reached. The first malformed value aborts the run.`,
		Version:       jsonmend.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			dir, err := cmd.Flags().GetString(flagConfigDir)
			if err != nil {
				return err
			}
			return loadConfig(v, dir)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(v)
			rep := report.NewConsole(cmd.OutOrStdout(), cfg.Quiet, cfg.NoColor)
			_, err := migrate.Run(cfg, rep)
			return err
		},
	}

	root.PersistentFlags().String(flagConfigDir, "", "configuration directory (default: $XDG_CONFIG_HOME/jsonmend)")

	f := root.Flags()
	f.StringP(flagInput, "i", "", "the input sqlite file to fix")
	f.StringP(flagOutput, "o", "", "the output sqlite file; must not exist")
	f.BoolP(flagCheckIntegrity, "c", false, "verify every source row exists in the output after migrating")
	f.Duration(flagBusyTimeout, types.DefaultBusyTimeout, "how long writes wait on a locked output file")
	f.BoolP(flagQuiet, "q", false, "do not print a line per row")
	f.Bool(flagNoColor, false, "disable colored output")

	for _, name := range []string{flagInput, flagOutput, flagCheckIntegrity, flagBusyTimeout, flagQuiet, flagNoColor} {
		if err := v.BindPFlag(configKey(name), f.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args, prints any error to stderr, and returns the
// process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// exitCode maps an error to a process exit code. Configuration problems and
// usage errors from cobra, which carry no kind, are user errors; everything
// else is a system error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case migrate.IsUserError(err), types.KindOf(err) == nil:
		return exitUserError
	default:
		return exitSysError
	}
}
