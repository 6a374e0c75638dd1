package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/jsonmend/internal/paths"
	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	CheckIntegrity bool   `yaml:"check_integrity"`
	BusyTimeout    string `yaml:"busy_timeout"`
	Quiet          bool   `yaml:"quiet"`
	NoColor        bool   `yaml:"no_color"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and a default config.yaml if none exists.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	flag, err := cmd.Flags().GetString(flagConfigDir)
	if err != nil {
		return err
	}
	dir, err := paths.ResolveConfigDir(flag)
	if err != nil {
		return fmt.Errorf("%w: resolve config dir: %w", types.ErrConfiguration, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.NewError(types.ErrConnection, "", "", fmt.Errorf("create config directory: %w", err))
	}

	path := paths.ConfigFile(dir)
	created, err := writeConfigIfMissing(path)
	if err != nil {
		return types.NewError(types.ErrConnection, "", "", fmt.Errorf("write config: %w", err))
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
	}
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, nothing is written.
func writeConfigIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		BusyTimeout: types.DefaultBusyTimeout.String(),
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	return true, os.WriteFile(path, data, 0o644)
}
