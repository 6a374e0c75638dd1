package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/jsonmend/internal/paths"
	"github.com/mesh-intelligence/jsonmend/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "JSONMEND"
)

// Config keys.
const (
	cfgKeyInput          = "input"
	cfgKeyOutput         = "output"
	cfgKeyCheckIntegrity = "check_integrity"
	cfgKeyBusyTimeout    = "busy_timeout"
	cfgKeyQuiet          = "quiet"
	cfgKeyNoColor        = "no_color"
)

// configKey converts a flag name to its config key.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// loadConfig layers environment variables and config.yaml from the resolved
// config directory under the flags already bound to v. A missing config.yaml
// is not an error.
func loadConfig(v *viper.Viper, configDirFlag string) error {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault(cfgKeyBusyTimeout, types.DefaultBusyTimeout)

	dir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return fmt.Errorf("%w: resolve config dir: %w", types.ErrConfiguration, err)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: read config: %w", types.ErrConfiguration, err)
	}
	return nil
}

// configFrom builds the run configuration from v.
func configFrom(v *viper.Viper) types.Config {
	return types.Config{
		Input:          v.GetString(cfgKeyInput),
		Output:         v.GetString(cfgKeyOutput),
		CheckIntegrity: v.GetBool(cfgKeyCheckIntegrity),
		BusyTimeout:    v.GetDuration(cfgKeyBusyTimeout),
		Quiet:          v.GetBool(cfgKeyQuiet),
		NoColor:        v.GetBool(cfgKeyNoColor),
	}
}
