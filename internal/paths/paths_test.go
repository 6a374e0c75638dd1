package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points every platform lookup at a temp directory so results
// do not depend on the machine running the tests.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv(EnvConfigDir, "")

	orig := platformDir
	t.Cleanup(func() { platformDir = orig })
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(home, "appdata"), nil }
	return home
}

func TestDefaultConfigDir(t *testing.T) {
	home := isolateHome(t)

	got, err := DefaultConfigDir()
	require.NoError(t, err)

	want := filepath.Join(home, "appdata", AppName)
	if runtime.GOOS == "linux" {
		want = filepath.Join(home, ".config", AppName)
	}
	assert.Equal(t, want, got)
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	isolateHome(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "jsonmend"), got)
}

func TestDefaultConfigDir_LookupFailure(t *testing.T) {
	isolateHome(t)
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	platformDir.userConfigDir = func() (string, error) { return "", errors.New("no config dir") }

	_, err := DefaultConfigDir()
	assert.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	home := isolateHome(t)
	flagDir := filepath.Join(home, "from-flag")
	envDir := filepath.Join(home, "from-env")
	def, err := DefaultConfigDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{name: "flag over JSONMEND_CONFIG_DIR", flag: flagDir, env: envDir, want: flagDir},
		{name: "JSONMEND_CONFIG_DIR without flag", env: envDir, want: envDir},
		{name: "platform default", want: def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveConfigDir_RelativeInputs(t *testing.T) {
	isolateHome(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveConfigDir("relative/path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "relative", "path"), got)

	t.Setenv(EnvConfigDir, "relative/env")
	got, err = ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "relative", "env"), got)
}

func TestConfigFile_FromEnvDir(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("check-integrity: true\n"), 0o644))
	t.Setenv(EnvConfigDir, dir)

	resolved, err := ResolveConfigDir("")
	require.NoError(t, err)

	data, err := os.ReadFile(ConfigFile(resolved))
	require.NoError(t, err)
	assert.Equal(t, "check-integrity: true\n", string(data))
}
