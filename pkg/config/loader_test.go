package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otpkit/otpkit/pkg/config"
)

type testConfig struct {
	UsersFile string `env:"TESTCFG_USERS_FILE" yaml:"users_file"`
	MaxOffset int    `env:"TESTCFG_MAX_OFFSET" envDefault:"4" yaml:"max_offset"`
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TESTCFG_USERS_FILE", "/etc/otp/users")
	t.Setenv("TESTCFG_MAX_OFFSET", "7")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/etc/otp/users", cfg.UsersFile)
	assert.Equal(t, 7, cfg.MaxOffset)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("TESTCFG_USERS_FILE", "/etc/otp/users")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 4, cfg.MaxOffset)
}

func TestLoadRejectsNil(t *testing.T) {
	t.Parallel()
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users_file: /var/otp/users\nmax_offset: 9\n"), 0o600))

	var cfg testConfig
	require.NoError(t, config.LoadFile(path, &cfg))
	assert.Equal(t, "/var/otp/users", cfg.UsersFile)
	assert.Equal(t, 9, cfg.MaxOffset)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
		assert.ErrorIs(t, err, config.ErrReadingFile)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("users_file: [\n"), 0o600))
		var cfg testConfig
		err := config.LoadFile(path, &cfg)
		assert.ErrorIs(t, err, config.ErrParsingFile)
	})
}
