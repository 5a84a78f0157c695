package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/emr-records/pkg/datefmt"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, 8080, cfg.Server.Port)

	policy, err := cfg.Dates.Policy()
	require.NoError(t, err)
	assert.Equal(t, datefmt.PolicyLegacy, policy)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EMR_DB_URL", "jdbc:mysql://localhost:3306/emr_db")
	t.Setenv("EMR_DB_USER", "clinic")
	t.Setenv("EMR_DB_PASSWORD", "s3cret")
	t.Setenv("EMR_DOB_AMBIGUOUS", "reject")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "jdbc:mysql://localhost:3306/emr_db", cfg.Database.URL)
	assert.Equal(t, "clinic", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "reject", cfg.Dates.Ambiguous)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte("db:\n  url: postgres://localhost:5432/emr\nhttp:\n  port: 9090\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/emr", cfg.Database.URL)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EMR_DOB_AMBIGUOUS", "guess")

	_, err := LoadConfig()
	assert.Error(t, err)
}
