package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenceline/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("UI_PORT", "")
	t.Setenv("ANALYSIS_WORKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.APIPort)
	assert.Equal(t, "8081", cfg.Server.UIPort)
	assert.Equal(t, int64(4), cfg.Analysis.Workers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/fenceline")
	t.Setenv("ANALYSIS_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.APIPort)
	assert.Equal(t, "postgres://localhost/fenceline", cfg.Database.URL)
	assert.Equal(t, int64(8), cfg.Analysis.Workers)
}

func TestLoadRejectsBadWorkers(t *testing.T) {
	t.Setenv("ANALYSIS_WORKERS", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	t.Setenv("ANALYSIS_WORKERS", "0")
	_, err = Load()
	require.Error(t, err)
}
