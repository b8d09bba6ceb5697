package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godist/domain/stats"
	"godist/internal/errors"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "PORT", "PLOT_DIR", "PLOT_WIDTH_CM", "PLOT_HEIGHT_CM",
		"PLOT_FORMAT", "REPORT_COLOR", "BIN_SKIP_POLICY", "BOUNDARY_PRECISION",
		"BATCH_CONCURRENCY", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "png", cfg.Plot.Format)
	assert.Equal(t, 16.0, cfg.Plot.WidthCm)
	assert.True(t, cfg.Report.Color)
	assert.Equal(t, stats.SkipEmitEmpty, cfg.Analysis.SkipPolicy)
	assert.Equal(t, 3, cfg.Analysis.Precision)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/godist?sslmode=disable")
	t.Setenv("PORT", "9000")
	t.Setenv("PLOT_FORMAT", "SVG")
	t.Setenv("REPORT_COLOR", "false")
	t.Setenv("BIN_SKIP_POLICY", "merge")
	t.Setenv("BOUNDARY_PRECISION", "2")
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "svg", cfg.Plot.Format)
	assert.False(t, cfg.Report.Color)
	assert.Equal(t, stats.SkipMerge, cfg.Analysis.SkipPolicy)
	assert.Equal(t, 2, cfg.Analysis.Precision)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown plot format", "PLOT_FORMAT", "gif"},
		{"unknown skip policy", "BIN_SKIP_POLICY", "drop"},
		{"non-numeric port", "PORT", "http"},
		{"negative width", "PLOT_WIDTH_CM", "-1"},
		{"zero concurrency", "BATCH_CONCURRENCY", "0"},
		{"precision out of range", "BOUNDARY_PRECISION", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
