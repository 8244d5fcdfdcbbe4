package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 30, cfg.TitleMaxLength)
	assert.Equal(t, 5.0, cfg.MarginTolerance)
	assert.Equal(t, 14.0, cfg.ColumnHeightCap)
	assert.Equal(t, 0.1, cfg.KeywordRatio)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "#FF69B4", cfg.DeleteColor)
	assert.Equal(t, "#32CD32", cfg.InsertColor)
	assert.False(t, cfg.PDFFallbackPdftotext)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REPORTDIFF_TITLE_MAX_LENGTH", "40")
	t.Setenv("REPORTDIFF_MARGIN_TOLERANCE", "3.5")
	t.Setenv("REPORTDIFF_KEYWORD_RATIO", "0.25")
	t.Setenv("REPORTDIFF_WORKERS", "-2")
	t.Setenv("REPORTDIFF_USER_DICT", "/etc/reportdiff/terms.txt")
	t.Setenv("REPORTDIFF_PDF_FALLBACK_PDFTOTEXT", "true")
	t.Setenv("REPORTDIFF_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, 40, cfg.TitleMaxLength)
	assert.Equal(t, 3.5, cfg.MarginTolerance)
	assert.Equal(t, 0.25, cfg.KeywordRatio)
	assert.Equal(t, 4, cfg.Workers, "non-positive worker counts fall back")
	assert.Equal(t, "/etc/reportdiff/terms.txt", cfg.UserDict)
	assert.True(t, cfg.PDFFallbackPdftotext)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("REPORTDIFF_COLUMN_HEIGHT_CAP", "tall")
	t.Setenv("REPORTDIFF_LOG_LEVEL", "chatty")

	cfg := Load()

	assert.Equal(t, 14.0, cfg.ColumnHeightCap)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"title length", func(c *Config) { c.TitleMaxLength = 0 }},
		{"margin tolerance", func(c *Config) { c.MarginTolerance = -1 }},
		{"height cap", func(c *Config) { c.ColumnHeightCap = 0 }},
		{"keyword ratio", func(c *Config) { c.KeywordRatio = 1.5 }},
		{"colour", func(c *Config) { c.InsertColor = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
