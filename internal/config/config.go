package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Structure extraction
	TitleMaxLength  int
	MarginTolerance float64
	ColumnHeightCap float64

	// Comparison
	KeywordRatio float64
	Workers      int
	UserDict     string

	// Rendering
	DeleteColor string
	InsertColor string

	// PDF
	PDFPassword          string
	PDFFallbackPdftotext bool

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		TitleMaxLength:  envInt("REPORTDIFF_TITLE_MAX_LENGTH", 30),
		MarginTolerance: envFloat("REPORTDIFF_MARGIN_TOLERANCE", 5),
		ColumnHeightCap: envFloat("REPORTDIFF_COLUMN_HEIGHT_CAP", 14),

		KeywordRatio: envFloat("REPORTDIFF_KEYWORD_RATIO", 0.1),
		Workers:      envInt("REPORTDIFF_WORKERS", 4),
		UserDict:     os.Getenv("REPORTDIFF_USER_DICT"),

		DeleteColor: envOr("REPORTDIFF_DELETE_COLOR", "#FF69B4"),
		InsertColor: envOr("REPORTDIFF_INSERT_COLOR", "#32CD32"),

		PDFPassword:          os.Getenv("REPORTDIFF_PDF_PASSWORD"),
		PDFFallbackPdftotext: envBool("REPORTDIFF_PDF_FALLBACK_PDFTOTEXT", false),

		LogLevel: envLevel("REPORTDIFF_LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TitleMaxLength <= 0 {
		return fmt.Errorf("REPORTDIFF_TITLE_MAX_LENGTH must be positive, got %d", c.TitleMaxLength)
	}
	if c.MarginTolerance <= 0 {
		return fmt.Errorf("REPORTDIFF_MARGIN_TOLERANCE must be positive, got %g", c.MarginTolerance)
	}
	if c.ColumnHeightCap <= 0 {
		return fmt.Errorf("REPORTDIFF_COLUMN_HEIGHT_CAP must be positive, got %g", c.ColumnHeightCap)
	}
	if c.KeywordRatio <= 0 || c.KeywordRatio > 1 {
		return fmt.Errorf("REPORTDIFF_KEYWORD_RATIO must be in (0, 1], got %g", c.KeywordRatio)
	}
	if c.DeleteColor == "" || c.InsertColor == "" {
		return fmt.Errorf("REPORTDIFF_DELETE_COLOR and REPORTDIFF_INSERT_COLOR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envLevel accepts slog level names ("debug", "WARN") and offsets such as
// "info+2".
func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			return level
		}
	}
	return fallback
}
