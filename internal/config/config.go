package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"godist/domain/stats"
	"godist/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Plot     PlotConfig
	Report   ReportConfig
	Analysis AnalysisConfig
	Batch    BatchConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings. An empty URL disables
// report persistence.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PlotConfig holds chart output settings
type PlotConfig struct {
	Dir      string
	WidthCm  float64
	HeightCm float64
	Format   string
}

// ReportConfig holds textual report settings
type ReportConfig struct {
	Color bool
}

// AnalysisConfig holds the binner conventions
type AnalysisConfig struct {
	SkipPolicy stats.SkipPolicy
	Precision  int
}

// BatchConfig holds column batch settings
type BatchConfig struct {
	Concurrency int
}

var plotFormats = map[string]bool{"png": true, "svg": true, "pdf": true}

// Load reads an optional .env file, then configuration from environment
// variables, and validates it
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server:   ServerConfig{Port: getEnvOrDefault("PORT", "8080")},
		Report:   ReportConfig{Color: getEnvBoolOrDefault("REPORT_COLOR", true)},
		Batch:    BatchConfig{Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4)},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	plotConfig, err := loadPlotConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load plot configuration")
	}
	config.Plot = *plotConfig

	analysisConfig, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}
	config.Analysis = *analysisConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadPlotConfig() (*PlotConfig, error) {
	format := strings.ToLower(getEnvOrDefault("PLOT_FORMAT", "png"))
	if !plotFormats[format] {
		return nil, errors.ConfigInvalid(fmt.Sprintf("PLOT_FORMAT must be png, svg or pdf, got %q", format))
	}

	return &PlotConfig{
		Dir:      getEnvOrDefault("PLOT_DIR", "./plots"),
		WidthCm:  getEnvFloatOrDefault("PLOT_WIDTH_CM", 16),
		HeightCm: getEnvFloatOrDefault("PLOT_HEIGHT_CM", 16),
		Format:   format,
	}, nil
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	policy, err := stats.ParseSkipPolicy(os.Getenv("BIN_SKIP_POLICY"))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	return &AnalysisConfig{
		SkipPolicy: policy,
		Precision:  getEnvIntOrDefault("BOUNDARY_PRECISION", 3),
	}, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Plot.WidthCm <= 0 || config.Plot.HeightCm <= 0 {
		return errors.ConfigInvalid("plot dimensions must be positive")
	}
	if config.Analysis.Precision < 0 || config.Analysis.Precision > 12 {
		return errors.ConfigInvalid("BOUNDARY_PRECISION must be between 0 and 12")
	}
	if config.Batch.Concurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
