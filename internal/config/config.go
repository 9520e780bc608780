package config

import (
	"fmt"
	"os"

	"tools/internal/logger"
)

type Config struct {
	// Google Cloud Configuration
	GoogleCloudProjectID  string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Google Sheets Configuration
	GoogleSheetsSpreadsheetID string
	GoogleSheetsSheetName     string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		GoogleCloudProjectID:      getEnv("GOOGLE_CLOUD_PROJECT_ID", ""),
		GoogleCloudLocation:       getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID:     getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		GoogleSheetsSpreadsheetID: getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		GoogleSheetsSheetName:     getEnv("GOOGLE_SHEETS_SHEET_NAME", "Sheet1"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		LogFormat:                 getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:             getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:                 getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.GoogleCloudProjectID == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID is required")
	}
	if c.DocumentAIProcessorID == "" {
		return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required")
	}
	if c.GoogleSheetsSpreadsheetID == "" {
		return fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
