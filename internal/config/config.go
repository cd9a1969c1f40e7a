package config

import (
	"os"
	"strconv"
)

// Config is the application configuration
type Config struct {
	Server struct {
		Port        int
		Host        string
		Environment string
	}
	ModelAPI struct {
		BaseURL string
		Timeout int // in seconds
	}
	Pose struct {
		Dir             string
		OutputDir       string
		Landmarks       int
		MetaLandmarks   int
		ReferenceOffset int
		FramePadding    int
		FPS             int
	}
	Logging struct {
		Level string
	}
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() *Config {
	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Environment = getEnv("ENVIRONMENT", "development")

	// Python model service configuration
	cfg.ModelAPI.BaseURL = getEnv("MODEL_API_BASE_URL", "http://localhost:8000")
	cfg.ModelAPI.Timeout = getEnvInt("MODEL_API_TIMEOUT_SECONDS", 300) // 5 minutes default

	// Pose processing configuration
	cfg.Pose.Dir = getEnv("POSE_DIR", "./poses")
	cfg.Pose.OutputDir = getEnv("OUTPUT_DIR", "./static")
	cfg.Pose.Landmarks = getEnvInt("POSE_LANDMARKS", 543)
	cfg.Pose.MetaLandmarks = getEnvInt("POSE_META_LANDMARKS", 33)
	cfg.Pose.ReferenceOffset = getEnvInt("SCAN_REFERENCE_OFFSET", 14652)
	cfg.Pose.FramePadding = getEnvInt("TRIM_FRAME_PADDING", 5)
	cfg.Pose.FPS = getEnvInt("OUTPUT_FPS", 24)

	// Logging configuration
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int environment variable or a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
