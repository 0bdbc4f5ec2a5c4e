package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port          string
	LogoDir       string
	LogoURLPrefix string
	CORSOrigin    string
	Storage       StorageConfig
	Metrics       MetricsConfig
	Log           LogConfig
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (or the file named by DOTENV_FILE) is applied first when present;
// variables already set in the environment win.
func Load() Config {
	loadDotenv(envOrDefault(envDotenvFile, defaultDotenvFile))

	return Config{
		Port:          envOrDefault(envPort, defaultPort),
		LogoDir:       envOrDefault(envLogoDir, defaultLogoDir),
		LogoURLPrefix: envOrDefault(envLogoURLPrefix, defaultLogoURLPrefix),
		CORSOrigin:    envOrDefault(envCORSOrigin, defaultCORSOrigin),
		Storage:       loadStorage(),
		Metrics:       loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

func loadDotenv(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}
