package config

import (
	"path/filepath"
	"strings"
)

// StorageConfig selects and parameterizes the collection backend.
type StorageConfig struct {
	Backend     string
	DataDir     string
	MatchesFile string
	TeamsFile   string
	SQLitePath  string
	RedisAddr   string
	RedisPass   string
	RedisPrefix string
	IDStrategy  string
}

func loadStorage() StorageConfig {
	dataDir := envOrDefault(envDataDir, defaultDataDir)
	return StorageConfig{
		Backend:     oneOf(strings.ToLower(envOrDefault(envBackend, defaultBackend)), defaultBackend, BackendFile, BackendMemory, BackendSQLite, BackendRedis),
		DataDir:     dataDir,
		MatchesFile: envOrDefault(envMatchesFile, filepath.Join(dataDir, defaultMatchesFile)),
		TeamsFile:   envOrDefault(envTeamsFile, filepath.Join(dataDir, defaultTeamsFile)),
		SQLitePath:  envOrDefault(envSQLitePath, filepath.Join(dataDir, defaultSQLiteFile)),
		RedisAddr:   envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisPass:   envOrDefault(envRedisPassword, ""),
		RedisPrefix: envOrDefault(envRedisPrefix, defaultRedisPrefix),
		IDStrategy:  oneOf(strings.ToLower(envOrDefault(envIDStrategy, defaultIDStrategy)), defaultIDStrategy, IDStrategyLength, IDStrategySequence),
	}
}

func oneOf(val, fallback string, allowed ...string) string {
	for _, a := range allowed {
		if val == a {
			return val
		}
	}
	return fallback
}
