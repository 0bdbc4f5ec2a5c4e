package config

const (
	envPort          = "PORT"
	envDataDir       = "DATA_DIR"
	envMatchesFile   = "MATCHES_FILE"
	envTeamsFile     = "TEAMS_FILE"
	envLogoDir       = "LOGO_DIR"
	envLogoURLPrefix = "LOGO_URL_PREFIX"
	envCORSOrigin    = "CORS_ALLOWED_ORIGIN"
	envBackend       = "STORAGE_BACKEND"
	envSQLitePath    = "SQLITE_PATH"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisPrefix   = "REDIS_PREFIX"
	envIDStrategy    = "ID_STRATEGY"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envDotenvFile    = "DOTENV_FILE"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"

	defaultPort          = "5000"
	defaultDataDir       = "data"
	defaultMatchesFile   = "data.json"
	defaultTeamsFile     = "teams.json"
	defaultLogoDir       = "public/logos"
	defaultLogoURLPrefix = "/logos/"
	defaultCORSOrigin    = "*"
	defaultBackend       = BackendFile
	defaultSQLiteFile    = "matchboard.db"
	defaultRedisAddr     = "localhost:6379"
	defaultRedisPrefix   = "matchboard:"
	defaultIDStrategy    = IDStrategyLength
	defaultMetricsPort   = "9090"
	defaultServiceName   = "matchboard"
	defaultDotenvFile    = ".env"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)

// Storage backends understood by the store package.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ID strategies for newly created records.
const (
	IDStrategyLength   = "length"
	IDStrategySequence = "sequence"
)
