package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	LogLevel                       logging.Level
	CORSAllowedOrigins             []string
	StorageDriver                  string
	DBURL                          string
	DBDisablePreparedBinary        bool
	RedisAddr                      string
	RedisPassword                  string
	RedisDB                        int
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	UploadMaxBytes                 int64
	ImageEditorAPIKey              string
	ImageEditorBaseURL             string
	ImageEditorModel               string
	ImageEditorTimeout             time.Duration
	ImageEditorWorkers             int
	ImageEditorJobTTL              time.Duration
	ImageEditorCircuitEnabled      bool
	ImageEditorCircuitFailureCount int
	ImageEditorCircuitOpenTimeout  time.Duration
	ImageEditorCircuitHalfOpenMax  int
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
}

// ImageEditorEnabled reports whether an API key was configured.
func (c Config) ImageEditorEnabled() bool {
	return c.ImageEditorAPIKey != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", StorageMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", "localhost:6379"))
	if storageDriver == StorageRedis && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when STORAGE_DRIVER=%s", StorageRedis)
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if redisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be >= 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	uploadMaxBytes, err := strconv.ParseInt(strings.TrimSpace(getEnv("UPLOAD_MAX_BYTES", "10485760")), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPLOAD_MAX_BYTES: %w", err)
	}
	if uploadMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPLOAD_MAX_BYTES must be > 0")
	}

	imageEditorTimeout, err := time.ParseDuration(getEnv("IMAGE_EDITOR_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_TIMEOUT: %w", err)
	}
	if imageEditorTimeout <= 0 {
		return Config{}, fmt.Errorf("IMAGE_EDITOR_TIMEOUT must be > 0")
	}
	imageEditorWorkers, err := getEnvAsInt("IMAGE_EDITOR_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_WORKERS: %w", err)
	}
	if imageEditorWorkers < 1 {
		return Config{}, fmt.Errorf("IMAGE_EDITOR_WORKERS must be >= 1")
	}
	imageEditorJobTTL, err := time.ParseDuration(getEnv("IMAGE_EDITOR_JOB_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_JOB_TTL: %w", err)
	}
	if imageEditorJobTTL <= 0 {
		return Config{}, fmt.Errorf("IMAGE_EDITOR_JOB_TTL must be > 0")
	}
	imageEditorCircuitEnabled, err := strconv.ParseBool(getEnv("IMAGE_EDITOR_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_CIRCUIT_ENABLED: %w", err)
	}
	imageEditorCircuitFailureCount, err := getEnvAsInt("IMAGE_EDITOR_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if imageEditorCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("IMAGE_EDITOR_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	imageEditorCircuitOpenTimeout, err := time.ParseDuration(getEnv("IMAGE_EDITOR_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if imageEditorCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("IMAGE_EDITOR_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	imageEditorCircuitHalfOpenMax, err := getEnvAsInt("IMAGE_EDITOR_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_EDITOR_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if imageEditorCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("IMAGE_EDITOR_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "the-gaffer-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		LogLevel:                       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StorageDriver:                  storageDriver,
		DBURL:                          dbURL,
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		RedisAddr:                      redisAddr,
		RedisPassword:                  getEnv("REDIS_PASSWORD", ""),
		RedisDB:                        redisDB,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		UploadMaxBytes:                 uploadMaxBytes,
		ImageEditorAPIKey:              strings.TrimSpace(getEnv("IMAGE_EDITOR_API_KEY", "")),
		ImageEditorBaseURL:             strings.TrimSpace(getEnv("IMAGE_EDITOR_BASE_URL", "https://generativelanguage.googleapis.com")),
		ImageEditorModel:               strings.TrimSpace(getEnv("IMAGE_EDITOR_MODEL", "gemini-2.5-flash-image")),
		ImageEditorTimeout:             imageEditorTimeout,
		ImageEditorWorkers:             imageEditorWorkers,
		ImageEditorJobTTL:              imageEditorJobTTL,
		ImageEditorCircuitEnabled:      imageEditorCircuitEnabled,
		ImageEditorCircuitFailureCount: imageEditorCircuitFailureCount,
		ImageEditorCircuitOpenTimeout:  imageEditorCircuitOpenTimeout,
		ImageEditorCircuitHalfOpenMax:  imageEditorCircuitHalfOpenMax,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		UptraceLogsEnabled:             uptraceLogsEnabled,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres, StorageRedis:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s, %s", v, StorageMemory, StoragePostgres, StorageRedis)
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
