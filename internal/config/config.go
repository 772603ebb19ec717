package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Zendesk ZendeskConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Webhook WebhookConfig
	Display DisplayConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// ZendeskConfig holds credentials for the remote ticket source.
type ZendeskConfig struct {
	BaseDomain     string
	User           string
	APIKey         string
	TimeoutSeconds int
	RecentCount    int
}

// CacheBackend selects the cache store implementation.
type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

// CacheConfig holds cache backend selection and per-kind TTLs.
type CacheConfig struct {
	Backend     CacheBackend
	MaxEntries  int
	TicketTTL   time.Duration
	CommentTTL  time.Duration
	UserTTL     time.Duration
	StatsTTL    time.Duration
}

// RedisConfig holds Redis connection values for the redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// WebhookConfig controls webhook ingestion policy.
type WebhookConfig struct {
	InvalidateTickets bool
}

// DisplayConfig controls timestamp rendering on the dashboard.
type DisplayConfig struct {
	TZOffsetHours int
	TZLabel       string
}

// secretsDir is where Docker mounts file-based secrets.
const secretsDir = "/run/secrets"

// Load reads configuration from Docker secrets and environment variables,
// applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := CacheBackend(strings.ToLower(getEnv("CACHE_BACKEND", "memory")))
	if backend != CacheBackendMemory && backend != CacheBackendRedis {
		return nil, fmt.Errorf("invalid CACHE_BACKEND: %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "zendesk-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Zendesk: ZendeskConfig{
			BaseDomain:     normalizeBaseDomain(getSecret("SUBDOMAIN")),
			User:           getSecret("ZENDESK_USER"),
			APIKey:         getSecret("ZENDESK_API_KEY"),
			TimeoutSeconds: getEnvAsInt("ZENDESK_TIMEOUT_SECONDS", 10),
			RecentCount:    getEnvAsInt("ZENDESK_RECENT_COUNT", 10),
		},
		Cache: CacheConfig{
			Backend:    backend,
			MaxEntries: getEnvAsInt("CACHE_MAX_ENTRIES", 0),
			TicketTTL:  getEnvAsDuration("CACHE_TICKET_TTL_SECONDS", 300),
			CommentTTL: getEnvAsDuration("CACHE_COMMENT_TTL_SECONDS", 1800),
			UserTTL:    getEnvAsDuration("CACHE_USER_TTL_SECONDS", 86400),
			StatsTTL:   getEnvAsDuration("CACHE_STATS_TTL_SECONDS", 600),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Webhook: WebhookConfig{
			InvalidateTickets: getEnvAsBool("WEBHOOK_INVALIDATE_TICKETS", false),
		},
		Display: DisplayConfig{
			TZOffsetHours: getEnvAsInt("DISPLAY_TZ_OFFSET_HOURS", -4),
			TZLabel:       getEnv("DISPLAY_TZ_LABEL", "EST"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream HTTP client timeout.
func (z ZendeskConfig) Timeout() time.Duration {
	if z.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(z.TimeoutSeconds) * time.Second
}

// Configured reports whether all required Zendesk values are present.
func (z ZendeskConfig) Configured() bool {
	return z.BaseDomain != "" && z.User != "" && z.APIKey != ""
}

// Location returns the fixed display timezone.
func (d DisplayConfig) Location() *time.Location {
	return time.FixedZone(d.TZLabel, d.TZOffsetHours*3600)
}

// normalizeBaseDomain accepts either "example.zendesk.com" or a full
// "https://example.zendesk.com" and returns the bare domain.
func normalizeBaseDomain(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimSuffix(s, "/")
}

// getSecret reads a Docker file-based secret, falling back to the
// environment variable of the same name.
func getSecret(name string) string {
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err == nil {
		// Strip the BOM some Windows editors prepend to secret files.
		return strings.TrimSpace(strings.TrimPrefix(string(data), "\uFEFF"))
	}
	return os.Getenv(name)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallbackSeconds)) * time.Second
}
