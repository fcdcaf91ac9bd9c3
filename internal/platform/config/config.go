// Package config loads service configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Registry modes.
const (
	RegistryModeAllowlist = "allowlist"
	RegistryModeHTTP      = "http"
)

// Assessor modes.
const (
	AssessorModeGemini = "gemini"
	AssessorModeStatic = "static"
)

// DefaultAcceptanceThreshold is the score at or above which a doctor is verified.
const DefaultAcceptanceThreshold = 75

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	// TrustProxy enables X-Forwarded-For / X-Real-IP for client IP resolution.
	TrustProxy bool

	Registry     RegistryConfig
	Redis        RedisConfig
	Database     DatabaseConfig
	Audit        AuditConfig
	Assessor     AssessorConfig
	Verification VerificationConfig

	AdminAPIToken string
}

// RegistryConfig selects and tunes the license registry adapter.
type RegistryConfig struct {
	Mode      string
	URL       string
	APIKey    string
	Timeout   time.Duration
	Allowlist map[string]string
	CacheTTL  time.Duration
}

// RedisConfig holds Redis connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds the PostgreSQL DSN. An empty URL selects in-memory stores.
type DatabaseConfig struct {
	URL            string
	SkipMigrations bool
}

// AuditConfig controls where audit events are shipped.
type AuditConfig struct {
	KafkaBrokers string
	Topic        string
}

// AssessorConfig selects the document assessor and model.
type AssessorConfig struct {
	Mode   string
	APIKey string
	Model  string
}

// VerificationConfig tunes the verification flow and its acceptance gate.
type VerificationConfig struct {
	Timeout             time.Duration
	AcceptanceThreshold int
}

// RegistryCacheTTL bounds how long registry lookups are retained.
var RegistryCacheTTL = 5 * time.Minute

// DefaultRedisConfig returns pool defaults used when only REDIS_URL is set.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// LoadDotEnv loads variables from the given .env files if they exist.
// Variables already present in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          getEnv("HEALTHSPHERE_ADDR", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "local"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		TrustProxy:    os.Getenv("TRUST_PROXY") == "true",
		AdminAPIToken: os.Getenv("ADMIN_API_TOKEN"),
		Database: DatabaseConfig{
			URL:            os.Getenv("DATABASE_URL"),
			SkipMigrations: strings.EqualFold(os.Getenv("DATABASE_SKIP_MIGRATIONS"), "true"),
		},
		Audit: AuditConfig{
			KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
			Topic:        getEnv("AUDIT_TOPIC", "healthsphere.audit"),
		},
		Assessor: AssessorConfig{
			Mode:   strings.ToLower(getEnv("ASSESSOR_MODE", AssessorModeGemini)),
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
	}

	redisCfg := DefaultRedisConfig()
	redisCfg.URL = os.Getenv("REDIS_URL")
	cfg.Redis = redisCfg

	var err error
	cfg.Registry, err = registryFromEnv()
	if err != nil {
		return Server{}, err
	}

	timeout, err := durationEnv("VERIFICATION_TIMEOUT", 60*time.Second)
	if err != nil {
		return Server{}, err
	}
	threshold := DefaultAcceptanceThreshold
	if raw := os.Getenv("ACCEPTANCE_THRESHOLD"); raw != "" {
		threshold, err = strconv.Atoi(raw)
		if err != nil || threshold < 0 || threshold > 100 {
			return Server{}, fmt.Errorf("ACCEPTANCE_THRESHOLD must be an integer in [0,100], got %q", raw)
		}
	}
	cfg.Verification = VerificationConfig{Timeout: timeout, AcceptanceThreshold: threshold}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (s Server) Validate() error {
	switch s.Registry.Mode {
	case RegistryModeAllowlist:
	case RegistryModeHTTP:
		if s.Registry.URL == "" {
			return fmt.Errorf("REGISTRY_URL is required when REGISTRY_MODE=%s", RegistryModeHTTP)
		}
	default:
		return fmt.Errorf("unknown REGISTRY_MODE %q", s.Registry.Mode)
	}
	switch s.Assessor.Mode {
	case AssessorModeStatic:
	case AssessorModeGemini:
		if s.Assessor.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when ASSESSOR_MODE=%s", AssessorModeGemini)
		}
	default:
		return fmt.Errorf("unknown ASSESSOR_MODE %q", s.Assessor.Mode)
	}
	return nil
}

func registryFromEnv() (RegistryConfig, error) {
	timeout, err := durationEnv("REGISTRY_TIMEOUT", 5*time.Second)
	if err != nil {
		return RegistryConfig{}, err
	}
	ttl, err := durationEnv("REGISTRY_CACHE_TTL", RegistryCacheTTL)
	if err != nil {
		return RegistryConfig{}, err
	}
	allowlist, err := ParseAllowlist(os.Getenv("REGISTRY_ALLOWLIST"))
	if err != nil {
		return RegistryConfig{}, err
	}
	return RegistryConfig{
		Mode:      strings.ToLower(getEnv("REGISTRY_MODE", RegistryModeAllowlist)),
		URL:       strings.TrimRight(os.Getenv("REGISTRY_URL"), "/"),
		APIKey:    os.Getenv("REGISTRY_API_KEY"),
		Timeout:   timeout,
		Allowlist: allowlist,
		CacheTTL:  ttl,
	}, nil
}

// ParseAllowlist parses "LICENSE=Name,LICENSE=Name" into a map.
func ParseAllowlist(raw string) (map[string]string, error) {
	entries := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return entries, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		license, name, ok := strings.Cut(pair, "=")
		license, name = strings.TrimSpace(license), strings.TrimSpace(name)
		if !ok || license == "" || name == "" {
			return nil, fmt.Errorf("REGISTRY_ALLOWLIST entry %q must be LICENSE=Name", pair)
		}
		entries[license] = name
	}
	return entries, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
