package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"skill-match/internal/domain/skill"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Engine   EngineConfig
	Fetcher  FetcherConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	Debug       bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type EngineConfig struct {
	CanonicalThreshold   float64
	FuzzyThreshold       float64
	VariantTTL           time.Duration
	RefreshBackoff       time.Duration
	MaxDerivedKeywords   int
	DiscoveryCorpusLimit int
	DiscoveryMaxPhrases  int
	RankingConcurrency   int
}

// FetcherConfig tunes the job posting page fetcher.
type FetcherConfig struct {
	Headless         bool
	HeadlessMinChars int
	Timeout          time.Duration
	AllowPrivate     bool
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "skill-match")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("DEBUG", false)

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 5)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 0)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME_SECONDS", 3600)
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_SECONDS", 300)
	v.SetDefault("DB_POOL_HEALTH_CHECK_SECONDS", 30)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 600)

	v.SetDefault("JWT_ISSUER", "skill-match")
	v.SetDefault("JWT_TTL_SECONDS", 3600)

	v.SetDefault("CANONICAL_THRESHOLD", skill.DefaultCanonicalThreshold)
	v.SetDefault("FUZZY_THRESHOLD", 0.9)
	v.SetDefault("VARIANT_TTL_SECONDS", 300)
	v.SetDefault("VARIANT_REFRESH_BACKOFF_SECONDS", 10)
	v.SetDefault("MAX_DERIVED_KEYWORDS", 40)
	v.SetDefault("DISCOVERY_CORPUS_LIMIT", 500)
	v.SetDefault("DISCOVERY_MAX_PHRASES", 200)
	v.SetDefault("RANKING_CONCURRENCY", 8)

	v.SetDefault("FETCH_HEADLESS", false)
	v.SetDefault("FETCH_HEADLESS_MIN_CHARS", 200)
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 20)
	v.SetDefault("FETCH_ALLOW_PRIVATE", false)
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	return FromViper(viper.New())
}

// FromViper reads configuration through v, so callers can bind flags to the
// same keys first.
func FromViper(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	seconds := func(key string) time.Duration {
		return time.Duration(v.GetInt(key)) * time.Second
	}

	cfg := Config{}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogJSON:     v.GetBool("LOG_JSON"),
		Debug:       v.GetBool("DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        seconds("DB_CONNECT_TIMEOUT_SECONDS"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   seconds("DB_POOL_MAX_CONN_LIFETIME_SECONDS"),
		PoolMaxConnIdleTime:   seconds("DB_POOL_MAX_CONN_IDLE_SECONDS"),
		PoolHealthCheckPeriod: seconds("DB_POOL_HEALTH_CHECK_SECONDS"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      seconds("REDIS_TTL"),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: opt("JWT_SECRET"),
		Issuer:    opt("JWT_ISSUER"),
		TokenTTL:  seconds("JWT_TTL_SECONDS"),
	}

	cfg.Engine = EngineConfig{
		CanonicalThreshold:   v.GetFloat64("CANONICAL_THRESHOLD"),
		FuzzyThreshold:       v.GetFloat64("FUZZY_THRESHOLD"),
		VariantTTL:           seconds("VARIANT_TTL_SECONDS"),
		RefreshBackoff:       seconds("VARIANT_REFRESH_BACKOFF_SECONDS"),
		MaxDerivedKeywords:   v.GetInt("MAX_DERIVED_KEYWORDS"),
		DiscoveryCorpusLimit: v.GetInt("DISCOVERY_CORPUS_LIMIT"),
		DiscoveryMaxPhrases:  v.GetInt("DISCOVERY_MAX_PHRASES"),
		RankingConcurrency:   v.GetInt("RANKING_CONCURRENCY"),
	}

	cfg.Fetcher = FetcherConfig{
		Headless:         v.GetBool("FETCH_HEADLESS"),
		HeadlessMinChars: v.GetInt("FETCH_HEADLESS_MIN_CHARS"),
		Timeout:          seconds("FETCH_TIMEOUT_SECONDS"),
		AllowPrivate:     v.GetBool("FETCH_ALLOW_PRIVATE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if err := cfg.Engine.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (e EngineConfig) validate() error {
	var bad []string
	if skill.ValidateThreshold(e.CanonicalThreshold) != nil {
		bad = append(bad, "CANONICAL_THRESHOLD")
	}
	if skill.ValidateThreshold(e.FuzzyThreshold) != nil {
		bad = append(bad, "FUZZY_THRESHOLD")
	}
	if e.VariantTTL <= 0 {
		bad = append(bad, "VARIANT_TTL_SECONDS")
	}
	if e.DiscoveryCorpusLimit <= 0 {
		bad = append(bad, "DISCOVERY_CORPUS_LIMIT")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(bad, ", "))
	}
	return nil
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
