package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Providers ProvidersConfig
	Planner   PlannerConfig
	Exports   ExportsConfig
	Upstream  UpstreamConfig
}

type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ProvidersConfig holds per-institution catalog endpoints.
type ProvidersConfig struct {
	SFUBaseURL string
	// UBCBaseURL addresses the UBC catalog directly. When empty and
	// UBCProxyURL is set, requests go through the path-forwarding proxy
	// instead (the proxy URL must end with its query key, e.g. "?path=").
	UBCBaseURL  string
	UBCProxyURL string
}

// UpstreamConfig tunes the shared HTTP client used by catalog adapters.
type UpstreamConfig struct {
	Timeout time.Duration
}

// PlannerConfig configures the external schedule-planner collaborator.
type PlannerConfig struct {
	Enabled   bool
	BaseURL   string
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// ExportsConfig gates calendar export endpoints.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Enabled:      v.GetBool("ENABLE_PERSISTENCE"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS_CACHE"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Providers = ProvidersConfig{
		SFUBaseURL:  v.GetString("SFU_BASE_URL"),
		UBCBaseURL:  v.GetString("UBC_BASE_URL"),
		UBCProxyURL: v.GetString("UBC_PROXY_URL"),
	}

	cfg.Upstream = UpstreamConfig{
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
	}

	cfg.Planner = PlannerConfig{
		Enabled:   v.GetBool("ENABLE_PLANNER"),
		BaseURL:   v.GetString("PLANNER_BASE_URL"),
		APIKey:    v.GetString("PLANNER_API_KEY"),
		Model:     v.GetString("PLANNER_MODEL"),
		Timeout:   parseDuration(v.GetString("PLANNER_TIMEOUT"), 60*time.Second),
		MaxTokens: v.GetInt("PLANNER_MAX_TOKENS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ENABLE_PERSISTENCE", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "course_compass")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS_CACHE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SFU_BASE_URL", "https://www.sfu.ca/bin/wcm/course-outlines")
	v.SetDefault("UBC_BASE_URL", "https://api.ubccourses.com")
	v.SetDefault("UBC_PROXY_URL", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")

	v.SetDefault("ENABLE_PLANNER", false)
	v.SetDefault("PLANNER_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("PLANNER_API_KEY", "")
	v.SetDefault("PLANNER_MODEL", "gpt-4o-mini")
	v.SetDefault("PLANNER_TIMEOUT", "60s")
	v.SetDefault("PLANNER_MAX_TOKENS", 1200)

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
