package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Email    EmailConfig    `mapstructure:"email"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port                 int      `mapstructure:"port"`
	ClamdAddr            string   `mapstructure:"clamd_addr"`
	MaxUploadBytes       int64    `mapstructure:"max_upload_bytes"`
	ContactRatePerHour   int      `mapstructure:"contact_rate_per_hour"`
	AllowedOrigins       []string `mapstructure:"allowed_origins"`
	SearchDebounceMillis int      `mapstructure:"search_debounce_ms"`
	DefaultBlogShowCount int      `mapstructure:"default_blog_show_count"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr 返回 host:port 形式的地址。
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	Bucket           string `mapstructure:"bucket"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// FeedConfig 描述 Medium RSS → JSON 桥接服务。
type FeedConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	DateLocale string        `mapstructure:"date_locale"`
	TimeZone   string        `mapstructure:"time_zone"`
}

// EmailConfig 描述事务邮件发送服务（EmailJS 兼容）。
type EmailConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	ServiceID  string        `mapstructure:"service_id"`
	TemplateID string        `mapstructure:"template_id"`
	PublicKey  string        `mapstructure:"public_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether every credential needed to send mail is present.
func (e EmailConfig) Enabled() bool {
	return strings.TrimSpace(e.ServiceID) != "" &&
		strings.TrimSpace(e.TemplateID) != "" &&
		strings.TrimSpace(e.PublicKey) != ""
}

// CacheConfig 控制内容文档的 Redis 读缓存。
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// WorkerConfig contains asynq worker settings.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.clamd_addr", "")
	v.SetDefault("api.max_upload_bytes", 5*1024*1024)
	v.SetDefault("api.contact_rate_per_hour", 5)
	v.SetDefault("api.allowed_origins", []string{})
	v.SetDefault("api.search_debounce_ms", 300)
	v.SetDefault("api.default_blog_show_count", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "folio")
	v.SetDefault("database.user", "folio")
	v.SetDefault("database.password", "folio")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "http://localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.bucket", "portfolio")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("feed.base_url", "https://api.rss2json.com/v1/api.json")
	v.SetDefault("feed.timeout", 10*time.Second)
	v.SetDefault("feed.date_locale", "en")
	v.SetDefault("feed.time_zone", "UTC")
	v.SetDefault("email.endpoint", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("email.timeout", 10*time.Second)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("worker.concurrency", 5)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                    "API_PORT",
		"api.clamd_addr":              "CLAMD_ADDR",
		"api.max_upload_bytes":        "API_MAX_UPLOAD_BYTES",
		"api.contact_rate_per_hour":   "CONTACT_RATE_PER_HOUR",
		"api.allowed_origins":         "API_ALLOWED_ORIGINS",
		"api.search_debounce_ms":      "SEARCH_DEBOUNCE_MS",
		"api.default_blog_show_count": "BLOG_DEFAULT_SHOW_COUNT",
		"database.host":               "DATABASE_HOST",
		"database.port":               "DATABASE_PORT",
		"database.name":               "POSTGRES_DB",
		"database.user":               "POSTGRES_USER",
		"database.password":           "POSTGRES_PASSWORD",
		"database.sslmode":            "DATABASE_SSLMODE",
		"redis.host":                  "REDIS_HOST",
		"redis.port":                  "REDIS_PORT",
		"minio.endpoint":              "MINIO_ENDPOINT",
		"minio.public_endpoint":       "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":         "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":     "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":               "MINIO_USE_SSL",
		"minio.region":                "MINIO_REGION",
		"minio.bucket_lookup":         "MINIO_BUCKET_LOOKUP",
		"minio.bucket":                "MINIO_BUCKET",
		"minio.auto_create_bucket":    "MINIO_AUTO_CREATE_BUCKET",
		"feed.base_url":               "FEED_BASE_URL",
		"feed.api_key":                "RSS2JSON_API_KEY",
		"feed.timeout":                "FEED_TIMEOUT",
		"feed.date_locale":            "FEED_DATE_LOCALE",
		"feed.time_zone":              "FEED_TIME_ZONE",
		"email.endpoint":              "EMAIL_ENDPOINT",
		"email.service_id":            "EMAILJS_SERVICE_ID",
		"email.template_id":           "EMAILJS_TEMPLATE_ID",
		"email.public_key":            "EMAILJS_PUBLIC_KEY",
		"email.timeout":               "EMAIL_TIMEOUT",
		"cache.enabled":               "CACHE_ENABLED",
		"cache.ttl":                   "CACHE_TTL",
		"worker.concurrency":          "WORKER_CONCURRENCY",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.API.SearchDebounceMillis <= 0 {
		return errors.New("search debounce must be positive")
	}
	if cfg.API.DefaultBlogShowCount < 1 || cfg.API.DefaultBlogShowCount > 50 {
		return errors.New("default blog show count must be within [1,50]")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Feed.BaseURL == "" {
		return errors.New("feed base url is required")
	}
	if cfg.Feed.Timeout <= 0 {
		return errors.New("feed timeout must be positive")
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive when cache is enabled")
	}
	if cfg.Worker.Concurrency <= 0 {
		return errors.New("worker concurrency must be positive")
	}
	return nil
}
