package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream URL, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Upstream UpstreamConfig
	Auth     AuthConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Cookie   CookieConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type AppConfig struct {
	// calendar-day arithmetic for reward expiry happens in this zone
	TimeZone    string `envconfig:"APP_TIMEZONE" default:"Asia/Seoul"`
	CatalogFile string `envconfig:"REWARD_CATALOG_FILE"`
}

type UpstreamConfig struct {
	BaseURL        string        `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	ChatbotBaseURL string        `envconfig:"CHATBOT_BASE_URL"`
	Timeout        time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

type AuthConfig struct {
	// optional shared secret; tokens are parsed without verification when empty
	JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
}

type StoreConfig struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"postgres"`
	MemorySize  int    `envconfig:"STORE_MEMORY_SIZE" default:"10000"`
	AutoMigrate bool   `envconfig:"STORE_AUTO_MIGRATE" default:"false"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Seoul"`
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" default:"localhost:6379"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Seoul"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type CookieConfig struct {
	Domain          string        `envconfig:"COOKIE_DOMAIN" default:""`
	Secure          bool          `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite        string        `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
	AccessTokenTTL  time.Duration `envconfig:"COOKIE_ACCESS_TOKEN_TTL" default:"24h"`
	GuestSessionTTL time.Duration `envconfig:"COOKIE_GUEST_SESSION_TTL" default:"8760h"`
}

type TracingConfig struct {
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"stamp-rally"`
	// OTLP/HTTP collector address (host:port); spans are still created and propagated when empty
	Endpoint    string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure    bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	SampleRatio float64 `envconfig:"OTEL_SAMPLE_RATIO" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves APP_TIMEZONE, falling back to UTC for unknown zone names.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		App: AppConfig{
			TimeZone: "Asia/Seoul",
		},
		Upstream: UpstreamConfig{
			BaseURL: "http://127.0.0.1:18000",
			Timeout: 2 * time.Second,
		},
		Store: StoreConfig{
			Driver:     "memory",
			MemorySize: 1000,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Seoul",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Seoul",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Cookie: CookieConfig{
			SameSite:        "Lax",
			AccessTokenTTL:  time.Hour,
			GuestSessionTTL: 24 * time.Hour,
		},
		Tracing: TracingConfig{
			ServiceName: "stamp-rally-test",
			SampleRatio: 1,
		},
	}
}
