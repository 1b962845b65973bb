package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	// База часовых поясов встроена в бинарник: образ без /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/timenest/timenest-api/pkg/logger"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Slots    SlotsConfig    `toml:"slots"`
	Cache    CacheConfig    `toml:"cache"`
	Zoom     ZoomConfig     `toml:"zoom"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - вывод в stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	// JWTSecret секрет HMAC для проверки токенов; пусто - режим разработки с X-User-ID
	JWTSecret string `toml:"jwt_secret"`
}

type SlotsConfig struct {
	HorizonMonths    int    `toml:"horizon_months"`
	Timezone         string `toml:"timezone"`
	HidePast         bool   `toml:"hide_past"`
	MinNoticeMinutes int    `toml:"min_notice_minutes"`
}

// Location часовой пояс правил доступности
func (s SlotsConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type ZoomConfig struct {
	ClientID        string `toml:"client_id"`
	ClientSecret    string `toml:"client_secret"`
	RedirectURL     string `toml:"redirect_url"`
	AuthURL         string `toml:"auth_url"`
	TokenURL        string `toml:"token_url"`
	APIBaseURL      string `toml:"api_base_url"`
	Timeout         int    `toml:"timeout"` // секунды
	StateSecret     string `toml:"state_secret"`
	SuccessRedirect string `toml:"success_redirect"`
	CreateOnBooking bool   `toml:"create_on_booking"`
}

// Configured true, если заданы учетные данные OAuth-приложения
func (z ZoomConfig) Configured() bool {
	return z.ClientID != "" && z.ClientSecret != ""
}

// Load читает TOML-файл, затем переопределяет секреты переменными окружения
// Файл .env в рабочем каталоге подхватывается, если есть
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "timenest"},
		Slots:   SlotsConfig{HorizonMonths: 3, Timezone: "UTC"},
		Cache:   CacheConfig{Addr: "localhost:6379", TTLSeconds: 300},
		Zoom:    ZoomConfig{Timeout: 10},
	}
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"DATABASE_PASSWORD", &c.Database.Password},
		{"JWT_SECRET", &c.Auth.JWTSecret},
		{"ZOOM_CLIENT_ID", &c.Zoom.ClientID},
		{"ZOOM_CLIENT_SECRET", &c.Zoom.ClientSecret},
		{"ZOOM_STATE_SECRET", &c.Zoom.StateSecret},
		{"REDIS_PASSWORD", &c.Cache.Password},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok {
			*o.dst = strings.TrimSpace(v)
		}
	}
}

// Validate проверяет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		errs = append(errs, fmt.Errorf("logs.level: %w", err))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/': %q", c.Metrics.Path))
	}
	if c.Slots.HorizonMonths <= 0 {
		errs = append(errs, fmt.Errorf("slots.horizon_months must be positive: %d", c.Slots.HorizonMonths))
	}
	if c.Slots.MinNoticeMinutes < 0 {
		errs = append(errs, fmt.Errorf("slots.min_notice_minutes must not be negative: %d", c.Slots.MinNoticeMinutes))
	}
	if _, err := c.Slots.Location(); err != nil {
		errs = append(errs, fmt.Errorf("slots.timezone: %w", err))
	}
	if c.Cache.Enabled && c.Cache.TTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl_seconds must be positive: %d", c.Cache.TTLSeconds))
	}
	if c.Zoom.Configured() && c.Zoom.RedirectURL == "" {
		errs = append(errs, errors.New("zoom.redirect_url is required when zoom credentials are set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
