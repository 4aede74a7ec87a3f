package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	// Server настройки HTTP сервера
	Server struct {
		Addr            string        `mapstructure:"addr"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	}

	// Storage настройки хранилища
	Storage struct {
		// Driver выбирает реализацию хранилища; поддерживается "sqlite"
		Driver string `mapstructure:"driver"`
		// SQLitePath путь к файлу БД
		SQLitePath string `mapstructure:"sqlite_path"`
	}

	// Session настройки сессий
	Session struct {
		// TTL срок жизни сессии с момента создания
		TTL time.Duration `mapstructure:"ttl"`
		// SweepInterval период фоновой очистки истекших сессий, 0 отключает
		SweepInterval time.Duration `mapstructure:"sweep_interval"`
	}

	// RateLimit настройки лимитов для auth маршрутов
	RateLimit struct {
		Rate   int           `mapstructure:"rate"`
		Window time.Duration `mapstructure:"window"`
	}
)

// Config корневая конфигурация сервера
type Config struct {
	Server    Server    `mapstructure:"server"`
	Storage   Storage   `mapstructure:"storage"`
	Session   Session   `mapstructure:"session"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	LogLevel  string    `mapstructure:"log_level"`
}

// Load читает конфигурацию: дефолты, затем опциональный yaml файл,
// затем переменные окружения REPORADAR_* (например REPORADAR_SERVER_ADDR)
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "reporadar.db")
	v.SetDefault("session.ttl", 30*24*time.Hour)
	v.SetDefault("session.sweep_interval", 12*time.Hour)
	v.SetDefault("rate_limit.rate", 10)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("REPORADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		// Файл по умолчанию опционален
		v.SetConfigName("reporadar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Storage.Driver == "" {
		return fmt.Errorf("storage.driver cannot be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.SweepInterval < 0 {
		return fmt.Errorf("session.sweep_interval cannot be negative")
	}
	return nil
}
