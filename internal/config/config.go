// Package config loads the service configuration from defaults, an optional
// config file, a .env file and LOCALSETTINGS_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LOCALSETTINGS"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Timeline TimelineConfig `mapstructure:"timeline"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StoreConfig selects the settings store.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	// Path is the directory (file) or database file (sqlite).
	Path string `mapstructure:"path"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ChatConfig holds the XMPP connection data served and fetched by the chat bootstrap.
type ChatConfig struct {
	ConnDataURL string `mapstructure:"conndata_url"`
	PrebindURL  string `mapstructure:"prebind_url"`
	JID         string `mapstructure:"jid"`
	HTTPBindURL string `mapstructure:"http_bind_url"`
}

// TimelineConfig holds home timeline settings.
type TimelineConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration. cfgPath may be empty; LOCALSETTINGS_CONFIG is
// consulted then, and a missing file is not an error. A .env file in the
// working directory is loaded without overriding the environment.
func Load(cfgPath string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgPath == "" {
		cfgPath = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("localsettings")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgPath == "" && os.IsNotExist(err)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.path", ".localsettings")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Duration(0))
	v.SetDefault("chat.conndata_url", "http://localhost:8080/xmpp/conndata")
	v.SetDefault("chat.prebind_url", "")
	v.SetDefault("chat.jid", "")
	v.SetDefault("chat.http_bind_url", "")
	v.SetDefault("timeline.poll_interval", 3*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Timeline.PollInterval <= 0 {
		return fmt.Errorf("invalid timeline poll interval %s", c.Timeline.PollInterval)
	}
	return nil
}
