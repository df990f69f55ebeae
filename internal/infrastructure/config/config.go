package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server ServerConfig
	Model  ModelConfig
	Redis  RedisConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// ModelConfig holds model runner settings.
type ModelConfig struct {
	RunnerURL string
	Name      string
	Timeout   time.Duration
	BatchSize int
}

// RedisConfig holds prediction cache settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with defaults.
// Variables use the ASSERTION_ prefix, e.g. ASSERTION_SERVER_PORT.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("ASSERTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config

	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.Mode = v.GetString("server.mode")

	cfg.Model.RunnerURL = v.GetString("model.runner_url")
	cfg.Model.Name = v.GetString("model.name")
	cfg.Model.Timeout = v.GetDuration("model.timeout")
	cfg.Model.BatchSize = v.GetInt("model.batch_size")

	cfg.Redis.Host = v.GetString("redis.host")
	cfg.Redis.Port = v.GetInt("redis.port")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.TTL = v.GetDuration("redis.ttl")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("model.runner_url", "http://localhost:9090")
	v.SetDefault("model.name", "bvanaken/clinical-assertion-negation-bert")
	v.SetDefault("model.timeout", "120s")
	v.SetDefault("model.batch_size", 16)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
