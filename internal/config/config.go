package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Session   SessionConfig   `yaml:"session"`
}

// ServerConfig holds HTTP server settings used by `maxout serve`.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"MAXOUT_SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"MAXOUT_SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"MAXOUT_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"MAXOUT_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"MAXOUT_SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"MAXOUT_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr is the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"MAXOUT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"MAXOUT_LOG_FORMAT" env-default:"text"`
	// File enables rotated file output when set.
	File string `yaml:"file" env:"MAXOUT_LOG_FILE"`
	// FileOnly stops mirroring file output to stderr. Without File it logs
	// to the per-user cache directory.
	FileOnly bool `yaml:"file_only" env:"MAXOUT_LOG_FILE_ONLY"`
}

// RateLimitConfig is the per client IP token bucket of the HTTP API.
type RateLimitConfig struct {
	Disabled bool    `yaml:"disabled" env:"MAXOUT_RATE_LIMIT_DISABLED"`
	RPS      float64 `yaml:"rps"     env:"MAXOUT_RATE_LIMIT_RPS"     env-default:"20"`
	Burst    int     `yaml:"burst"   env:"MAXOUT_RATE_LIMIT_BURST"   env-default:"40"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"MAXOUT_CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"MAXOUT_CORS_ALLOWED_METHODS" env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"MAXOUT_CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
}

// SessionConfig tunes the in-memory session every command runs against.
type SessionConfig struct {
	// DemoData pre-fills a fresh session with weight and meals for each of
	// the five days before today.
	DemoData bool   `yaml:"demo_data" env:"MAXOUT_SESSION_DEMO_DATA" env-default:"false"`
	Prompt   string `yaml:"prompt"    env:"MAXOUT_SESSION_PROMPT"    env-default:"maxout> "`
}

// Validate performs business-rule validation on the loaded configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within 1-65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	if !c.RateLimit.Disabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive unless disabled")
	}
	return nil
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	return splitList(c.AllowedOrigins)
}

func (c CORSConfig) Methods() []string {
	return splitList(c.AllowedMethods)
}

func (c CORSConfig) Headers() []string {
	return splitList(c.AllowedHeaders)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
