package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/saadjs/maxout/internal/app"
)

const (
	PathEnv     = "MAXOUT_CONFIG"
	DefaultPath = "./maxout.yaml"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is path when given, else MAXOUT_CONFIG, else ./maxout.yaml,
// else the per-user config file. A missing default file is not an error;
// configuration then comes from ENV and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv(PathEnv)
		explicitPath = path != ""
	}
	if !explicitPath {
		path = defaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func defaultPath() string {
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	if userPath, err := app.UserConfigPath(); err == nil {
		return userPath
	}
	return DefaultPath
}
