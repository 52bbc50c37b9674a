package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath   string `yaml:"db_path"`
	HTTPAddr string `yaml:"http_addr"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Auth struct {
		TokenSecret   string `yaml:"token_secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`

	Scenario struct {
		PlannedQuota  int    `yaml:"planned_quota"`
		ProjectPrefix string `yaml:"project_prefix"`
	} `yaml:"scenario"`

	Clone struct {
		StrictReferences bool `yaml:"strict_references"`
	} `yaml:"clone"`
}

// DefaultConfig returns a Config with defaults for local use.
func DefaultConfig() Config {
	var cfg Config
	cfg.DBPath = defaultDBPath()
	cfg.HTTPAddr = ":8080"
	cfg.Log.Level = "warning"
	cfg.Log.Format = "text"
	cfg.Auth.TokenSecret = "horizon-dev-secret"
	cfg.Auth.TokenTTLHours = 12
	cfg.Scenario.PlannedQuota = 2
	cfg.Scenario.ProjectPrefix = "PRJ"
	return cfg
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horizon.db"
	}
	return filepath.Join(home, ".horizon", "horizon.db")
}

// DefaultPath is the config file read when HORIZON_CONFIG is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horizon.yaml"
	}
	return filepath.Join(home, ".horizon", "config.yaml")
}

// Load layers defaults, the YAML file at path (a missing file is not an
// error), and HORIZON_* environment overrides. An empty path resolves to
// HORIZON_CONFIG, then DefaultPath.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("HORIZON_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := readFile(path, &cfg); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HORIZON_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HORIZON_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("HORIZON_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HORIZON_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HORIZON_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("HORIZON_PLANNED_QUOTA"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scenario.PlannedQuota = n
		}
	}
	if v := os.Getenv("HORIZON_STRICT_CLONE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Clone.StrictReferences = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("HORIZON_PROJECT_PREFIX")); v != "" {
		cfg.Scenario.ProjectPrefix = strings.ToUpper(v)
	}
}
