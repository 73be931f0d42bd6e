package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string
	DatabaseURL string
	TablePrefix string
	// Connection pool sizing
	PoolMaxConns int32
	PoolMinConns int32
	// Cost factor for the bcrypt password hasher
	BcryptCost int
	// Debug flags
	Debug bool
}

// fileOverrides is the optional YAML config file pointed to by
// CHATSTORE_CONFIG. Environment variables win over file values; the file
// exists so deployments can tune pool sizing without touching the environment.
type fileOverrides struct {
	DatabaseURL  string `yaml:"database_url"`
	TablePrefix  string `yaml:"table_prefix"`
	PoolMaxConns int32  `yaml:"pool_max_conns"`
	PoolMinConns int32  `yaml:"pool_min_conns"`
	BcryptCost   int    `yaml:"bcrypt_cost"`
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Environment:  env,
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TablePrefix:  getTablePrefix(env),
		PoolMaxConns: DefaultPoolMaxConns,
		PoolMinConns: DefaultPoolMinConns,
		BcryptCost:   DefaultBcryptCost,
		Debug:        getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}

	if path := os.Getenv("CHATSTORE_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
		// Env takes precedence over the file
		if url := os.Getenv("DATABASE_URL"); url != "" {
			cfg.DatabaseURL = url
		}
		if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
			cfg.TablePrefix = prefix
		}
	}

	// Below the bcrypt floor the hash stops being "slow adaptive"
	if cfg.BcryptCost < DefaultBcryptCost {
		cfg.BcryptCost = DefaultBcryptCost
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var overrides fileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if overrides.DatabaseURL != "" {
		c.DatabaseURL = overrides.DatabaseURL
	}
	if overrides.TablePrefix != "" {
		c.TablePrefix = overrides.TablePrefix
	}
	if overrides.PoolMaxConns > 0 {
		c.PoolMaxConns = overrides.PoolMaxConns
	}
	if overrides.PoolMinConns > 0 {
		c.PoolMinConns = overrides.PoolMinConns
	}
	if overrides.BcryptCost > 0 {
		c.BcryptCost = overrides.BcryptCost
	}

	return nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
