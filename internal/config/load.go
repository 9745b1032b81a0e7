package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the current
// directory when no path is given.
const DefaultConfigFile = "vdsmigrate.yaml"

// LoadFile reads and parses the configuration from a YAML file, applies
// defaults, resolves credentials from the environment, and validates.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.ApplyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the default config path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("%s not found in current directory", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

// applyEnv overlays credentials and run options from the environment.
// The environment wins over the file so passwords can stay out of YAML.
func (c *Config) applyEnv() {
	if v := os.Getenv("VSPHERE_ENDPOINT"); v != "" {
		c.VCenter.Endpoint = v
	}
	if v := os.Getenv("VSPHERE_USERNAME"); v != "" {
		c.VCenter.Username = v
	}
	if v := os.Getenv("VSPHERE_PASSWORD"); v != "" {
		c.VCenter.Password = v
	}
	if v := os.Getenv("VSPHERE_PARALLEL_HOSTS"); v != "" {
		if parallel, err := strconv.ParseBool(v); err == nil {
			c.Parallel = parallel
		}
	}
}
