// Package config defines the migration configuration, its YAML loader,
// validation, and the environment-variable knobs for timeouts and
// credentials.
package config
