// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including server settings, request parse limits, metrics buffering, and
// logging levels.
package config
