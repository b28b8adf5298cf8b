// Package config loads rebatch configuration in layers with koanf: embedded
// defaults, then the user config file (TOML or YAML), then REBATCH_
// environment variables, then explicit overrides such as command line flags.
package config
