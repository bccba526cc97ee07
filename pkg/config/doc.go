// Package config handles the per-user global configuration of deps.
// It loads the configuration from embedded defaults, the user's .deprc TOML
// file and DEPS_ environment variables, and writes the file with defaults on
// first use.
package config
