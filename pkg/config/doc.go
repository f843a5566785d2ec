// Package config loads keeper's initialization configuration: the data
// directory override, the codec stores are persisted with, and the default
// values each named store starts from.
//
// Configuration is layered with koanf. Built-in defaults come first, then
// an optional TOML or YAML file, then KEEPER_* environment variables.
package config
