// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file, optionally preceded by a .env file, and then
// overridden by CWB_* environment variables. Every settings struct validates itself
// so that misconfiguration is reported before any component is constructed.
package config
