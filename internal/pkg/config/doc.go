// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file, optionally preceded by a .env file, and can be
// overridden through MENTARA_* environment variables. Every settings struct validates
// itself before the application wires its dependencies.
package config
