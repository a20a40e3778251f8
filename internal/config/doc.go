// Package config loads and validates the application configuration.
package config
