// Package config loads client configuration from an optional YAML file and
// SCRIBBLE_-prefixed environment variables, with defaults matching the
// public server. A missing config file is fine; env-only runs are supported.
package config
