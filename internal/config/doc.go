// Package config loads and validates the nccompress TOML configuration.
//
// Configuration covers the external tool paths (time wrapper, converters,
// inspector, differ), default compression parameters, and log output.
// Defaults work without any config file; Load falls back to
// ~/.config/nccompress/config.toml, then ./nccompress.toml.
package config
