package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateCompress(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	for name, value := range map[string]string{
		"tools.time":   c.Tools.Time,
		"tools.nccopy": c.Tools.Nccopy,
		"tools.nc2nc":  c.Tools.Nc2nc,
		"tools.ncdump": c.Tools.Ncdump,
		"tools.cdo":    c.Tools.Cdo,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	return nil
}

func (c *Config) validateCompress() error {
	if c.Compress.Dlevel < 0 || c.Compress.Dlevel > 9 {
		return errors.New("compress.dlevel must be between 0 and 9")
	}
	if c.Compress.MaxCompress < 0 {
		return errors.New("compress.maxcompress must not be negative")
	}
	tmpdir := strings.TrimSpace(c.Compress.TmpDir)
	if tmpdir == "" {
		return errors.New("compress.tmpdir must be set")
	}
	if strings.ContainsAny(tmpdir, "/\\") {
		return fmt.Errorf("compress.tmpdir must be a bare directory name, got %q", tmpdir)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
