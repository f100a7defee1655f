package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools names the external executables nccompress shells out to. Every
// substantive operation (compression, inspection, comparison) is delegated
// to one of these.
type Tools struct {
	Time   string `toml:"time"`
	Nccopy string `toml:"nccopy"`
	Nc2nc  string `toml:"nc2nc"`
	Ncdump string `toml:"ncdump"`
	Cdo    string `toml:"cdo"`
}

// Compress contains the default compression parameters. CLI flags override
// these per run.
type Compress struct {
	Dlevel      int    `toml:"dlevel"`
	Shuffle     bool   `toml:"shuffle"`
	TmpDir      string `toml:"tmpdir"`
	MaxCompress int    `toml:"maxcompress"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for nccompress.
type Config struct {
	Tools    Tools    `toml:"tools"`
	Compress Compress `toml:"compress"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nccompress/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all defaults applied; a missing file is not an error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("nccompress.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.Tools.Time) == "" {
		c.Tools.Time = defaultTimeBinary
	}
	if strings.TrimSpace(c.Tools.Nccopy) == "" {
		c.Tools.Nccopy = defaultNccopyBinary
	}
	if strings.TrimSpace(c.Tools.Nc2nc) == "" {
		c.Tools.Nc2nc = defaultNc2ncBinary
	}
	if strings.TrimSpace(c.Tools.Ncdump) == "" {
		c.Tools.Ncdump = defaultNcdumpBinary
	}
	if strings.TrimSpace(c.Tools.Cdo) == "" {
		c.Tools.Cdo = defaultCdoBinary
	}
	if strings.TrimSpace(c.Compress.TmpDir) == "" {
		c.Compress.TmpDir = defaultTmpDir
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
