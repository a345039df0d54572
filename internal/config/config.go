package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/hermione/internal/constants"
)

// Backend contains the captioning and authentication service settings.
type Backend struct {
	Host                  string `toml:"host"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	PreviewModel          string `toml:"preview_model"`
	TranscribeModel       string `toml:"transcribe_model"`
}

// Network contains the connection-quality monitor settings.
type Network struct {
	SampleIntervalMS    int     `toml:"sample_interval_ms"`
	StrongThresholdMbps float64 `toml:"strong_threshold_mbps"`
	ProbePath           string  `toml:"probe_path"`
}

// Storage contains the local design document location.
type Storage struct {
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Config encapsulates all configuration values for hermione.
type Config struct {
	Backend Backend `toml:"backend"`
	Network Network `toml:"network"`
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: Backend{
			Host:                  defaultBackendHost,
			RequestTimeoutSeconds: 60,
			PreviewModel:          constants.PreviewModel,
			TranscribeModel:       constants.TranscribeModel,
		},
		Network: Network{
			SampleIntervalMS:    int(constants.NetworkSampleInterval / time.Millisecond),
			StrongThresholdMbps: constants.StrongConnectionMbps,
			ProbePath:           defaultProbePath,
		},
		Storage: Storage{
			Path: constants.DefaultDataDir + "/" + constants.DefaultDBFileName,
		},
		Logging: Logging{
			Dir: constants.DefaultDataDir,
		},
	}
}

const (
	defaultBackendHost = "http://localhost:8000"
	defaultProbePath   = "/api/canva/font-styles"
	backendEnvVar      = "HERMIONE_BACKEND"
)

// Load locates, parses, and validates a configuration file. A missing file
// is not an error; the defaults are used instead.
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
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// RequestTimeout returns the backend request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeoutSeconds) * time.Second
}

// SampleInterval returns the bandwidth sampling period.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.Network.SampleIntervalMS) * time.Millisecond
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{filepath.Dir(c.Storage.Path), c.Logging.Dir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the single-instance lock file path.
func (c *Config) LockPath() string {
	return filepath.Join(filepath.Dir(c.Storage.Path), constants.LockFileName)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = constants.DefaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
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
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
