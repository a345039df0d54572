package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeBackend()
	c.normalizeNetwork()

	var err error
	if c.Storage.Path, err = expandPath(c.Storage.Path); err != nil {
		return fmt.Errorf("storage.path: %w", err)
	}
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBackend() {
	c.Backend.Host = strings.TrimSpace(c.Backend.Host)
	if value := strings.TrimSpace(os.Getenv(backendEnvVar)); value != "" && (c.Backend.Host == "" || c.Backend.Host == defaultBackendHost) {
		c.Backend.Host = value
	}
	if c.Backend.Host == "" {
		c.Backend.Host = defaultBackendHost
	}
	c.Backend.Host = strings.TrimRight(c.Backend.Host, "/")
	if strings.TrimSpace(c.Backend.PreviewModel) == "" {
		c.Backend.PreviewModel = Default().Backend.PreviewModel
	}
	if strings.TrimSpace(c.Backend.TranscribeModel) == "" {
		c.Backend.TranscribeModel = Default().Backend.TranscribeModel
	}
}

func (c *Config) normalizeNetwork() {
	c.Network.ProbePath = strings.TrimSpace(c.Network.ProbePath)
	if c.Network.ProbePath == "" {
		c.Network.ProbePath = defaultProbePath
	}
	if !strings.HasPrefix(c.Network.ProbePath, "/") {
		c.Network.ProbePath = "/" + c.Network.ProbePath
	}
}
