package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateNetwork(); err != nil {
		return err
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path must be set")
	}
	return nil
}

func (c *Config) validateBackend() error {
	u, err := url.Parse(c.Backend.Host)
	if err != nil {
		return fmt.Errorf("backend.host: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.host must be an http(s) URL, got %q", c.Backend.Host)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.host is missing a host: %q", c.Backend.Host)
	}
	if c.Backend.RequestTimeoutSeconds <= 0 {
		return errors.New("backend.request_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateNetwork() error {
	if c.Network.SampleIntervalMS < 100 {
		return errors.New("network.sample_interval_ms must be at least 100")
	}
	if c.Network.StrongThresholdMbps <= 0 {
		return errors.New("network.strong_threshold_mbps must be positive")
	}
	return nil
}
