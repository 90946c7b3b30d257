package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// SessionConfig is the optional YAML replay configuration. Flag values
// act as defaults; a config file, when given, overrides them.
type SessionConfig struct {
	Prefix      string  `yaml:"prefix"`       // path namespace for all emitted channels
	WindowSize  int     `yaml:"window_size"`  // sliding window width; <= 0 disables layout planning
	MemoryLimit string  `yaml:"memory_limit"` // advisory viewer memory cap, e.g. "50MB"
	RateHz      float64 `yaml:"rate_hz"`      // playback pacing; 0 = no pacing
	Steps       int     `yaml:"steps"`        // synthetic episode length
}

// LoadSessionConfig reads and strictly parses a session config file.
// Unknown fields are errors so typos cannot silently fall back to
// defaults.
func LoadSessionConfig(path string, defaults SessionConfig) (SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, err
	}

	cfg := defaults
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return defaults, err
	}
	logrus.Debugf("loaded session config from %s", path)
	return cfg, nil
}
