package prog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigEnvVar names the environment variable consulted for the
// configuration file when --config is not given.
const ConfigEnvVar = "FLICK_CONFIG"

// Config is the content of the configuration file.
type Config struct {
	Web struct {
		// Address used by declare web without an argument.
		DefaultAddr string `yaml:"default_addr"`
		// Bound on reading a request, like "10s".
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"web"`
	Store struct {
		// Database used by declare store without an argument.
		Path string `yaml:"path"`
	} `yaml:"store"`
	// Debug log file. The --log flag takes precedence.
	Log string `yaml:"log"`
}

// LoadConfig reads the configuration file at path, or at $FLICK_CONFIG if
// path is empty. Without either, it returns the zero Config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
