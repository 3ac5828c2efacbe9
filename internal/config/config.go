// Package config loads and validates the service configuration from
// YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gesturekit/gesturekit/internal/core/gesture"
	"github.com/gesturekit/gesturekit/internal/core/observability/log"
)

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Gesture GestureConfig `json:"gesture" yaml:"gesture"`
}

// ServerConfig configures the touch-stream server.
type ServerConfig struct {
	Host         string        `json:"host" yaml:"host"`
	Port         int           `json:"port" yaml:"port"`
	StaticDir    string        `json:"static_dir,omitempty" yaml:"static_dir,omitempty"`
	ReadTimeout  time.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// GestureConfig carries the per-surface gesture options. Pointer fields
// distinguish "unset" from an explicit false so the documented defaults
// (pan off, rotate on) apply only when a field is absent.
type GestureConfig struct {
	Pan    *bool `json:"pan,omitempty" yaml:"pan,omitempty"`
	Rotate *bool `json:"rotate,omitempty" yaml:"rotate,omitempty"`
}

// Resolve merges the defaults into the unset fields.
func (g GestureConfig) Resolve() gesture.Config {
	cfg := gesture.DefaultConfig()
	if g.Pan != nil {
		cfg.Pan = *g.Pan
	}
	if g.Rotate != nil {
		cfg.Rotate = *g.Rotate
	}
	return cfg
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			StaticDir:    "web/static",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadYAML reads a YAML config.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode yaml config: %w", err)
	}
	return &c, nil
}

// LoadJSON reads a JSON config.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode json config: %w", err)
	}
	return &c, nil
}

// LoadFile loads a config file, picking the format by extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var c *Config
	switch filepath.Ext(path) {
	case ".json":
		c, err = LoadJSON(f)
	default:
		c, err = LoadYAML(f)
	}
	if err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the loaded values once, at startup.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server host is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed log level; Validate must have passed.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}
