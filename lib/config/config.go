// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/projectagentis/agentis/lib/endpoint"
)

// EnvironmentVariable names the variable consulted when no --config
// flag is given.
const EnvironmentVariable = "AGENTIS_CONFIG"

// Config is the complete configuration for every Agentis binary.
type Config struct {
	// Endpoint names the IPC rendezvous point.
	Endpoint EndpointConfig `yaml:"endpoint"`

	// Connect bounds the relay's connection attempts.
	Connect ConnectConfig `yaml:"connect"`

	// Relay configures the four-pump bridge.
	Relay RelayConfig `yaml:"relay"`

	// Listener configures the application's accept loop.
	Listener ListenerConfig `yaml:"listener"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// EndpointConfig names the IPC endpoint. Both sides must agree.
type EndpointConfig struct {
	// Name is the well-known endpoint name.
	// Default: com.yourcompany.projectagentis.broker.sock
	Name string `yaml:"name"`

	// TempDirectory is the socket directory on platforms without a
	// socket namespace. Default: /tmp
	TempDirectory string `yaml:"temp_directory"`
}

// ConnectConfig configures connection establishment.
type ConnectConfig struct {
	// MaxAttempts is the total number of dial attempts. Default: 5
	MaxAttempts int `yaml:"max_attempts"`

	// RetryDelay is the fixed pause between attempts. Default: 1s
	RetryDelay Duration `yaml:"retry_delay"`
}

// RelayConfig configures the bridge.
type RelayConfig struct {
	// QueueCapacity is the number of frames buffered per direction
	// before the reading side blocks. Default: 10
	QueueCapacity int `yaml:"queue_capacity"`

	// ShutdownGrace bounds how long the supervisor waits for the
	// remaining pumps after the first one finishes. Default: 2s
	ShutdownGrace Duration `yaml:"shutdown_grace"`
}

// ListenerConfig configures the application's listener.
type ListenerConfig struct {
	// AcceptRetryDelay is the pause after a failed accept. Default: 1s
	AcceptRetryDelay Duration `yaml:"accept_retry_delay"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is auto, text, or json. auto picks text when stderr is a
	// terminal and json otherwise. Default: auto
	Format string `yaml:"format"`

	// File, when set, receives log records in addition to stderr and
	// is rotated by size.
	File string `yaml:"file"`

	// MaxSizeMB is the rotation threshold for File. Default: 10
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files kept. Default: 3
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays deletes rotated files older than this. Default: 14
	MaxAgeDays int `yaml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `yaml:"compress"`
}

// Duration is a time.Duration that reads and writes Go duration
// strings ("1s", "250ms") in YAML.
type Duration time.Duration

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return fmt.Errorf("line %d: duration must be a string like \"1s\": %w", node.Line, err)
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			Name:          endpoint.DefaultName,
			TempDirectory: endpoint.DefaultTempDirectory,
		},
		Connect: ConnectConfig{
			MaxAttempts: 5,
			RetryDelay:  Duration(time.Second),
		},
		Relay: RelayConfig{
			QueueCapacity: 10,
			ShutdownGrace: Duration(2 * time.Second),
		},
		Listener: ListenerConfig{
			AcceptRetryDelay: Duration(time.Second),
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "auto",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load returns the configuration selected by flagPath, or by
// AGENTIS_CONFIG when flagPath is empty, or the defaults when both are
// empty. The second return value is the file that was loaded ("" for
// defaults).
func Load(flagPath string) (*Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, "", cfg.Validate()
	}
	cfg, err := LoadFile(path)
	return cfg, path, err
}

// LoadFile reads path over the defaults, expands path variables, and
// validates the result. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Endpoint.Name == "" {
		errs = append(errs, errors.New("endpoint.name is required"))
	} else if strings.ContainsAny(c.Endpoint.Name, "/\\") {
		errs = append(errs, fmt.Errorf("endpoint.name %q must not contain path separators", c.Endpoint.Name))
	}
	if c.Connect.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("connect.max_attempts must be at least 1, got %d", c.Connect.MaxAttempts))
	}
	if c.Connect.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("connect.retry_delay must not be negative, got %v", c.Connect.RetryDelay.Std()))
	}
	if c.Relay.QueueCapacity < 1 {
		errs = append(errs, fmt.Errorf("relay.queue_capacity must be at least 1, got %d", c.Relay.QueueCapacity))
	}
	if c.Relay.ShutdownGrace <= 0 {
		errs = append(errs, fmt.Errorf("relay.shutdown_grace must be positive, got %v", c.Relay.ShutdownGrace.Std()))
	}
	if c.Listener.AcceptRetryDelay <= 0 {
		errs = append(errs, fmt.Errorf("listener.accept_retry_delay must be positive, got %v", c.Listener.AcceptRetryDelay.Std()))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !contains(levels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be one of %v, got %q", levels, c.Log.Level))
	}
	formats := []string{"auto", "text", "json"}
	if !contains(formats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format must be one of %v, got %q", formats, c.Log.Format))
	}

	return errors.Join(errs...)
}

// ResolveEndpoint resolves the configured endpoint for this platform.
func (c *Config) ResolveEndpoint() (endpoint.Endpoint, error) {
	return endpoint.Resolve(c.Endpoint.Name, c.Endpoint.TempDirectory)
}

// RetryPolicy returns the connection retry policy.
func (c *Config) RetryPolicy() endpoint.RetryPolicy {
	return endpoint.RetryPolicy{
		MaxAttempts: c.Connect.MaxAttempts,
		Delay:       c.Connect.RetryDelay.Std(),
	}
}

func (c *Config) expandVariables() {
	c.Endpoint.TempDirectory = expandVars(c.Endpoint.TempDirectory)
	c.Log.File = expandVars(c.Log.File)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default} with environment
// values.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
