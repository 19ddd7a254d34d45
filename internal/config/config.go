// Package config provides YAML configuration for the upload client and the
// reference endpoint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up next to the executable.
const DefaultFileName = "fnupload.yaml"

// AppConfig represents the root configuration structure
type AppConfig struct {
	// Client is where uploads go
	Client ClientConfig `yaml:"client"`

	// Server configures the reference endpoint
	Server ServerConfig `yaml:"server"`

	// Storage configures where the reference endpoint keeps uploads
	Storage StorageConfig `yaml:"storage"`

	// Logging options
	Logging LoggingConfig `yaml:"logging"`
}

// ClientConfig contains upload target settings
type ClientConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Token     string `yaml:"token"`
	FieldName string `yaml:"field_name"`
	// Timeout is a Go duration string; empty means no explicit timeout.
	Timeout            string `yaml:"timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bind_address"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	BodyLimit    string `yaml:"body_limit"`
	RequireAuth  bool   `yaml:"require_auth"`
	AuthToken    string `yaml:"auth_token"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	DataDirectory    string `yaml:"data_directory"`
	UploadsDirectory string `yaml:"uploads_directory"`
}

// LoggingConfig contains log settings
type LoggingConfig struct {
	Level          string `yaml:"level"`
	RequestLogging bool   `yaml:"request_logging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Client: ClientConfig{
			Endpoint:  "https://api.example.com/upload",
			Token:     "YOUR_API_KEY",
			FieldName: "file",
		},
		Server: ServerConfig{
			Port:         8089,
			BindAddress:  "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "512M",
			RequireAuth:  false,
			AuthToken:    "",
		},
		Storage: StorageConfig{
			DataDirectory:    "./data",
			UploadsDirectory: "./data/uploads",
		},
		Logging: LoggingConfig{
			Level:          "info",
			RequestLogging: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file, writing the defaults there
// first if it does not exist.
func LoadConfig(configPath string) (*AppConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so omitted keys keep sane values.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnvironment returns the defaults with environment overrides applied,
// for runs without a config file.
func FromEnvironment() *AppConfig {
	config := DefaultConfig()
	config.applyEnvironmentOverrides()
	return config
}

// Save saves the configuration to a YAML file
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# fnupload configuration\n# This file is auto-generated on first run\n\n")
	content := append(header, output...)

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *AppConfig) Validate() error {
	if c.Client.Timeout != "" {
		if _, err := time.ParseDuration(c.Client.Timeout); err != nil {
			return fmt.Errorf("invalid client.timeout %q: %w", c.Client.Timeout, err)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.RequireAuth && c.Server.AuthToken == "" {
		return fmt.Errorf("server.require_auth is set but server.auth_token is empty")
	}
	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if endpoint := os.Getenv("FNUPLOAD_ENDPOINT"); endpoint != "" {
		c.Client.Endpoint = endpoint
	}

	if token := os.Getenv("FNUPLOAD_TOKEN"); token != "" {
		c.Client.Token = token
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
		c.Storage.UploadsDirectory = filepath.Join(dataDir, "uploads")
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if !filepath.IsAbs(c.Storage.UploadsDirectory) {
		c.Storage.UploadsDirectory = filepath.Join(configDir, c.Storage.UploadsDirectory)
	}
}

// ClientTimeout returns the parsed client timeout, zero when unset.
func (c *AppConfig) ClientTimeout() time.Duration {
	d, err := time.ParseDuration(c.Client.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// GetUploadDir returns the absolute uploads directory path
func (c *AppConfig) GetUploadDir() string {
	return c.Storage.UploadsDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		c.Storage.UploadsDirectory,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
