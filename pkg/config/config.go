package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up inside the config directory.
const ConfigFileName = "sal.yml"

// Config holds all server settings.
type Config struct {
	// BindAddress is the listen address.
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the listen port. The default matches the port the
	// container image has always exposed.
	Port int `yaml:"port" json:"port"`

	// Workers caps in-flight request handling.
	Workers int `yaml:"workers" json:"workers"`

	// TokenTTL is the bearer token lifetime in seconds.
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// ScanPageSize is the listing page size; the drive serves at most 4.
	ScanPageSize int `yaml:"scan_page_size" json:"scan_page_size"`

	// PushPlusToken is the PushPlus access token for notifications.
	PushPlusToken string `yaml:"pushplus_token" json:"pushplus_token"`

	// StateFile is the location of the encrypted index file.
	StateFile string `yaml:"state_file" json:"state_file"`

	// DriveUID, DriveToken and DriveDirID are the drive credentials.
	DriveUID   string `yaml:"drive_uid" json:"drive_uid"`
	DriveToken string `yaml:"drive_token" json:"drive_token"`
	DriveDirID string `yaml:"drive_dirid" json:"drive_dirid"`

	// APIKey is the admin key exchanged for bearer tokens. Environment
	// only, never read from file.
	APIKey string `yaml:"-" json:"-"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		BindAddress:  "0.0.0.0",
		Port:         4998,
		Workers:      16,
		TokenTTL:     480,
		ScanPageSize: 4,
		sources:      make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("SAL_CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(xdg.ConfigHome, "sal-server")
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "workers", "token_ttl", "scan_page_size",
		"pushplus_token", "state_file",
		"drive_uid", "drive_token", "drive_dirid", "api_key",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.Workers != 0 {
		c.Workers = file.Workers
		c.sources["workers"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.ScanPageSize != 0 {
		c.ScanPageSize = file.ScanPageSize
		c.sources["scan_page_size"] = "file"
	}
	if file.PushPlusToken != "" {
		c.PushPlusToken = file.PushPlusToken
		c.sources["pushplus_token"] = "file"
	}
	if file.StateFile != "" {
		c.StateFile = file.StateFile
		c.sources["state_file"] = "file"
	}
	if file.DriveUID != "" {
		c.DriveUID = file.DriveUID
		c.sources["drive_uid"] = "file"
	}
	if file.DriveToken != "" {
		c.DriveToken = file.DriveToken
		c.sources["drive_token"] = "file"
	}
	if file.DriveDirID != "" {
		c.DriveDirID = file.DriveDirID
		c.sources["drive_dirid"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("SAL_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("SAL_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("SAL_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Workers = i
			c.sources["workers"] = "environment"
		}
	}
	if val := os.Getenv("SAL_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("SAL_SCAN_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ScanPageSize = i
			c.sources["scan_page_size"] = "environment"
		}
	}
	if val := os.Getenv("SAL_PUSHPLUS_TOKEN"); val != "" {
		c.PushPlusToken = val
		c.sources["pushplus_token"] = "environment"
	}
	if val := os.Getenv("SAL_STATE_FILE"); val != "" {
		c.StateFile = val
		c.sources["state_file"] = "environment"
	}
	if val := os.Getenv("SAL_DRIVE_UID"); val != "" {
		c.DriveUID = val
		c.sources["drive_uid"] = "environment"
	}
	if val := os.Getenv("SAL_DRIVE_TOKEN"); val != "" {
		c.DriveToken = val
		c.sources["drive_token"] = "environment"
	}
	if val := os.Getenv("SAL_DRIVE_DIRID"); val != "" {
		c.DriveDirID = val
		c.sources["drive_dirid"] = "environment"
	}
	if val := os.Getenv("SAL_API_KEY"); val != "" {
		c.APIKey = val
		c.sources["api_key"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenLifetime returns the bearer token TTL as a duration
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// Addr returns the listen address in host:port form
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.ScanPageSize < 1 || c.ScanPageSize > 4 {
		return fmt.Errorf("scan_page_size must be in 1..4, got %d", c.ScanPageSize)
	}
	if c.TokenTTL < 1 {
		return fmt.Errorf("token_ttl must be positive, got %d", c.TokenTTL)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. Secrets are masked.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "workers", Value: strconv.Itoa(c.Workers), Source: c.Source("workers")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "scan_page_size", Value: strconv.Itoa(c.ScanPageSize), Source: c.Source("scan_page_size")},
		{Name: "pushplus_token", Value: mask(c.PushPlusToken), Source: c.Source("pushplus_token")},
		{Name: "state_file", Value: c.StateFile, Source: c.Source("state_file")},
		{Name: "drive_uid", Value: c.DriveUID, Source: c.Source("drive_uid")},
		{Name: "drive_token", Value: mask(c.DriveToken), Source: c.Source("drive_token")},
		{Name: "drive_dirid", Value: c.DriveDirID, Source: c.Source("drive_dirid")},
		{Name: "api_key", Value: mask(c.APIKey), Source: c.Source("api_key")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
