package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Search     SearchConfig     `mapstructure:"search"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	AllowMutations  bool          `mapstructure:"allow_mutations"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Title           string        `mapstructure:"title"`
}

// DictionaryConfig says where words come from and how they are stored
type DictionaryConfig struct {
	// Dir is the directory of word files. Empty means look for an
	// artifacts directory near the working directory.
	Dir            string   `mapstructure:"dir"`
	Sources        []string `mapstructure:"sources"`
	Ignore         []string `mapstructure:"ignore"`
	CaseSensitive  bool     `mapstructure:"case_sensitive"`
	SkipUnreadable bool     `mapstructure:"skip_unreadable"`
	HTTPRetries    int      `mapstructure:"http_retries"`
}

// SearchConfig bounds the number of completions per query
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// EnvPrefix is prepended to every environment variable override,
// e.g. AUTOCOMPLETE_SERVER_PORT.
const EnvPrefix = "AUTOCOMPLETE"

// New returns a viper instance with defaults and environment overrides set up.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file into v and decodes the result.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	return Load(New(), configPath)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.allow_mutations", false)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.title", "")

	v.SetDefault("dictionary.dir", "")
	v.SetDefault("dictionary.sources", []string{})
	v.SetDefault("dictionary.ignore", []string{".DS_Store"})
	v.SetDefault("dictionary.case_sensitive", false)
	v.SetDefault("dictionary.skip_unreadable", false)
	v.SetDefault("dictionary.http_retries", 4)

	v.SetDefault("search.default_limit", 5)
	v.SetDefault("search.max_limit", 50)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout cannot be negative")
	}
	if c.Dictionary.HTTPRetries < 0 {
		return fmt.Errorf("http retries cannot be negative")
	}
	if c.Search.DefaultLimit < 0 {
		return fmt.Errorf("default search limit cannot be negative: %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("max search limit %d is below the default %d", c.Search.MaxLimit, c.Search.DefaultLimit)
	}

	return nil
}

// Addr returns the host:port the server listens on
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
