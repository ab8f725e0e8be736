package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmcdole/marquee/internal/sorting"
	"github.com/mmcdole/marquee/internal/tmdb"
)

const (
	appName    = "marquee"
	envPrefix  = "MARQUEE"
	configName = "config"
	configType = "yaml"
	dotEnvFile = ".env"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`

	// path is the file the config was read from, if any
	path string
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds response cache configuration
type CacheConfig struct {
	Dir        string        `mapstructure:"dir"`
	SessionTTL time.Duration `mapstructure:"session_ttl"` // age after which cached responses are dropped on start
}

// UIConfig holds UI configuration
type UIConfig struct {
	Debounce          time.Duration `mapstructure:"debounce"`
	DefaultSort       string        `mapstructure:"default_sort"`
	DefaultDirection  string        `mapstructure:"default_direction"`
	RelevanceOnSearch bool          `mapstructure:"relevance_on_search"` // switch to relevance when a query is entered
	TrendingCount     int           `mapstructure:"trending_count"`
}

// BrowserConfig selects the program used for trailer, IMDb and homepage links.
// An empty command uses the system default handler.
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      tmdb.DefaultBaseURL,
			ImageBaseURL: tmdb.DefaultImageBaseURL,
			Timeout:      15 * time.Second,
		},
		Cache: CacheConfig{
			Dir:        defaultCachePath(),
			SessionTTL: 12 * time.Hour,
		},
		UI: UIConfig{
			Debounce:          300 * time.Millisecond,
			DefaultSort:       string(sorting.Title),
			DefaultDirection:  string(sorting.Desc),
			RelevanceOnSearch: true,
			TrendingCount:     10,
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

// DefaultConfigFile returns the path SaveConfig writes to when none is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), configName+"."+configType)
}

// newViper returns a viper instance with every key defaulted, so environment
// overrides apply to keys absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("tmdb.api_key", d.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)

	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.session_ttl", d.Cache.SessionTTL)

	v.SetDefault("ui.debounce", d.UI.Debounce)
	v.SetDefault("ui.default_sort", d.UI.DefaultSort)
	v.SetDefault("ui.default_direction", d.UI.DefaultDirection)
	v.SetDefault("ui.relevance_on_search", d.UI.RelevanceOnSearch)
	v.SetDefault("ui.trending_count", d.UI.TrendingCount)

	v.SetDefault("browser.command", d.Browser.Command)
	v.SetDefault("browser.args", d.Browser.Args)

	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The bare TMDB_API_KEY is what .env files for TMDB tools usually carry
	_ = v.BindEnv("tmdb.api_key", envPrefix+"_TMDB_API_KEY", "TMDB_API_KEY")

	return v
}

// LoadConfig loads configuration from .env, the config file, and the environment.
// configFile overrides the search path; when empty the default locations are
// searched and a missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()

	return cfg, nil
}

// loadDotEnv loads KEY=VALUE pairs from path without overriding the environment
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// SaveConfig writes cfg to configFile, or to the file it was loaded from,
// or to the default location.
func SaveConfig(cfg *Config, configFile string) error {
	if configFile == "" {
		configFile = cfg.path
	}
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v := viper.New()
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.session_ttl", cfg.Cache.SessionTTL.String())

	v.Set("ui.debounce", cfg.UI.Debounce.String())
	v.Set("ui.default_sort", cfg.UI.DefaultSort)
	v.Set("ui.default_direction", cfg.UI.DefaultDirection)
	v.Set("ui.relevance_on_search", cfg.UI.RelevanceOnSearch)
	v.Set("ui.trending_count", cfg.UI.TrendingCount)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	cfg.path = configFile
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// Path returns the file the configuration was loaded from or saved to
func (c *Config) Path() string {
	return c.path
}

// CacheDir returns the cache directory with ~ expanded
func (c *Config) CacheDir() string {
	return ExpandHome(c.Cache.Dir)
}

// Validate checks values a bad edit could break
func (c *Config) Validate() error {
	var errs []error

	if c.TMDB.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("tmdb.timeout must be positive, got %s", c.TMDB.Timeout))
	}
	if c.Cache.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.session_ttl must be positive, got %s", c.Cache.SessionTTL))
	}
	if c.UI.Debounce < 0 {
		errs = append(errs, fmt.Errorf("ui.debounce must not be negative, got %s", c.UI.Debounce))
	}
	if c.UI.TrendingCount <= 0 {
		errs = append(errs, fmt.Errorf("ui.trending_count must be positive, got %d", c.UI.TrendingCount))
	}
	if _, err := sorting.ParseKey(c.UI.DefaultSort); err != nil {
		errs = append(errs, fmt.Errorf("ui.default_sort: %w", err))
	}
	if _, err := sorting.ParseDirection(c.UI.DefaultDirection); err != nil {
		errs = append(errs, fmt.Errorf("ui.default_direction: %w", err))
	}

	return errors.Join(errs...)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
