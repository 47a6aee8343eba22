// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/autofill-core/internal/cache"
	"github.com/jonathan/autofill-core/internal/storage"
)

var validate = validator.New()

// Config is the CLI configuration that can be loaded from a JSON file.
// All fields are optional; CLI flags and environment variables fill the rest.
type Config struct {
	// Storage
	StorageBackend string `json:"storage_backend,omitempty" validate:"omitempty,oneof=memory sqlite postgres"`
	SQLitePath     string `json:"sqlite_path,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty" validate:"required_if=StorageBackend postgres"`

	// Cache
	CachePrefix      string `json:"cache_prefix,omitempty" validate:"omitempty,max=64"`
	CacheMaxAgeHours int    `json:"cache_max_age_hours,omitempty" validate:"gte=0"`

	// Answering
	APIKey  string `json:"api_key,omitempty"`
	Profile string `json:"profile,omitempty"` // Path to applicant profile JSON

	// Fetching
	UseBrowser          bool `json:"use_browser,omitempty"`
	FetchTimeoutSeconds int  `json:"fetch_timeout_seconds,omitempty" validate:"gte=0"`

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		StorageBackend:      storage.BackendSQLite,
		SQLitePath:          "autofill.db",
		CachePrefix:         cache.DefaultPrefix,
		CacheMaxAgeHours:    int(cache.DefaultMaxAge / time.Hour),
		FetchTimeoutSeconds: 30,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv overlays environment variables onto empty fields. GEMINI_API_KEY
// and DATABASE_URL are shared with other tools; the rest use AUTOFILL_.
func (c *Config) FromEnv() {
	setIfEmpty(&c.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&c.DatabaseURL, "DATABASE_URL")
	setIfEmpty(&c.StorageBackend, "AUTOFILL_STORAGE")
	setIfEmpty(&c.SQLitePath, "AUTOFILL_SQLITE_PATH")
	setIfEmpty(&c.Profile, "AUTOFILL_PROFILE")
}

func setIfEmpty(field *string, env string) {
	if *field == "" {
		*field = strings.TrimSpace(os.Getenv(env))
	}
}

// Validate checks field values and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed %s", jsonName(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bool fields cannot distinguish unset from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	type stringField struct {
		dst *string
		src string
	}
	for _, f := range []stringField{
		{&result.StorageBackend, defaults.StorageBackend},
		{&result.SQLitePath, defaults.SQLitePath},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.CachePrefix, defaults.CachePrefix},
		{&result.APIKey, defaults.APIKey},
		{&result.Profile, defaults.Profile},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
	if result.CacheMaxAgeHours == 0 {
		result.CacheMaxAgeHours = defaults.CacheMaxAgeHours
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	return result
}

// StorageConfig returns the storage settings.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Backend:     c.StorageBackend,
		SQLitePath:  c.SQLitePath,
		DatabaseURL: c.DatabaseURL,
	}
}

// CacheConfig returns the answer cache settings.
func (c *Config) CacheConfig() *cache.Config {
	cfg := cache.DefaultConfig()
	if c.CachePrefix != "" {
		cfg.Prefix = c.CachePrefix
	}
	if c.CacheMaxAgeHours > 0 {
		cfg.MaxAge = time.Duration(c.CacheMaxAgeHours) * time.Hour
	}
	return cfg
}

// FetchTimeout returns the page fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

var jsonNames = map[string]string{
	"StorageBackend":      "storage_backend",
	"DatabaseURL":         "database_url",
	"CachePrefix":         "cache_prefix",
	"CacheMaxAgeHours":    "cache_max_age_hours",
	"FetchTimeoutSeconds": "fetch_timeout_seconds",
}

func jsonName(field string) string {
	if name, ok := jsonNames[field]; ok {
		return name
	}
	return field
}
