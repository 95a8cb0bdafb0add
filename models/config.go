// Package models defines data structures for configuration and parsing.
package models

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "WIKIFREQ_"

// Config holds runtime configuration. Values come from defaults, an optional
// YAML file, the environment (.env included) and finally CLI flags.
type Config struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url,endswith=/"`
	UserAgent      string        `yaml:"user_agent" validate:"required"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gte=0"`

	StorePath string        `yaml:"store_path" validate:"required"`
	HistoryDB string        `yaml:"history_db"`
	CacheDir  string        `yaml:"cache_dir" validate:"required"`
	CacheTTL  time.Duration `yaml:"cache_ttl" validate:"gte=0"` // 0 keeps cached pages forever
	ExportDir string        `yaml:"export_dir"`
	Offline   bool          `yaml:"offline"`

	Reference ReferenceConfig `yaml:"reference"`
	Log       LogConfig       `yaml:"log"`
}

// ReferenceConfig selects the reference language frequency list.
// An empty Path means the embedded English list.
type ReferenceConfig struct {
	Path         string `yaml:"path"`
	Format       string `yaml:"format" validate:"omitempty,oneof=tsv bnc"`
	Language     string `yaml:"language"`
	BaselineWord string `yaml:"baseline_word" validate:"required"`
}

// LogConfig controls the slog handler and the optional rotating log file.
type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://www.generasia.com/wiki/",
		UserAgent:      "Mozilla/5.0 (compatible; wikifreq/1.0)",
		RequestTimeout: 30 * time.Second,
		StorePath:      "word-counts.json",
		HistoryDB:      "wikifreq.db",
		CacheDir:       "cache",
		ExportDir:      ".",
		Reference: ReferenceConfig{
			Format:       "tsv",
			Language:     "en",
			BaselineWord: "the",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// (skipped when path is empty or the file does not exist), a .env file in the
// working directory and WIKIFREQ_* environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"BASE_URL":           &c.BaseURL,
		"USER_AGENT":         &c.UserAgent,
		"STORE_PATH":         &c.StorePath,
		"HISTORY_DB":         &c.HistoryDB,
		"CACHE_DIR":          &c.CacheDir,
		"EXPORT_DIR":         &c.ExportDir,
		"REFERENCE_PATH":     &c.Reference.Path,
		"REFERENCE_FORMAT":   &c.Reference.Format,
		"REFERENCE_LANGUAGE": &c.Reference.Language,
		"BASELINE_WORD":      &c.Reference.BaselineWord,
		"LOG_LEVEL":          &c.Log.Level,
		"LOG_FILE":           &c.Log.File,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "OFFLINE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sOFFLINE %q: %w", envPrefix, v, err)
		}
		c.Offline = b
	}
	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT": &c.RequestTimeout,
		"CACHE_TTL":       &c.CacheTTL,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, err)
			}
			*dst = d
		}
	}
	return nil
}

// Validate checks field constraints. Call it after CLI flags are applied.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
