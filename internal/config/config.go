// Package config loads steinschliff settings.
//
// Sources, lowest precedence first:
//
//	built-in defaults
//	<root>/steinschliff.toml (optional)
//	<root>/.env and the process environment (STEINSCHLIFF_*)
//	command-line flags (applied by the caller)
//
// Relative paths are resolved against the project root by Resolve.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"steinschliff/internal/logger"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
)

// FileName is the config file looked up in the project root.
const FileName = "steinschliff.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STEINSCHLIFF_"

// Config holds steinschliff settings.
type Config struct {
	SchliffsDir   string `toml:"schliffs_dir"`
	ConditionsDir string `toml:"conditions_dir"`
	Readme        string `toml:"readme"`
	ReadmeRU      string `toml:"readme_ru"`
	JSONOut       string `toml:"json_out"`
	SiteDir       string `toml:"site_dir"`
	Sort          string `toml:"sort"`
	LogLevel      string `toml:"log_level"`
	// Exclude lists globs (relative to SchliffsDir) of YAML files to skip.
	// "dir/**" matches a whole subtree; other patterns use filepath.Match.
	Exclude []string `toml:"exclude"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SchliffsDir:   "schliffs",
		ConditionsDir: "snow_conditions",
		Readme:        "README_en.md",
		ReadmeRU:      "README.md",
		JSONOut:       "webapp/src/data/structures.json",
		SiteDir:       "docs",
		Sort:          "name",
		LogLevel:      "INFO",
	}
}

// envKeys maps environment variable suffixes to fields.
func (c *Config) envKeys() map[string]*string {
	return map[string]*string{
		"SCHLIFFS_DIR":   &c.SchliffsDir,
		"CONDITIONS_DIR": &c.ConditionsDir,
		"README_EN":      &c.Readme,
		"README_RU":      &c.ReadmeRU,
		"JSON_OUT":       &c.JSONOut,
		"SITE_DIR":       &c.SiteDir,
		"SORT":           &c.Sort,
		"LOG_LEVEL":      &c.LogLevel,
	}
}

// Load reads settings for the project at root. path overrides the config
// file location; when empty <root>/steinschliff.toml is used and a missing
// file is not an error. An explicit path must exist.
func Load(root, path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	}
	if err := cfg.readFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			logger.Debug("no %s, using defaults", path)
		} else {
			return Config{}, err
		}
	}

	envFile := filepath.Join(root, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("ignoring %s: %v", envFile, err)
	}
	cfg.applyEnv(os.Getenv)
	cfg.Sort = strings.ToLower(strings.TrimSpace(cfg.Sort))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	logger.Debug("loaded settings from %s", path)
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	for suffix, field := range c.envKeys() {
		if v := strings.TrimSpace(getenv(EnvPrefix + suffix)); v != "" {
			*field = v
		}
	}
	if v := strings.TrimSpace(getenv(EnvPrefix + "EXCLUDE")); v != "" {
		c.Exclude = strings.Split(v, ",")
	}
}

// Validate rejects unknown sort fields and log levels.
func (c Config) Validate() error {
	if !pipeline.ValidSortField(c.Sort) {
		return model.NewUserError(model.ErrInvalidInput, "Неверная настройка",
			"неизвестное поле сортировки %q (допустимые: %s)", c.Sort, strings.Join(pipeline.SortFields, ", "))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return model.NewUserError(model.ErrInvalidInput, "Неверная настройка", "%v", err)
	}
	return nil
}

// Resolve returns a copy with every relative path joined onto root.
func (c Config) Resolve(root string) Config {
	for _, p := range []*string{&c.SchliffsDir, &c.ConditionsDir, &c.Readme, &c.ReadmeRU, &c.JSONOut, &c.SiteDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(root, *p)
		}
	}
	return c
}
