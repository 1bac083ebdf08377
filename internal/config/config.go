// Package config reads statcharts.json5.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"statcharts/lib/chart"
	"statcharts/lib/configutil"
	configlibsql "statcharts/lib/configutil/libsql"
	"statcharts/lib/i18n"
	"statcharts/lib/pxweb"
	"statcharts/lib/worldbank"
)

const FileName = "statcharts.json5"

type Cache struct {
	configlibsql.Struct
	TTLHours int  `json:"ttl_hours"`
	Disabled bool `json:"disabled"`
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

type SCB struct {
	BaseURL string `json:"base_url"`
}

type WorldBank struct {
	BaseURL string `json:"base_url"`
	// CSV is a local copy of the indicator csv, used instead of
	// downloading it.
	CSV string `json:"csv"`
}

type Config struct {
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	// Language restricts translated charts to one language, empty
	// draws every language.
	Language    string    `json:"language"`
	HttpDumpDir string    `json:"http_dump_dir"`
	Cache       Cache     `json:"cache"`
	SCB         SCB       `json:"scb"`
	WorldBank   WorldBank `json:"worldbank"`
}

func Defaults() Config {
	return Config{
		OutputDir:   "out",
		Format:      "svg",
		HttpDumpDir: "<dev_state>/http",
		Cache: Cache{
			Struct:   configlibsql.Struct{File: "<dev_state>/http_cache.db"},
			TTLHours: 30 * 24,
		},
		SCB:       SCB{BaseURL: pxweb.DefaultBaseURL},
		WorldBank: WorldBank{BaseURL: worldbank.DefaultBaseURL},
	}
}

// Load reads the config at path, or looks for statcharts.json5 from the
// working directory upwards when path is empty. A missing file leaves
// every setting at its default.
func Load(path string) (Config, error) {
	var (
		config Config
		err    error
	)
	if path != "" {
		config, err = configutil.ReadConfig[Config](path)
	} else {
		config, err = configutil.ReadRecursively[Config](FileName)
	}
	if err != nil && !(path == "" && errors.Is(err, os.ErrNotExist)) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	config, err = configutil.WithDefaults(config, Defaults())
	if err != nil {
		return Config{}, err
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	err := chart.ValidateFormat(c.Format)
	if err != nil {
		return err
	}
	if c.Language != "" {
		_, err = i18n.Parse(c.Language)
		if err != nil {
			return err
		}
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("cache ttl_hours must not be negative, got %d", c.Cache.TTLHours)
	}
	return nil
}

// Languages are the languages translated charts are drawn in.
func (c Config) Languages() []i18n.Language {
	lang, err := i18n.Parse(c.Language)
	if c.Language == "" || err != nil {
		return i18n.Languages()
	}
	return []i18n.Language{lang}
}
