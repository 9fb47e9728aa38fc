// Package config decodes the run configuration from viper. Values come from
// flags, MERITRANK_* environment variables and an optional meritrank.yaml,
// in that order of precedence.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/pavelanni/meritrank/internal/i18n"
	"github.com/pavelanni/meritrank/internal/model"
	"github.com/pavelanni/meritrank/internal/population"
	"github.com/pavelanni/meritrank/internal/store"
)

// Config is everything needed to build a population and run a command.
type Config struct {
	Students    int    `mapstructure:"students"`
	Seed        uint64 `mapstructure:"seed"` // 0 picks a time-based seed
	Addresses   string `mapstructure:"addresses"`
	Catalog     string `mapstructure:"catalog"` // empty selects the embedded catalog
	AccountBase int64  `mapstructure:"account-base"`
	Program     string `mapstructure:"program"`
	Lang        string `mapstructure:"lang"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("students", population.DefaultSize)
	v.SetDefault("seed", 0)
	v.SetDefault("addresses", "direcciones.txt")
	v.SetDefault("catalog", "")
	v.SetDefault("account-base", store.DefaultAccountBase)
	v.SetDefault("program", model.DefaultProgram)
	v.SetDefault("lang", i18n.DefaultLang)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Lang = strings.ToLower(cfg.Lang)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	const op = "config.Validate"
	switch {
	case c.Students < 0:
		return model.InvalidInput(op, "students must not be negative, got %d", c.Students)
	case c.AccountBase <= 0:
		return model.InvalidInput(op, "account-base must be positive, got %d", c.AccountBase)
	case strings.TrimSpace(c.Program) == "":
		return model.InvalidInput(op, "program must not be empty")
	case !i18n.IsSupported(c.Lang):
		return model.InvalidInput(op, "unsupported language %q (want one of %s)", c.Lang, strings.Join(i18n.Supported, ", "))
	case !slices.Contains(logLevels, c.LogLevel):
		return model.InvalidInput(op, "unknown log level %q", c.LogLevel)
	case !slices.Contains(logFormats, c.LogFormat):
		return model.InvalidInput(op, "unknown log format %q", c.LogFormat)
	}
	return nil
}
