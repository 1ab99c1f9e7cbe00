// Package config loads settings from an optional YAML file, INVEST_*
// environment variables and built-in defaults, in that order of precedence
// below explicitly bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/komsit37/invest/pkg/invest/growth"
)

const EnvPrefix = "INVEST"

type Config struct {
	Log     LogConfig
	Server  ServerConfig
	Latency LatencyConfig
	Growth  GrowthConfig
	Render  RenderConfig
	Thesis  ThesisConfig
	// Dataset is a YAML file or directory; empty uses the bundled dataset.
	Dataset string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type ServerConfig struct {
	Addr string
}

type LatencyConfig struct {
	Thesis time.Duration
	Screen time.Duration
}

type GrowthConfig struct {
	Years int
}

type RenderConfig struct {
	MaxColWidth int
}

type ThesisConfig struct {
	Seed      int64
	CacheTTL  time.Duration
	CacheSize int
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("latency.thesis", 3*time.Second)
	v.SetDefault("latency.screen", 1500*time.Millisecond)
	v.SetDefault("growth.years", 20)
	v.SetDefault("render.max_col_width", 40)
	v.SetDefault("thesis.seed", 0)
	v.SetDefault("thesis.cache_ttl", 10*time.Minute)
	v.SetDefault("thesis.cache_size", 128)
	v.SetDefault("dataset", "")
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// FromViper decodes the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	c := Config{
		Log:     LogConfig{Level: v.GetString("log.level"), Pretty: v.GetBool("log.pretty")},
		Server:  ServerConfig{Addr: v.GetString("server.addr")},
		Latency: LatencyConfig{Thesis: v.GetDuration("latency.thesis"), Screen: v.GetDuration("latency.screen")},
		Growth:  GrowthConfig{Years: v.GetInt("growth.years")},
		Render:  RenderConfig{MaxColWidth: v.GetInt("render.max_col_width")},
		Thesis: ThesisConfig{
			Seed:      v.GetInt64("thesis.seed"),
			CacheTTL:  v.GetDuration("thesis.cache_ttl"),
			CacheSize: v.GetInt("thesis.cache_size"),
		},
		Dataset: v.GetString("dataset"),
	}
	return c, c.Validate()
}

// Load reads defaults, environment and the optional file at path.
func Load(path string) (Config, error) {
	v := New()
	if err := ReadFile(v, path); err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

func (c Config) Validate() error {
	var errs []error
	if c.Latency.Thesis < 0 || c.Latency.Screen < 0 {
		errs = append(errs, errors.New("latency must not be negative"))
	}
	if err := growth.CheckYears(c.Growth.Years); err != nil {
		errs = append(errs, fmt.Errorf("growth.years: %w", err))
	}
	if c.Thesis.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("thesis.cache_size must be >= 1, got %d", c.Thesis.CacheSize))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	return errors.Join(errs...)
}
