package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/aretw0/penrose/pkg/schema"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. PENROSE_REDIS_ADDR.
const EnvPrefix = "PENROSE"

// SegmentFormats lists the encodings accepted by the generate and batch commands.
var SegmentFormats = []string{"json", "yaml", "csv", "text"}

// Config holds CLI configuration.
type Config struct {
	Depth         int     `mapstructure:"depth"`
	Length        float64 `mapstructure:"length"`
	Tiling        string  `mapstructure:"tiling"`
	TilingFile    string  `mapstructure:"tiling_file"`
	Catalog       string  `mapstructure:"catalog"`
	Format        string  `mapstructure:"format"`
	MaxDepth      int     `mapstructure:"max_depth"`
	SegmentBudget int     `mapstructure:"segment_budget"`
	ExactPasses   bool    `mapstructure:"exact_passes"`
	Debug         bool    `mapstructure:"debug"`

	HTTP  HTTPConfig  `mapstructure:"http"`
	Redis RedisConfig `mapstructure:"redis"`
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// RedisConfig holds the shared result cache settings. An empty Addr keeps the cache in memory.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Compress bool          `mapstructure:"compress"`
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"depth":          "depth",
	"length":         "length",
	"tiling":         "tiling",
	"tiling_file":    "tiling-file",
	"catalog":        "catalog",
	"format":         "format",
	"max_depth":      "max-depth",
	"segment_budget": "segment-budget",
	"exact_passes":   "exact-passes",
	"debug":          "debug",
	"http.port":      "port",
	"redis.addr":     "redis-addr",
	"redis.ttl":      "redis-ttl",
}

// Load layers defaults, an optional config file, PENROSE_* environment
// variables and explicitly set flags, in increasing precedence.
// path selects the config file; when empty, PENROSE_CONFIG or ./penrose.{yaml,toml} is used.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("depth", 4)
	v.SetDefault("length", 10.0)
	v.SetDefault("tiling", domain.PenroseName)
	v.SetDefault("tiling_file", "")
	v.SetDefault("catalog", "")
	v.SetDefault("format", "json")
	v.SetDefault("max_depth", 5)
	v.SetDefault("segment_budget", 0)
	v.SetDefault("exact_passes", false)
	v.SetDefault("debug", false)
	v.SetDefault("http.port", 8080)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("redis.compress", true)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("penrose")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ValidateFormat rejects unknown output formats with a suggestion.
func (c Config) ValidateFormat() error {
	if err := schema.Enum(SegmentFormats...).Validate(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return nil
}
