// Package config loads dynarray CLI configuration.
//
// Values are layered, highest priority first:
//  1. Command-line flags (--db, --list, --format)
//  2. DYNARRAY_* environment variables (DYNARRAY_DATABASE, DYNARRAY_LIST, ...)
//  3. The config file (--config, or .dynarray.yaml in the working directory)
//  4. Built-in defaults
//
// The merged result is validated against an embedded CUE schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//go:embed schema.cue
var schemaCUE string

// Defaults.
const (
	DefaultDatabase = "dynarray.db"
	DefaultList     = "default"
	DefaultLogLevel = "info"
	DefaultFormat   = "text"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "DYNARRAY"

// Config holds CLI settings.
type Config struct {
	Database string `mapstructure:"database" json:"database"`
	List     string `mapstructure:"list" json:"list"`
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	Format   string `mapstructure:"format" json:"format"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"db":     "database",
	"list":   "list",
	"format": "format",
}

// Load builds a Config from defaults, the config file, the environment and
// flags. path selects an explicit config file; when empty, .dynarray.yaml in
// the working directory is used if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("database", DefaultDatabase)
	v.SetDefault("list", DefaultList)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("format", DefaultFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".dynarray")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidationError lists every schema violation found in a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks c against the #Config schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Problems: describe(err)}
	}
	return nil
}

// describe flattens a CUE error into "path: message" strings.
func describe(err error) []string {
	var problems []string
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := strings.Join(e.Path(), "."); path != "" {
			msg = path + ": " + msg
		}
		problems = append(problems, msg)
	}
	return problems
}

// SlogLevel maps LogLevel onto a slog level. Unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
