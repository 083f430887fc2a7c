// Package config loads errnogen settings from an optional YAML file and
// ERRNOGEN_* environment variables.
package config

import (
	"errors"
	"strings"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/spf13/viper"

	"github.com/user/errnogen/internal/codegen"
	"github.com/user/errnogen/internal/model"
)

const (
	// DefaultConfigName is looked up as errnogen.yaml in the working directory.
	DefaultConfigName = "errnogen"
	// DefaultOutput is the header written by generate.
	DefaultOutput = "errno_def.h"
	// DefaultSnapshotDB is the database used by the snapshot commands.
	DefaultSnapshotDB = "errno.db"
	// EnvPrefix prefixes environment overrides, e.g. ERRNOGEN_OUTPUT.
	EnvPrefix = "ERRNOGEN"
)

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds every setting a command may read.
type Config struct {
	Output      string         `mapstructure:"output"`
	Source      string         `mapstructure:"source"`
	Order       string         `mapstructure:"order"`
	SnapshotDB  string         `mapstructure:"snapshot_db"`
	MetricsFile string         `mapstructure:"metrics_file"`
	Format      codegen.Format `mapstructure:"format"`
	Log         LogConfig      `mapstructure:"log"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// Load reads configuration. An explicit path must exist; without one,
// errnogen.yaml in the working directory is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output", DefaultOutput)
	v.SetDefault("source", "host")
	v.SetDefault("order", string(model.OrderName))
	v.SetDefault("snapshot_db", DefaultSnapshotDB)
	v.SetDefault("metrics_file", "")
	v.SetDefault("format.tool", codegen.DefaultTool)
	v.SetDefault("format.macro", codegen.DefaultMacro)
	v.SetDefault("format.wrap", codegen.DefaultWrap)
	v.SetDefault("format.register", codegen.DefaultRegister)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "failed to decode config")
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := model.ParseOrder(c.Order); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidConfig, "invalid order")
	}
	if strings.TrimSpace(c.Output) == "" {
		return platformerrors.New(platformerrors.CodeInvalidConfig, "output must not be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return platformerrors.Newf(platformerrors.CodeInvalidConfig, "invalid log format %q", c.Log.Format)
	}
	return nil
}
