// Package config resolves runtime settings from defaults, STUDYPLAN_*
// environment variables and command-line flags. Nothing is read from or
// written to disk.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/logger"
)

// ErrConfiguration wraps every configuration failure.
var ErrConfiguration = errors.New("configuration error")

const (
	EnvPrefix = "STUDYPLAN"

	DefaultLogLevel  = "warn"
	DefaultServeAddr = "127.0.0.1:8080"
)

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error fatal"`
	File  string `mapstructure:"file"`
	Debug bool   `mapstructure:"debug"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

// Config is the resolved application configuration.
type Config struct {
	// APIKey is an optional pre-filled credential. It is held in memory only.
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint" validate:"required,url"`
	Model    string        `mapstructure:"model" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Log      LogConfig     `mapstructure:"log"`
	Serve    ServeConfig   `mapstructure:"serve"`
}

// LLM returns the completion client settings.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		Endpoint: c.Endpoint,
		Model:    c.Model,
		Timeout:  c.Timeout,
	}
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level: c.Log.Level,
		File:  c.Log.File,
		Debug: c.Log.Debug,
	}
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	defaults := llm.DefaultConfig()
	v.SetDefault("api_key", "")
	v.SetDefault("endpoint", defaults.Endpoint)
	v.SetDefault("model", defaults.Model)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("serve.addr", DefaultServeAddr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps config keys onto flags. Flags absent from fs are skipped so
// commands can bind only what they define.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("%w: binding --%s: %v", ErrConfiguration, flag, err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &cfg, nil
}
