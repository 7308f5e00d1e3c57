// Package config loads catalyst settings from defaults, an optional YAML
// file, .env, CATALYST_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CATALYST"

// DefaultAPIURL is the content source used when nothing else is configured.
// It matches the address of `catalyst fixture serve`.
const DefaultAPIURL = "http://localhost:8787"

// DefaultTimeout bounds each content-source request.
const DefaultTimeout = 30 * time.Second

// Config holds the resolved settings.
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LogLevel    string        `mapstructure:"log_level"`
	LogFile     string        `mapstructure:"log_file"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"api-url":      "api_url",
	"timeout":      "timeout",
	"log-level":    "log_level",
	"log-file":     "log_file",
	"metrics-addr": "metrics_addr",
}

// Load resolves configuration. cfgFile, when set, must exist; otherwise
// catalyst.yaml is searched in the working directory and
// $HOME/.config/catalyst. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	// .env is optional
	_ = godotenv.Load() //nolint:errcheck

	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_addr", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("catalyst")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "catalyst"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot work with.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("config: api_url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("config: api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: api_url must be http(s), got %q", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("config: api_url has no host: %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
