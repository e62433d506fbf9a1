// Package config loads tutor settings from defaults, an optional YAML file,
// a .env file and TUTOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/logging"
	"github.com/abhisek/tutor/internal/tutor"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use
// underscores, e.g. TUTOR_LLM_PROVIDER or TUTOR_TUTOR_TEMPERATURE.
const EnvPrefix = "TUTOR"

// Config is the complete application configuration.
type Config struct {
	LLM    llm.Config   `mapstructure:"llm"`
	Tutor  tutor.Config `mapstructure:"tutor"`
	Log    LogConfig    `mapstructure:"log"`
	DB     string       `mapstructure:"db"`
	Server ServerConfig `mapstructure:"server"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Options selects where configuration is read from.
type Options struct {
	// File is an explicit config file. When empty, tutor.yaml is searched
	// for in the working directory and the user config directories.
	File string

	// EnvFile is the dotenv file to load. Defaults to ".env"; a missing
	// file is not an error.
	EnvFile string
}

// Load resolves the configuration. Values from the environment override the
// config file, which overrides the defaults.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("tutor")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.FillStandardKey()

	return &cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Tutor.Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	t := tutor.DefaultConfig()
	v.SetDefault("tutor.temperature", t.Temperature)
	v.SetDefault("tutor.max_tokens", t.MaxTokens)
	v.SetDefault("tutor.history_window", t.HistoryWindow)
	v.SetDefault("tutor.timeout", t.Timeout)
	v.SetDefault("tutor.extractor", t.Extractor)

	v.SetDefault("log.level", "info")
	v.SetDefault("db", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 2*time.Minute)
}

func searchPaths() []string {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "tutor"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tutor"))
	}
	return paths
}

// loadEnvFile exports the variables in path without overriding ones that
// are already set.
func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
