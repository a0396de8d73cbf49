package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the annotator service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Forward   ForwardConfig   `mapstructure:"forward"`
	Suggest   SuggestConfig   `mapstructure:"suggest"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Listen   string `mapstructure:"listen"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// StorageConfig contains storage and persistence settings
type StorageConfig struct {
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// SQLiteConfig contains the embedded database settings
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

func (s SQLiteConfig) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("storage.sqlite.path required")
	}
	return nil
}

// ForwardConfig points suggestion traffic at an external generator. When URL
// is empty the forwarding stage is skipped entirely.
type ForwardConfig struct {
	URL string `mapstructure:"url"`
}

// SuggestConfig controls the suggestion pipeline defaults.
type SuggestConfig struct {
	Provider string        `mapstructure:"provider"`
	Count    int           `mapstructure:"count"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (s SuggestConfig) Validate() error {
	switch s.Provider {
	case "", "openai", "openrouter":
	default:
		return fmt.Errorf("suggest.provider must be openai or openrouter, got %q", s.Provider)
	}
	if s.Count < 0 {
		return fmt.Errorf("suggest.count cannot be negative")
	}
	return nil
}

// ProvidersConfig contains LLM provider configurations
type ProvidersConfig struct {
	OpenAI     ProviderConfig `mapstructure:"openai"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
}

// ProviderConfig represents a single LLM provider configuration
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// LoadConfig loads config from file. A missing config file is fine; defaults
// and ANNOTATOR_* environment variables still apply.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("json")   // REQUIRED if the config file does not have the extension in the name
	viper.SetDefault("general.listen", ":8000")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("storage.sqlite.path", "expert_annotator.db")
	viper.SetDefault("suggest.provider", "openrouter")
	viper.SetDefault("suggest.count", 3)
	viper.SetDefault("suggest.timeout", 30*time.Second)

	if path == "" {
		viper.AddConfigPath("./config") // path to look for the config file in
		viper.AddConfigPath(".")        // optionally look for config in the working directory
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)                                // bin/
		viper.AddConfigPath(filepath.Join(exeDir, ".."))           // repo root
		viper.AddConfigPath(filepath.Join(exeDir, "..", "config")) // repo root/config
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("ANNOTATOR")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv() // read in environment variables that match (ANNOTATOR_*)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	// unmarshal config
	var config Config

	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	// Bare provider keys in the environment beat nothing configured at all.
	if config.Providers.OpenAI.APIKey == "" {
		config.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config.Providers.OpenRouter.APIKey == "" {
		config.Providers.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}

	if err := config.Storage.SQLite.Validate(); err != nil {
		panic(err)
	}
	if err := config.Suggest.Validate(); err != nil {
		panic(err)
	}
	return &config
}
