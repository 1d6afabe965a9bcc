package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Dataset DatasetConfig `mapstructure:"dataset"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LLMConfig struct {
	Provider  string        `mapstructure:"provider"`
	Model     string        `mapstructure:"model"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type DatasetConfig struct {
	// Path to a JSON snapshot of the six tables. Empty means the embedded
	// sample dataset.
	Path string `mapstructure:"path"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is fine; every setting has a default.
func LoadConfig() (*Config, error) {
	// Optional .env for local development, mirroring the original backend.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.maersk-copilot/")
	v.AddConfigPath("/etc/maersk-copilot/")

	// Enable environment variable override with COPILOT_ prefix
	v.SetEnvPrefix("COPILOT")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.5-pro")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("llm.timeout", time.Minute)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
