package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigPath is read when present; BOOKREC_CONFIG overrides it
const DefaultConfigPath = "configs/config.yaml"

// Load reads .env files, then the config file, then the environment.
// The returned config is validated.
func Load() (*Config, error) {
	// Existing variables win over .env files
	loadDotEnv(".env.local")
	loadDotEnv(".env")

	path := os.Getenv("BOOKREC_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg, err := LoadFrom(path, explicit)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom merges defaults, the YAML file at path and the environment.
// A missing file is only an error when required is true.
func LoadFrom(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if path != "" {
		if err := loadConfigFile(v, path, required); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvAliases(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKeyFromEnv(cfg.LLM.Provider)
	}

	return &cfg, nil
}

// loadDotEnv loads an optional .env file. A missing file is expected, anything
// else is logged and skipped.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] Failed to load %s: %v", path, err)
		return err
	}
	return nil
}

// loadConfigFile reads the file, expands ${VAR} references and merges it into v
func loadConfigFile(v *viper.Viper, path string, required bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(content))
	if err := v.MergeConfig(strings.NewReader(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// bindEnvAliases maps conventional variable names onto config keys
func bindEnvAliases(v *viper.Viper) {
	v.BindEnv("app.env", "APP_ENV", "ENV")
	v.BindEnv("server.port", "SERVER_PORT", "PORT")
	v.BindEnv("server.allowed_origins", "SERVER_ALLOWED_ORIGINS", "ALLOWED_ORIGINS")
	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.api_key", "LLM_API_KEY")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
}

// providerKeyFromEnv returns the provider's conventional API key variable
func providerKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_GEMINI_KEY")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "book-recommender")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "bookrec_session")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")
}
