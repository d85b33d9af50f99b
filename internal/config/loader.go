package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "portfolio.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORTFOLIO_PORT")
	setString(&cfg.Server.CORSOrigin, "PORTFOLIO_CORS_ORIGIN")
	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.OpenAI.Model, "PORTFOLIO_MODEL")
	setDuration(&cfg.OpenAI.Timeout, "PORTFOLIO_OPENAI_TIMEOUT")
	setString(&cfg.Notifier.Provider, "PORTFOLIO_NOTIFIER")
	setString(&cfg.Notifier.PushoverToken, "PUSHOVER_TOKEN")
	setString(&cfg.Notifier.PushoverUser, "PUSHOVER_USER")
	setString(&cfg.Notifier.DiscordWebhook, "DISCORD_WEBHOOK_URL")
	setDuration(&cfg.Notifier.Timeout, "PORTFOLIO_NOTIFIER_TIMEOUT")
	setString(&cfg.Profile.Name, "PORTFOLIO_PROFILE_NAME")
	setString(&cfg.Profile.SummaryPath, "PORTFOLIO_SUMMARY_PATH")
	setString(&cfg.Profile.LinkedInPDF, "PORTFOLIO_LINKEDIN_PDF")
	setString(&cfg.Catalog.ProjectsCSV, "PORTFOLIO_PROJECTS_CSV")
	setString(&cfg.Catalog.MetadataJSON, "PORTFOLIO_METADATA_JSON")
	setInt(&cfg.Agent.MaxToolRounds, "PORTFOLIO_MAX_TOOL_ROUNDS")
	setString(&cfg.Logging.Level, "PORTFOLIO_LOG_LEVEL")
	setString(&cfg.Logging.Service, "PORTFOLIO_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "PORTFOLIO_LOG_ASYNC")
	setInt64(&cfg.Cache.MaxBytes, "PORTFOLIO_CACHE_MAX_BYTES")
	setDuration(&cfg.Cache.TTL, "PORTFOLIO_CACHE_TTL")
	setString(&cfg.GitHub.Token, "GITHUB_TOKEN")
	setString(&cfg.GitHub.APIBase, "PORTFOLIO_GITHUB_API")
	setString(&cfg.Tagger.APIKey, "DEEPSEEK_API_KEY")
	setString(&cfg.Tagger.BaseURL, "PORTFOLIO_TAGGER_BASE_URL")
	setString(&cfg.Tagger.Model, "PORTFOLIO_TAGGER_MODEL")
	setInt(&cfg.Tagger.MaxConcurrent, "PORTFOLIO_TAGGER_CONCURRENCY")
	setInt(&cfg.Tagger.MaxDocChars, "PORTFOLIO_TAGGER_MAX_DOC_CHARS")
	setString(&cfg.Tagger.ReposCSV, "PORTFOLIO_TAGGER_REPOS_CSV")
}

// validate rejects configurations the server cannot start with.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port must not be empty")
	}
	if cfg.Agent.MaxToolRounds < 1 {
		return errors.New("agent.max_tool_rounds must be at least 1")
	}
	if cfg.Cache.MaxBytes < 1 {
		return errors.New("cache.max_bytes must be positive")
	}
	switch cfg.Notifier.Provider {
	case "", "pushover", "discord":
	default:
		return fmt.Errorf("notifier.provider %q is not supported", cfg.Notifier.Provider)
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, env string) {
	if v := os.Getenv(env); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, env string) {
	if v := os.Getenv(env); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
