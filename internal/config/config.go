// Package config provides hierarchical configuration loading for the
// portfolio agent. Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the portfolio agent service
// and the offline tagger pipeline.
type Config struct {
	Server   Server   `yaml:"server"`
	OpenAI   OpenAI   `yaml:"openai"`
	Notifier Notifier `yaml:"notifier"`
	Profile  Profile  `yaml:"profile"`
	Catalog  Catalog  `yaml:"catalog"`
	Agent    Agent    `yaml:"agent"`
	Logging  Logging  `yaml:"logging"`
	Cache    Cache    `yaml:"cache"`
	GitHub   GitHub   `yaml:"github"`
	Tagger   Tagger   `yaml:"tagger"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// OpenAI holds chat-completion API configuration.
type OpenAI struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Notifier selects and configures the push-notification provider.
type Notifier struct {
	Provider       string        `yaml:"provider"` // "pushover" | "discord" | "" (disabled)
	PushoverToken  string        `yaml:"pushover_token"`
	PushoverUser   string        `yaml:"pushover_user"`
	DiscordWebhook string        `yaml:"discord_webhook"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Profile holds the paths to the professional profile sources.
type Profile struct {
	Name        string `yaml:"name"`
	SummaryPath string `yaml:"summary_path"`
	LinkedInPDF string `yaml:"linkedin_pdf"`
}

// Catalog holds the paths to the tagged-project dataset.
type Catalog struct {
	ProjectsCSV  string `yaml:"projects_csv"`
	MetadataJSON string `yaml:"metadata_json"`
}

// Agent holds conversation-loop configuration.
type Agent struct {
	MaxToolRounds int `yaml:"max_tool_rounds"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Cache holds the read-endpoint response cache configuration.
type Cache struct {
	MaxBytes int64         `yaml:"max_bytes"`
	TTL      time.Duration `yaml:"ttl"`
}

// GitHub holds the repository scraper configuration.
type GitHub struct {
	Token   string `yaml:"token"`
	APIBase string `yaml:"api_base"`
}

// Tagger holds the offline classification pipeline configuration. The
// classifier talks to an OpenAI-compatible endpoint, which in practice is
// DeepSeek; that is why it carries its own credentials and base URL.
type Tagger struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	MaxConcurrent int    `yaml:"max_concurrent"`
	MaxDocChars   int    `yaml:"max_doc_chars"`
	ReposCSV      string `yaml:"repos_csv"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "*",
		},
		OpenAI: OpenAI{
			Model:   "gpt-4o-mini",
			Timeout: 120 * time.Second,
		},
		Notifier: Notifier{
			Provider: "pushover",
			Timeout:  5 * time.Second,
		},
		Profile: Profile{
			Name:        "Claudio Quispe Alarcon",
			SummaryPath: "me/summary.txt",
			LinkedInPDF: "me/linkedin.pdf",
		},
		Catalog: Catalog{
			ProjectsCSV:  "datasets/resumen/repos_con_tags_dinamicos.csv",
			MetadataJSON: "datasets/resumen/metadata_dinamica.json",
		},
		Agent: Agent{
			MaxToolRounds: 10,
		},
		Logging: Logging{
			Level:   "info",
			Service: "portfolio-agent",
		},
		Cache: Cache{
			MaxBytes: 8 << 20,
			TTL:      time.Minute,
		},
		GitHub: GitHub{
			APIBase: "https://api.github.com",
		},
		Tagger: Tagger{
			BaseURL:       "https://api.deepseek.com/v1",
			Model:         "deepseek-chat",
			MaxConcurrent: 4,
			MaxDocChars:   4000,
			ReposCSV:      "datasets/repos_documentacion.csv",
		},
	}
}
