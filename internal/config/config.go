// Package config loads service configuration from an optional JSON file
// with environment-variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Assets     AssetsConfig     `json:"assets"`
	Processing ProcessingConfig `json:"processing"`
	Logging    LoggingConfig    `json:"logging"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// AssetsConfig locates the form template and fonts. URLs may be https://
// or s3://bucket/key.
type AssetsConfig struct {
	// TemplateURLs maps grade ("1".."6") to that grade's form template.
	TemplateURLs   map[string]string `json:"template_urls"`
	RegularFontURL string            `json:"regular_font_url"`
	BoldFontURL    string            `json:"bold_font_url"`
	TitleFontURL   string            `json:"title_font_url"`
	FetchTimeout   time.Duration     `json:"fetch_timeout"`
}

// ProcessingConfig tunes pipeline policies.
type ProcessingConfig struct {
	// OverflowPolicy is "reject" or "truncate" for gender groups larger
	// than the template's slot capacity.
	OverflowPolicy string `json:"overflow_policy"`
	// StrictGender fails the run on students whose roster gender is not
	// one of the two recognized values instead of dropping them.
	StrictGender bool `json:"strict_gender"`
	// RunTTL is how long generated files stay downloadable.
	RunTTL time.Duration `json:"run_ttl"`
	// CleanupSchedule is the cron expression for purging expired runs.
	CleanupSchedule string `json:"cleanup_schedule"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

func defaultConfig() *Config {
	templateURL := "https://68ialhn9h2.ufs.sh/f/5234b4e8-92e5-4934-bc32-2fe376e43760-1javl8.pdf"
	templates := make(map[string]string, 6)
	for _, grade := range []string{"1", "2", "3", "4", "5", "6"} {
		templates[grade] = templateURL
	}

	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Assets: AssetsConfig{
			TemplateURLs:   templates,
			RegularFontURL: "https://68ialhn9h2.ufs.sh/f/pK4nD7CymfwDyRg3H4EsbVR3ALxUmWQezgiYId5G2H9MTPSv",
			BoldFontURL:    "https://68ialhn9h2.ufs.sh/f/pK4nD7CymfwD1CcICKzGj4mEaiNZzkFnbyhver0O8ScVfsYp",
			TitleFontURL:   "https://68ialhn9h2.ufs.sh/f/pK4nD7CymfwDfwlmA1uCxXVGRnoBmhADsIi58ZgW2ptSTuHe",
			FetchTimeout:   30 * time.Second,
		},
		Processing: ProcessingConfig{
			OverflowPolicy:  "reject",
			StrictGender:    false,
			RunTTL:          time.Hour,
			CleanupSchedule: "@every 10m",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if url := os.Getenv("TEMPLATE_URL"); url != "" {
		for grade := range config.Assets.TemplateURLs {
			config.Assets.TemplateURLs[grade] = url
		}
	}
	if url := os.Getenv("REGULAR_FONT_URL"); url != "" {
		config.Assets.RegularFontURL = url
	}
	if url := os.Getenv("BOLD_FONT_URL"); url != "" {
		config.Assets.BoldFontURL = url
	}
	if url := os.Getenv("TITLE_FONT_URL"); url != "" {
		config.Assets.TitleFontURL = url
	}
	if policy := os.Getenv("OVERFLOW_POLICY"); policy != "" {
		config.Processing.OverflowPolicy = policy
	}
	if strict := os.Getenv("STRICT_GENDER"); strict != "" {
		config.Processing.StrictGender = strict == "true"
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetServerAddr returns the server address.
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
