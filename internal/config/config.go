package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Sites    []SiteConfig   `yaml:"sites"`
	App      AppConfig      `yaml:"app"`
}

type DatabaseConfig struct {
	URL                string        `yaml:"url"`
	MaxConnections     int           `yaml:"max_connections"`
	MaxIdle            int           `yaml:"max_idle"`
	ConnectionLifetime time.Duration `yaml:"connection_lifetime"`
}

type SiteConfig struct {
	Name     string        `yaml:"name"`
	BaseURL  string        `yaml:"base_url"`
	Delay    time.Duration `yaml:"delay"`
	MaxPages int           `yaml:"max_pages"`
	Enabled  bool          `yaml:"enabled"`
}

type AppConfig struct {
	DefaultSite  string    `yaml:"default_site"`
	LogLevel     string    `yaml:"log_level"`
	ExportPath   string    `yaml:"export_path"`
	PatternsFile string    `yaml:"patterns_file"`
	CLI          CLIConfig `yaml:"cli"`
}

type CLIConfig struct {
	Prompt string            `yaml:"prompt"`
	Colors map[string]string `yaml:"colors"`
}

var cfg *Config

func Load(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &Config{}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	setDefaults()

	return nil
}

func Get() *Config {
	if cfg == nil {
		LoadDefault()
	}
	return cfg
}

func GetSite(name string) (*SiteConfig, error) {
	for _, site := range Get().Sites {
		if site.Name == name {
			return &site, nil
		}
	}
	return nil, fmt.Errorf("site '%s' not found", name)
}

func GetEnabledSites() []SiteConfig {
	var enabled []SiteConfig
	for _, site := range Get().Sites {
		if site.Enabled {
			enabled = append(enabled, site)
		}
	}
	return enabled
}

func LoadDefault() {
	cfg = &Config{
		Database: DatabaseConfig{
			MaxConnections:     25,
			MaxIdle:            5,
			ConnectionLifetime: 5 * time.Minute,
		},
		Sites: []SiteConfig{
			{
				Name:     "celebforum",
				BaseURL:  "https://celebforum.to",
				Delay:    time.Second,
				MaxPages: 0,
				Enabled:  true,
			},
		},
		App: AppConfig{
			DefaultSite:  "celebforum",
			LogLevel:     "info",
			ExportPath:   "./exports",
			PatternsFile: "./site_patterns.json",
			CLI: CLIConfig{
				Prompt: "➜",
				Colors: map[string]string{
					"success": "green",
					"error":   "red",
					"warning": "yellow",
					"info":    "cyan",
				},
			},
		},
	}
}

func setDefaults() {
	if cfg.Database.MaxConnections == 0 {
		cfg.Database.MaxConnections = 25
	}
	if cfg.Database.MaxIdle == 0 {
		cfg.Database.MaxIdle = 5
	}
	if cfg.Database.ConnectionLifetime == 0 {
		cfg.Database.ConnectionLifetime = 5 * time.Minute
	}
	if cfg.App.ExportPath == "" {
		cfg.App.ExportPath = "./exports"
	}
	if cfg.App.PatternsFile == "" {
		cfg.App.PatternsFile = "./site_patterns.json"
	}
	for i := range cfg.Sites {
		if cfg.Sites[i].Delay == 0 {
			cfg.Sites[i].Delay = time.Second
		}
	}
}
