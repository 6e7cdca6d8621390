package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Board struct {
	Name string `yaml:"name"` // display name, also the identity prefix
	URL  string `yaml:"url"`  // Ashby posting-api board URL
}

type Config struct {
	Boards []Board `yaml:"boards"`

	State struct {
		File string `yaml:"file"` // relative to the data dir
	} `yaml:"state"`

	Archive struct {
		Enabled bool   `yaml:"enabled"`
		File    string `yaml:"file"`
	} `yaml:"archive"`

	Fetch struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"fetch"`

	Notify struct {
		Heartbeat         bool    `yaml:"heartbeat"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RetryDelaySeconds int     `yaml:"retry_delay_seconds"`
		MessagesPerSecond float64 `yaml:"messages_per_second"`
		SnippetMaxRunes   int     `yaml:"snippet_max_runes"`
	} `yaml:"notify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.State.File == "" {
		cfg.State.File = "jobs.json"
	}
	if cfg.Archive.File == "" {
		cfg.Archive.File = "jobwatch.db"
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		cfg.Fetch.TimeoutSeconds = 15
	}
	if cfg.Notify.TimeoutSeconds <= 0 {
		cfg.Notify.TimeoutSeconds = 10
	}
	if cfg.Notify.RetryDelaySeconds <= 0 {
		cfg.Notify.RetryDelaySeconds = 5
	}
	if cfg.Notify.MessagesPerSecond <= 0 {
		cfg.Notify.MessagesPerSecond = 1.0
	}
	if cfg.Notify.SnippetMaxRunes <= 0 {
		cfg.Notify.SnippetMaxRunes = 200
	}
}
