package bookkbot

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config captures all configuration, sourced from the environment.
type Config struct {
	ListenAddr         string `mapstructure:"listen_addr"`
	SlackAPIToken      string `mapstructure:"slack_api_token"`
	SlackSigningSecret string `mapstructure:"slack_signing_secret"`
	OGAppID            string `mapstructure:"og_app_id"`
	BooksChannel       string `mapstructure:"books_channel"`
	NotionSecretKey    string `mapstructure:"notion_secret_key"`
	NotionDatabaseID   string `mapstructure:"notion_database_id"`
	ArchiveQueueSize   int    `mapstructure:"archive_queue_size"`
}

// LoadConfig builds a Config from the environment.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	for _, key := range []string{
		"listen_addr",
		"slack_api_token",
		"slack_signing_secret",
		"og_app_id",
		"books_channel",
		"notion_secret_key",
		"notion_database_id",
		"archive_queue_size",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("archive_queue_size", defaultArchiveQueueSize)
}

// Validate enforces required credentials.
func (c Config) Validate() error {
	if c.SlackAPIToken == "" {
		return fmt.Errorf("slack_api_token must be set")
	}
	if c.SlackSigningSecret == "" {
		return fmt.Errorf("slack_signing_secret must be set")
	}
	if c.OGAppID == "" {
		return fmt.Errorf("og_app_id must be set")
	}
	if c.BooksChannel == "" {
		return fmt.Errorf("books_channel must be set")
	}
	if c.NotionSecretKey == "" {
		return fmt.Errorf("notion_secret_key must be set")
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("notion_database_id must be set")
	}
	if c.ArchiveQueueSize <= 0 {
		return fmt.Errorf("archive_queue_size must be > 0")
	}
	return nil
}
