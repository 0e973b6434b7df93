package bookkbot

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setTestEnv(t *testing.T) {
	env := map[string]string{
		"SLACK_API_TOKEN":      "xoxb-token",
		"SLACK_SIGNING_SECRET": "signing-secret",
		"OG_APP_ID":            "og-app-id",
		"BOOKS_CHANNEL":        "C1AB2C3DE",
		"NOTION_SECRET_KEY":    "notion-secret",
		"NOTION_DATABASE_ID":   "notion-db",
	}
	for key, value := range env {
		if err := os.Setenv(key, value); err != nil {
			t.Fatal(err)
		}
	}
	t.Cleanup(func() {
		for key := range env {
			_ = os.Unsetenv(key)
		}
		_ = os.Unsetenv("LISTEN_ADDR")
	})
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	setTestEnv(t)

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "xoxb-token", cfg.SlackAPIToken)
	assert.Equal(t, "signing-secret", cfg.SlackSigningSecret)
	assert.Equal(t, "og-app-id", cfg.OGAppID)
	assert.Equal(t, "C1AB2C3DE", cfg.BooksChannel)
	assert.Equal(t, "notion-secret", cfg.NotionSecretKey)
	assert.Equal(t, "notion-db", cfg.NotionDatabaseID)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, defaultArchiveQueueSize, cfg.ArchiveQueueSize)
}

func TestLoadConfigOverridesListenAddr(t *testing.T) {
	setTestEnv(t)
	_ = os.Setenv("LISTEN_ADDR", ":9000")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
}

func TestLoadConfigRequiresSlackToken(t *testing.T) {
	setTestEnv(t)
	_ = os.Unsetenv("SLACK_API_TOKEN")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestValidateRequiresEveryCredential(t *testing.T) {
	base := testConfig()
	assert.NoError(t, base.Validate())

	broken := []func(*Config){
		func(c *Config) { c.SlackAPIToken = "" },
		func(c *Config) { c.SlackSigningSecret = "" },
		func(c *Config) { c.OGAppID = "" },
		func(c *Config) { c.BooksChannel = "" },
		func(c *Config) { c.NotionSecretKey = "" },
		func(c *Config) { c.NotionDatabaseID = "" },
		func(c *Config) { c.ArchiveQueueSize = 0 },
	}

	for i, mutate := range broken {
		cfg := testConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), i)
	}
}
