package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "2022-06-28", cfg.Notion.Version)
	assert.Equal(t, "Name", cfg.Notion.TitleProperty)
	assert.Equal(t, 9, cfg.Calendar.DayStartHour)
	assert.Equal(t, 17, cfg.Calendar.DayEndHour)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.NotionEnabled())
	assert.False(t, cfg.CalendarEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NOTION_TOKEN", "secret")
	t.Setenv("NOTION_PAGE_ID", "page-1")
	t.Setenv("CHAT_PERSIST_TRIGGERS", "put this in notion,save to notion")
	t.Setenv("LLM_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.NotionEnabled())
	assert.Equal(t, []string{"put this in notion", "save to notion"}, cfg.Chat.PersistTriggers)
	assert.Equal(t, 5*time.Minute, cfg.LLM.CacheTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080", Environment: "development", MaxUploadBytes: 1024, MaxAudioBytes: 4096},
			Calendar: CalendarConfig{DayStartHour: 9, DayEndHour: 17},
			JWT:      JWTConfig{Secret: "s"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "inverted working hours", mutate: func(c *Config) { c.Calendar.DayStartHour = 18 }, wantErr: true},
		{name: "default secret in production", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.Secret = "your-session-secret-change-in-production"
		}, wantErr: true},
		{name: "zero audio limit", mutate: func(c *Config) { c.Server.MaxAudioBytes = 0 }, wantErr: true},
		{name: "missing integrations are fine", mutate: func(c *Config) {
			c.Notion = NotionConfig{}
			c.Calendar.ClientID = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
