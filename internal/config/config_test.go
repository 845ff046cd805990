package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(5000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultPageSize, cfg.UI.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.False(t, cfg.Session.SecureCookies)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, "0 3 * * *", cfg.Export.Schedule)
	assert.False(t, cfg.Export.ScheduleEnabled)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PAGE_SIZE", "4")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("EXPORT_SCHEDULE_ENABLED", "true")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.UI.PageSize)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.True(t, cfg.Export.ScheduleEnabled)
}

func TestResolvedAPIBaseURL(t *testing.T) {
	cfg := &Config{HTTP: HTTP{Host: "0.0.0.0", Port: 5000}}
	assert.Equal(t, "http://127.0.0.1:5000/api", cfg.ResolvedAPIBaseURL())

	cfg.HTTP.Host = "books.local"
	assert.Equal(t, "http://books.local:5000/api", cfg.ResolvedAPIBaseURL())

	cfg.UI.APIBaseURL = "https://catalog.example.com/api"
	assert.Equal(t, "https://catalog.example.com/api", cfg.ResolvedAPIBaseURL())
}
