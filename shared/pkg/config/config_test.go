package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Common.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, int64(65536), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, FormatText, cfg.Mail.Format)
	assert.Equal(t, 10*time.Second, cfg.Mail.SendTimeout)
	assert.Equal(t, "https://api.sendgrid.com", cfg.Mail.APIHost)
	assert.Equal(t, 5*time.Minute, cfg.Storefront.CatalogCacheTTL)
	assert.False(t, cfg.DataPlatform.Enabled)
}

func TestLoad_MailSettingsAreOptional(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("ORDER_EMAIL_FROM", "")
	t.Setenv("ORDER_EMAIL_TO", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Mail.APIKey)
}

func TestLoad_LegacyDSN(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://legacy", cfg.Postgres.DSN)
}

func TestLoad_PrimaryDSNWins(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://legacy")
	t.Setenv("POSTGRES_DSN", "postgres://primary")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://primary", cfg.Postgres.DSN)
}

func TestLoad_Format(t *testing.T) {
	t.Setenv("ORDER_EMAIL_FORMAT", " HTML ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, cfg.Mail.Format)

	t.Setenv("ORDER_EMAIL_FORMAT", "markdown")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example,https://admin.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_RejectsNonPositiveBodyLimit(t *testing.T) {
	t.Setenv("HTTP_MAX_BODY_BYTES", "0")

	_, err := Load()
	require.Error(t, err)
}
