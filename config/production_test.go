package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *ProductionConfig {
	return &ProductionConfig{
		Database: DatabaseConfig{
			Host: "localhost", Port: 5432, Name: "sajtem", User: "app", Password: "secret",
		},
		Server: ServerConfig{
			Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second,
		},
		ShortLink: ShortLinkConfig{Domain: "https://sajtem.com.br", CodeLength: 8},
		Logging:   LoggingConfig{Level: "info"},
	}
}

func TestValidateProductionConfig_Valid(t *testing.T) {
	assert.NoError(t, ValidateProductionConfig(validTestConfig()))
}

func TestValidateProductionConfig_RequiresDatabaseCredentials(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.User = ""
	cfg.Database.Password = ""

	err := ValidateProductionConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidateProductionConfig_ShortLinkDomainNeedsScheme(t *testing.T) {
	cfg := validTestConfig()
	cfg.ShortLink.Domain = "sajtem.com.br"

	err := ValidateProductionConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHORT_LINK_DOMAIN")
}

func TestValidateProductionConfig_CodeLengthBounds(t *testing.T) {
	cfg := validTestConfig()
	cfg.ShortLink.CodeLength = 2
	assert.Error(t, ValidateProductionConfig(cfg))

	cfg.ShortLink.CodeLength = 64
	assert.Error(t, ValidateProductionConfig(cfg))
}

func TestValidateProductionConfig_ProviderKeysOptional(t *testing.T) {
	cfg := validTestConfig()
	cfg.MercadoPago.AccessToken = ""
	cfg.Email.APIKey = ""
	cfg.Weather.APIKey = ""

	assert.NoError(t, ValidateProductionConfig(cfg))
}

func TestValidateProductionConfig_CacheRequiresURL(t *testing.T) {
	cfg := validTestConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.RedisURL = ""

	err := ValidateProductionConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_REDIS_URL")
}

func TestLoadProductionConfig_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHORT_LINK_CODE_LENGTH", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://sajtem.com.br, https://admin.sajtem.com.br")
	t.Setenv("MAINTENANCE_INTERVAL", "30m")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.ShortLink.CodeLength)
	assert.Equal(t, []string{"https://sajtem.com.br", "https://admin.sajtem.com.br"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Maintenance.Interval)

	// Defaults fill whatever the environment leaves unset
	assert.Equal(t, "https://api.mercadopago.com", cfg.MercadoPago.BaseURL)
	assert.Equal(t, "sajtem", cfg.Database.Name)
	assert.True(t, cfg.Maintenance.Enabled)
}
