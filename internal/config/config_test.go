package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumentedDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "postgres", cfg.Database.Password)
	assert.Equal(t, "sogebot", cfg.Database.DBName)
	assert.Equal(t, "https://id.twitch.tv/oauth2/validate", cfg.Auth.ValidationURL)
}

func TestValidateRejectsBadServerPort(t *testing.T) {
	err := validateServerConfig(&ServerConfig{Port: 0, ReadTimeout: 30, WriteTimeout: 30})
	assert.Error(t, err)

	err = validateServerConfig(&ServerConfig{Port: 70000, ReadTimeout: 30, WriteTimeout: 30})
	assert.Error(t, err)
}

func TestValidateRequiresDatabaseName(t *testing.T) {
	err := validateDatabaseConfig(&DatabaseConfig{Host: "localhost", Port: 5432})
	assert.Error(t, err)
}

func TestValidateRequiresValidationURL(t *testing.T) {
	err := validateAuthConfig(&AuthConfig{})
	assert.Error(t, err)
}
