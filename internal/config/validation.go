package config

import (
	"fmt"
	"net/url"
)

// validate checks the loaded configuration for values the service
// cannot start with.
func validate(cfg *Config) error {
	if err := validateServerConfig(&cfg.Server); err != nil {
		return fmt.Errorf("server configuration error: %w", err)
	}

	if err := validateDatabaseConfig(&cfg.Database); err != nil {
		return fmt.Errorf("database configuration error: %w", err)
	}

	if err := validateAuthConfig(&cfg.Auth); err != nil {
		return fmt.Errorf("auth configuration error: %w", err)
	}

	return nil
}

func validateServerConfig(cfg *ServerConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}

	return nil
}

func validateDatabaseConfig(cfg *DatabaseConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", cfg.Port)
	}

	if cfg.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	return nil
}

func validateAuthConfig(cfg *AuthConfig) error {
	if cfg.ValidationURL == "" {
		return fmt.Errorf("token validation URL is required")
	}

	if _, err := url.Parse(cfg.ValidationURL); err != nil {
		return fmt.Errorf("invalid token validation URL: %w", err)
	}

	return nil
}
