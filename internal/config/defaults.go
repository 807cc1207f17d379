package config

import (
	"github.com/spf13/viper"
)

// setDefaults sets the documented default configuration values.
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.graceful_timeout", 30)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "sogebot")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.conn_max_lifetime", 3600)
	viper.SetDefault("database.enable_logging", false)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.directory", "logs")
	viper.SetDefault("logger.max_size", 100)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.max_age", 30)
	viper.SetDefault("logger.compress", true)
	viper.SetDefault("logger.enable_console", false)

	// Auth defaults
	viper.SetDefault("auth.validation_url", "https://id.twitch.tv/oauth2/validate")
	viper.SetDefault("auth.timeout", 0)
}
