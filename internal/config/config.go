package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Logger   LoggerConfig   `json:"logger" mapstructure:"logger"`
	Auth     AuthConfig     `json:"auth" mapstructure:"auth"`
}

type ServerConfig struct {
	Host            string `json:"host" mapstructure:"host"`
	Port            int    `json:"port" mapstructure:"port"`
	Environment     string `json:"environment" mapstructure:"environment"`
	ReadTimeout     int    `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    int    `json:"write_timeout" mapstructure:"write_timeout"`
	GracefulTimeout int    `json:"graceful_timeout" mapstructure:"graceful_timeout"`
}

type DatabaseConfig struct {
	Host            string `json:"host" mapstructure:"host"`
	Port            int    `json:"port" mapstructure:"port"`
	User            string `json:"user" mapstructure:"user"`
	Password        string `json:"password" mapstructure:"password"`
	DBName          string `json:"dbname" mapstructure:"dbname"`
	SSLMode         string `json:"sslmode" mapstructure:"sslmode"`
	MaxOpenConns    int    `json:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int    `json:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `json:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	EnableLogging   bool   `json:"enable_logging" mapstructure:"enable_logging"`
}

type LoggerConfig struct {
	Level         string `json:"level" mapstructure:"level"`
	Format        string `json:"format" mapstructure:"format"`
	Directory     string `json:"directory" mapstructure:"directory"`
	MaxSize       int    `json:"max_size" mapstructure:"max_size"`
	MaxBackups    int    `json:"max_backups" mapstructure:"max_backups"`
	MaxAge        int    `json:"max_age" mapstructure:"max_age"`
	Compress      bool   `json:"compress" mapstructure:"compress"`
	EnableConsole bool   `json:"enable_console" mapstructure:"enable_console"`
}

type AuthConfig struct {
	// ValidationURL is the Twitch-OAuth-compatible token validation
	// endpoint. The resolved user id becomes the caller identity.
	ValidationURL string `json:"validation_url" mapstructure:"validation_url"`
	// Timeout for the outbound validation call, in seconds. Zero
	// means no client-side deadline.
	Timeout int `json:"timeout" mapstructure:"timeout"`
}

// Load reads configuration from an optional config file plus
// environment variables, on top of the documented defaults.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../config")
	viper.AddConfigPath("../../config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
