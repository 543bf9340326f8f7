package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nortiq/forms-backend/internal/logger"
	"github.com/nortiq/forms-backend/internal/mailer"
	"github.com/nortiq/forms-backend/internal/mailqueue"
	"github.com/nortiq/forms-backend/internal/sheets"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig        `mapstructure:"api"`
	SMTP    mailer.Config    `mapstructure:"smtp"`
	Sheets  sheets.Config    `mapstructure:"sheets"`
	Queue   mailqueue.Config `mapstructure:"queue"`
	Logging logger.Config    `mapstructure:"logging"`
}

// APIConfig holds HTTP server configuration.
type APIConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads configuration from the given config directory path. It
// looks for a file named "config.yaml" in that directory; a missing
// file is fine, defaults and environment variables still apply.
// Environment variables with prefix FORMS_ override file values, for
// example FORMS_SMTP_PASSWORD overrides smtp.password.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetEnvPrefix("FORMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so environment-only deployments work
// without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 10000)
	v.SetDefault("api.read_timeout", 10*time.Second)
	v.SetDefault("api.write_timeout", 10*time.Second)

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.from_name", "")
	v.SetDefault("smtp.tls", true)
	v.SetDefault("smtp.starttls", false)
	v.SetDefault("smtp.insecure_skip_verify", false)
	v.SetDefault("smtp.timeout", 10*time.Second)

	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.range", "Sheet1")
	v.SetDefault("sheets.credentials_file", "/etc/secrets/service-account.json")

	v.SetDefault("queue.idle_timeout", 30*time.Second)
	v.SetDefault("queue.attempt_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_files", 5)
}
