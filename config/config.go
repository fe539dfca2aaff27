package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppName    string `envconfig:"APP_NAME" yaml:"app_name" default:"iweather-api"`
	AppVersion string `envconfig:"APP_VERSION" yaml:"app_version" default:"1.0.0"`
	AppEnv     string `envconfig:"APP_ENV" yaml:"app_env" default:"development"`
	Port       string `envconfig:"PORT" yaml:"port" default:"3000"`

	JWTSecret         string `envconfig:"JWT_SECRET" yaml:"jwt_secret"`
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY" yaml:"openweather_api_key"`
	SendGridAPIKey    string `envconfig:"SENDGRID_API_KEY" yaml:"sendgrid_api_key"`
	MailFrom          string `envconfig:"MAIL_FROM" yaml:"mail_from" default:"no-reply@iweather.app"`
	GoogleClientID    string `envconfig:"GOOGLE_CLIENT_ID" yaml:"google_client_id"`
	FrontendURL       string `envconfig:"FRONTEND_URL" yaml:"frontend_url" default:"http://localhost:5173"`
	DatabasePath      string `envconfig:"DATABASE_PATH" yaml:"database_path" default:"iweather.db"`
	SentryDSN         string `envconfig:"SENTRY_DSN" yaml:"sentry_dsn"`
}

func NewConfig() *Config {
	// A local .env is optional; envconfig still reads the process env.
	_ = godotenv.Load()

	var cnf Config

	// Read from YAML file first
	if yamlData, err := os.ReadFile("config/config.yaml"); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			panic(fmt.Sprintf("Warning: failed to parse YAML config: %v\n", err))
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		panic(fmt.Errorf("error environment variable parsing: %w", err))
	}

	return &cnf
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
