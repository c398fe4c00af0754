package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs that represent different concerns of the
// system: HTTP server settings, Postgres connection details, upstream data
// providers, and the curve pipeline options.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	B3_BASE_URL=https://api.b3.com.br
//	ANBIMA_BASE_URL=https://api.anbima.com.br
//	DI_CONTRACT_CODE=DI1
//	CURVE_GROUP_BY_MONTH=true
type Config struct {
	Server    ServerConfig   // HTTP server configuration
	Postgres  PostgresConfig // PostgreSQL connection settings
	Providers ProviderConfig // Upstream market-data providers
	Curve     CurveConfig    // Pipeline and session options
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN used by database/sql to connect
}

// ProviderConfig holds base URLs and timeouts for the external collaborators:
// the B3 futures endpoint and the Anbima reference-rate endpoint.
type ProviderConfig struct {
	B3BaseURL      string
	AnbimaBaseURL  string
	TimeoutSeconds int
	ContractCode   string // DI1 by default
}

// CurveConfig holds the pipeline options the dashboards disagree on, plus the
// trading-session window used to gate live snapshots.
//
// Fields:
//   - GroupByMonth: truncate maturities to issuance vertices (first of month).
//   - RateScale: multiplier applied during normalization (1.0 = keep provider
//     representation).
//   - SessionOpen / SessionClose: trading window, "HH:MM" exchange-local time.
//   - RefreshSeconds: refresh cadence hint returned with live panels.
type CurveConfig struct {
	GroupByMonth   bool
	RateScale      float64
	SessionOpen    string
	SessionClose   string
	RefreshSeconds int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env file or
// directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "dipulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("B3_BASE_URL", "https://api.b3.com.br")
	viper.SetDefault("ANBIMA_BASE_URL", "https://api.anbima.com.br")
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DI_CONTRACT_CODE", "DI1")

	viper.SetDefault("CURVE_GROUP_BY_MONTH", true)
	viper.SetDefault("CURVE_RATE_SCALE", 1.0)
	viper.SetDefault("SESSION_OPEN", "09:00")
	viper.SetDefault("SESSION_CLOSE", "18:00")
	viper.SetDefault("REFRESH_SECONDS", 60)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Providers: ProviderConfig{
			B3BaseURL:      viper.GetString("B3_BASE_URL"),
			AnbimaBaseURL:  viper.GetString("ANBIMA_BASE_URL"),
			TimeoutSeconds: viper.GetInt("PROVIDER_TIMEOUT_SECONDS"),
			ContractCode:   viper.GetString("DI_CONTRACT_CODE"),
		},
		Curve: CurveConfig{
			GroupByMonth:   viper.GetBool("CURVE_GROUP_BY_MONTH"),
			RateScale:      viper.GetFloat64("CURVE_RATE_SCALE"),
			SessionOpen:    viper.GetString("SESSION_OPEN"),
			SessionClose:   viper.GetString("SESSION_CLOSE"),
			RefreshSeconds: viper.GetInt("REFRESH_SECONDS"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing. This avoids unexpected runtime failures
// due to incomplete configuration.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Providers.B3BaseURL == "" {
		missing = append(missing, "B3_BASE_URL")
	}
	if AppConfig.Providers.AnbimaBaseURL == "" {
		missing = append(missing, "ANBIMA_BASE_URL")
	}
	if AppConfig.Providers.ContractCode == "" {
		missing = append(missing, "DI_CONTRACT_CODE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
