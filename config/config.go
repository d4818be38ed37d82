// Package config loads process configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries everything the process needs at start. Values come from
// the environment (optionally via a .env file loaded in main).
type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	DBPath     string `envconfig:"DB_PATH" default:"./data/billing.db"`
	InvoiceDir string `envconfig:"INVOICE_DIR" default:"./invoices"`
	LogoPath   string `envconfig:"LOGO_PATH" default:"./assets/logo.png"`

	ClinicName     string `envconfig:"CLINIC_NAME" default:"VETS ONE"`
	ClinicSubtitle string `envconfig:"CLINIC_SUBTITLE" default:"ANIMAL HOSPITAL"`
	ClinicAddress  string `envconfig:"CLINIC_ADDRESS" default:"No.321/B, Divulpitiya, Boralesgamuwa"`
	ClinicPhone    string `envconfig:"CLINIC_PHONE" default:"Tel : +94 77 8198 882 | +94 704130 333"`

	AuthUser string `envconfig:"AUTH_USER"`
	AuthPass string `envconfig:"AUTH_PASS"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
