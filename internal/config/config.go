// Package config loads application configuration: the database path,
// currency presentation, and the company profile printed on invoices.
//
// Configuration comes from an optional YAML file with environment
// overrides on top (a .env file is honored when present). Everything
// has a default, so a bare `srbill` run works with no setup.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Company is the letterhead printed on invoices.
type Company struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Slogan  string `yaml:"slogan"`
	UPIID   string `yaml:"upi_id"`
}

// Config is the full application configuration.
type Config struct {
	Database       string  `yaml:"database"`
	Locale         string  `yaml:"locale"`
	CurrencySymbol string  `yaml:"currency_symbol"`
	Company        Company `yaml:"company"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		Database:       "srbill.db",
		Locale:         "en-IN",
		CurrencySymbol: "₹",
		Company: Company{
			Name:    "SR Plumbing & Electrical Service",
			Address: "Sivan Kovil Street, Choolaimedu, Chennai-94",
			Phone:   "9094599014",
			Slogan:  "Best work in affordable price",
			UPIID:   "shanmughanraji775@okaxis",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty or missing), then environment variables.
func Load(path string) (Config, error) {
	// A .env next to the binary is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Database = envOrDefault("SRBILL_DB", cfg.Database)
	cfg.Locale = envOrDefault("SRBILL_LOCALE", cfg.Locale)
	cfg.CurrencySymbol = envOrDefault("SRBILL_CURRENCY_SYMBOL", cfg.CurrencySymbol)
	cfg.Company.Name = envOrDefault("SRBILL_COMPANY_NAME", cfg.Company.Name)
	cfg.Company.Address = envOrDefault("SRBILL_COMPANY_ADDRESS", cfg.Company.Address)
	cfg.Company.Phone = envOrDefault("SRBILL_COMPANY_PHONE", cfg.Company.Phone)
	cfg.Company.Slogan = envOrDefault("SRBILL_COMPANY_SLOGAN", cfg.Company.Slogan)
	cfg.Company.UPIID = envOrDefault("SRBILL_UPI_ID", cfg.Company.UPIID)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
