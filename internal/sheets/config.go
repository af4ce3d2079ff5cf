// Package sheets provides Google Sheets API integration for exporting the
// transaction history.
package sheets

import (
	"fmt"
	"time"

	"github.com/finchley/coppermint/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimeZone:      "UTC",
		BatchSize:     1000,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("%w: provide either a service account path or OAuth2 credentials", common.ErrMissingConfig)
	}

	if c.SpreadsheetName == "" {
		c.SpreadsheetName = "Coppermint Ledger"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 1000
	}
	return nil
}
