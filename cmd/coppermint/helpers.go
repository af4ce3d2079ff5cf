package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/finchley/coppermint/internal/config"
	"github.com/finchley/coppermint/internal/ledger"
	"github.com/finchley/coppermint/internal/service"
	"github.com/finchley/coppermint/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine wires the ledger engine onto a freshly opened store. The caller
// owns closing the returned store.
func initEngine(ctx context.Context) (*ledger.Engine, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(store), store, nil
}

// parseAmount parses a positive decimal amount from user input.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", amount)
	}
	return amount, nil
}

// parseBudgetLimit parses an optional non-negative budget limit; an empty
// string means no limit.
func parseBudgetLimit(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	limit, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid budget limit %q: %w", s, err)
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("budget limit cannot be negative, got %s", limit)
	}
	return &limit, nil
}

// dateLayouts accepted by date flags: a calendar date or a full timestamp.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// parseDateBound parses a date flag. Calendar dates are normalized to the
// start of the day, or to its last second when end is true, so ranged stats
// treat both bounds inclusively.
func parseDateBound(s string, end bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" && end {
			t = t.Add(24*time.Hour - time.Second)
		}
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD or a full timestamp", s)
}
