package sheets

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/coppermint/internal/model"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "service account",
			config: Config{ServiceAccountPath: "/tmp/key.json"},
		},
		{
			name: "oauth credentials",
			config: Config{
				ClientID:     "id",
				ClientSecret: "secret",
				RefreshToken: "token",
			},
		},
		{
			name:    "no auth at all",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "partial oauth",
			config:  Config{ClientID: "id"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Coppermint Ledger", tt.config.SpreadsheetName)
			assert.Positive(t, tt.config.BatchSize)
		})
	}
}

func TestPrepareRows(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: slog.Default()}

	stats := &model.StatsReport{
		TotalIncome:  decimal.NewFromInt(1000),
		TotalExpense: decimal.NewFromInt(450),
		ExpensesByCategory: map[string]decimal.Decimal{
			"Food": decimal.NewFromInt(150),
			"Rent": decimal.NewFromInt(300),
		},
	}
	transactions := []model.ExportedTransaction{
		{
			ID:          1,
			Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Category:    "Rent",
			Amount:      decimal.NewFromInt(300),
			Description: "march rent",
		},
	}

	rows := w.prepareRows("alice", transactions, stats)

	require.NotEmpty(t, rows)
	assert.Equal(t, []any{"Coppermint Ledger", "alice"}, rows[0])
	assert.Equal(t, []any{"Total Income", "1000"}, rows[3])
	assert.Equal(t, []any{"Total Expense", "450"}, rows[4])

	// Categories sorted by spend descending.
	assert.Equal(t, []any{"Rent", "300"}, rows[7])
	assert.Equal(t, []any{"Food", "150"}, rows[8])

	// Transaction table follows the header row.
	last := rows[len(rows)-1]
	assert.Equal(t, int64(1), last[0])
	assert.Equal(t, "2024-03-10 00:00:00", last[1])
	assert.Equal(t, "Rent", last[2])
	assert.Equal(t, "300", last[3])
	assert.Equal(t, "march rent", last[4])
}
