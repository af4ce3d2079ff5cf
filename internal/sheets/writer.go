package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/service"
)

// Writer publishes an owner's transaction history to a Google spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write replaces the spreadsheet contents with the owner's exported history
// and a summary derived from stats.
func (w *Writer) Write(ctx context.Context, owner string, transactions []model.ExportedTransaction, stats *model.StatsReport) error {
	w.logger.Info("starting sheet export",
		"owner", owner,
		"transactions", len(transactions))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := w.prepareRows(owner, transactions, stats)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))
	return nil
}

// prepareRows lays out the summary block followed by the transaction table.
func (w *Writer) prepareRows(owner string, transactions []model.ExportedTransaction, stats *model.StatsReport) [][]any {
	values := make([][]any, 0, 10+len(stats.ExpensesByCategory)+len(transactions))

	values = append(values,
		[]any{"Coppermint Ledger", owner},
		[]any{}, // Empty row
		[]any{"Summary"},
		[]any{"Total Income", stats.TotalIncome.String()},
		[]any{"Total Expense", stats.TotalExpense.String()},
		[]any{}, // Empty row
		[]any{"Expenses By Category"},
	)

	// Sort categories by spend (descending) for a stable layout
	categories := make([]string, 0, len(stats.ExpensesByCategory))
	for category := range stats.ExpensesByCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return stats.ExpensesByCategory[categories[i]].GreaterThan(stats.ExpensesByCategory[categories[j]])
	})
	for _, category := range categories {
		values = append(values, []any{category, stats.ExpensesByCategory[category].String()})
	}

	values = append(values,
		[]any{}, // Empty row
		[]any{"Transactions"},
		[]any{"ID", "Date", "Category", "Amount", "Description"},
	)
	for _, t := range transactions {
		values = append(values, []any{
			t.ID,
			t.Date.Format("2006-01-02 15:04:05"),
			t.Category,
			t.Amount.String(),
			t.Description,
		})
	}

	return values
}

// writeData writes the rows in batches.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for start := 0; start < len(values); start += w.config.BatchSize {
		end := start + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		rangeStr := fmt.Sprintf("A%d", start+1)
		valueRange := &sheets.ValueRange{
			Range:  rangeStr,
			Values: values[start:end],
		}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch at row %d: %w", start+1, err)
		}
	}
	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		// Use service account authentication
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		// Use OAuth2 authentication with a refresh token
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		// Verify the spreadsheet exists and is accessible
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Transactions",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}
