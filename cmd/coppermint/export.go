package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/config"
	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an owner's transaction history",
		Long: `Export the full transaction history in deterministic order (date
ascending, then ID). Writes JSON to stdout by default; --format csv
switches to CSV, and --sheets publishes to a Google spreadsheet.`,
		RunE: runExport,
	}

	cmd.Flags().String("owner", "", "owner whose history to export")
	cmd.Flags().String("format", "json", "output format (json or csv)")
	cmd.Flags().Bool("sheets", false, "publish to Google Sheets instead of stdout")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	owner, _ := cmd.Flags().GetString("owner")
	format, _ := cmd.Flags().GetString("format")
	useSheets, _ := cmd.Flags().GetBool("sheets")

	engine, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	transactions, err := engine.ExportTransactions(ctx, owner)
	if err != nil {
		return err
	}

	if useSheets {
		stats, err := engine.GetStats(ctx, owner, nil, nil)
		if err != nil {
			return err
		}

		sheetsCfg, err := config.LoadSheetsConfig()
		if err != nil {
			return common.NewUserError("Google Sheets export is not configured", err)
		}

		writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
		if err != nil {
			return err
		}
		if err := writer.Write(ctx, owner, transactions, stats); err != nil {
			return err
		}

		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to Google Sheets", len(transactions))))
		return nil
	}

	switch format {
	case "json":
		return writeJSON(transactions)
	case "csv":
		return writeCSV(transactions)
	default:
		return fmt.Errorf("unknown format %q: use json or csv", format)
	}
}

func writeJSON(transactions []model.ExportedTransaction) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(transactions)
}

func writeCSV(transactions []model.ExportedTransaction) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"id", "date", "category", "amount", "description"}); err != nil {
		return err
	}
	for _, t := range transactions {
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.Date.Format("2006-01-02 15:04:05"),
			t.Category,
			t.Amount.String(),
			t.Description,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
