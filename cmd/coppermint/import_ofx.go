package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX statement files",
		Long: `Replay OFX or QFX bank statements into the ledger. Each statement
entry is recorded as a regular transaction: credits land in the income
category, debits in the expense category. An entry that fails the
solvency check stops the import; entries already applied stay recorded.

Examples:
  # Import a single statement
  coppermint import --owner alice --income Salary --expense Groceries ~/Downloads/january.qfx

  # Import everything from a directory
  coppermint import --owner alice --income Salary --expense Misc ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().String("owner", "", "owner receiving the imported transactions")
	cmd.Flags().String("income", "", "category for credit entries")
	cmd.Flags().String("expense", "", "category for debit entries")
	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("expense")
	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	owner, _ := cmd.Flags().GetString("owner")
	incomeCategory, _ := cmd.Flags().GetString("income")
	expenseCategory, _ := cmd.Flags().GetString("expense")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()
	var entries []ofx.StatementEntry
	for _, file := range allFiles {
		f, err := os.Open(file) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", file, err)
		}
		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
		entries = append(entries, parsed...)
	}

	if len(entries) == 0 {
		fmt.Println(cli.FormatInfo("No statement entries found."))
		return nil
	}

	if dryRun {
		for _, e := range entries {
			fmt.Printf("%s  %-7s  %10s  %s\n",
				e.Date.Format("2006-01-02"), e.Direction, e.Amount.StringFixed(2), e.Payee)
		}
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d entries, nothing saved.", len(entries))))
		return nil
	}

	engine, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing statements..."),
	)

	imported := 0
	for _, e := range entries {
		categoryName := incomeCategory
		if e.Direction == model.CategoryTypeExpense {
			categoryName = expenseCategory
		}

		description := e.Payee
		if description == "" {
			description = e.Memo
		}

		if _, err := engine.AddTransaction(ctx, owner, categoryName, e.Amount, description, e.Date); err != nil {
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("import stopped after %d entries: %w", imported, err)
		}
		imported++
		_ = bar.Add(1)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d statement entries for %s", imported, owner)))
	return nil
}
