package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show income, expense, and budget statistics",
		Long: `Aggregate an owner's history over an inclusive date range: total
income, total expense, per-category spending, and remaining budget for
every budgeted category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			owner, _ := cmd.Flags().GetString("owner")
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")

			from, err := parseDateBound(fromStr, false)
			if err != nil {
				return err
			}
			to, err := parseDateBound(toStr, true)
			if err != nil {
				return err
			}

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := engine.GetStats(ctx, owner, from, to)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Stats for %s", owner)))
			fmt.Printf("Total income:  %s\n", report.TotalIncome.StringFixed(2))
			fmt.Printf("Total expense: %s\n", report.TotalExpense.StringFixed(2))

			if len(report.ExpensesByCategory) > 0 {
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render("Expenses by category"))
				printDecimalMap(report.ExpensesByCategory)
			}

			if len(report.BudgetStatus) > 0 {
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render("Budget remaining"))
				printDecimalMap(report.BudgetStatus)
			}
			return nil
		},
	}

	cmd.Flags().String("owner", "", "owner to report on")
	cmd.Flags().String("from", "", "range start (inclusive)")
	cmd.Flags().String("to", "", "range end (inclusive)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func printDecimalMap(m map[string]decimal.Decimal) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, m[name].StringFixed(2))
	}
}
