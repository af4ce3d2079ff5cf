package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record transactions",
	}

	cmd.AddCommand(addTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a transaction against a category",
		Long: `Record a single movement against the owner's wallet. The category's
type decides the direction: income categories credit the balance,
expense categories debit it (and fail if funds are insufficient).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, _ := cmd.Flags().GetString("owner")
			categoryName, _ := cmd.Flags().GetString("category")
			description, _ := cmd.Flags().GetString("description")
			dateStr, _ := cmd.Flags().GetString("date")

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			var date time.Time
			if dateStr != "" {
				bound, err := parseDateBound(dateStr, false)
				if err != nil {
					return err
				}
				date = *bound
			}

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := engine.AddTransaction(ctx, owner, categoryName, amount, description, date)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s in %q (id %d)",
				result.Transaction.CategoryType, amount.StringFixed(2), categoryName, result.Transaction.ID)))

			if result.Budget != nil {
				if result.Budget.Exceeded {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("Budget exceeded for %q: remaining %s",
						result.Budget.Category, result.Budget.Remaining.StringFixed(2))))
				} else {
					fmt.Println(cli.FormatInfo(fmt.Sprintf("Budget remaining for %q: %s",
						result.Budget.Category, result.Budget.Remaining.StringFixed(2))))
				}
			}
			return nil
		},
	}

	cmd.Flags().String("owner", "", "owner recording the transaction")
	cmd.Flags().String("category", "", "category name")
	cmd.Flags().String("description", "", "free-form description")
	cmd.Flags().String("date", "", "transaction date (defaults to now)")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
