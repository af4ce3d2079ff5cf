package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
	"github.com/finchley/coppermint/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List, add, and update an owner's income and expense categories.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an owner's categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			owner, _ := cmd.Flags().GetString("owner")

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := engine.ListCategories(ctx, owner)
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'coppermint categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tNAME\tTYPE\tBUDGET")
			for _, c := range categories {
				budget := "-"
				if c.BudgetLimit != nil {
					budget = c.BudgetLimit.StringFixed(2)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, budget)
			}
			return nil
		},
	}

	cmd.Flags().String("owner", "", "owner whose categories to list")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, _ := cmd.Flags().GetString("owner")
			typeStr, _ := cmd.Flags().GetString("type")
			budgetStr, _ := cmd.Flags().GetString("budget")

			budgetLimit, err := parseBudgetLimit(budgetStr)
			if err != nil {
				return err
			}

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := engine.CreateCategory(ctx, owner, args[0], model.CategoryType(typeStr), budgetLimit)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s category %q (id %d)", category.Type, category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().String("owner", "", "owner of the category")
	cmd.Flags().String("type", "expense", "category type (income or expense)")
	cmd.Flags().String("budget", "", "optional budget limit (expense categories only)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func updateCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category and replace its budget limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, _ := cmd.Flags().GetString("owner")
			budgetStr, _ := cmd.Flags().GetString("budget")

			var categoryID int64
			if _, err := fmt.Sscanf(args[0], "%d", &categoryID); err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			budgetLimit, err := parseBudgetLimit(budgetStr)
			if err != nil {
				return err
			}

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := engine.UpdateCategory(ctx, owner, categoryID, args[1], budgetLimit)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %d to %q", category.ID, category.Name)))
			return nil
		},
	}

	cmd.Flags().String("owner", "", "owner of the category")
	cmd.Flags().String("budget", "", "new budget limit (empty clears it)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
