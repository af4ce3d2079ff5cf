package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
)

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer <amount>",
		Short: "Transfer funds between two owners",
		Long: `Atomically move funds from one owner's wallet to another's. Both the
debit and the credit land under each side's reserved "Transfers"
category, created on first use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := engine.Transfer(ctx, from, to, amount); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s", amount.StringFixed(2), from, to)))
			return nil
		},
	}

	cmd.Flags().String("from", "", "sending owner")
	cmd.Flags().String("to", "", "receiving owner")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
