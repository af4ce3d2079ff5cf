package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchley/coppermint/internal/cli"
)

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage wallets",
		Long:  `Register owners and inspect wallet balances.`,
	}

	cmd.AddCommand(createWalletCmd())
	cmd.AddCommand(balanceCmd())

	return cmd
}

func createWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <owner>",
		Short: "Register a new owner with a zero-balance wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := engine.RegisterWallet(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created wallet for %s", wallet.Owner)))
			return nil
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <owner>",
		Short: "Show an owner's current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			wallet, err := engine.GetBalance(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", cli.BoldStyle.Render(wallet.Owner), wallet.Balance.StringFixed(2))
			return nil
		},
	}
}
