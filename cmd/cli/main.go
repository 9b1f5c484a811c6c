package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/banking/internal/adapter/teller"
	"github.com/iho/banking/internal/domain"
	"github.com/iho/banking/internal/infrastructure/idgen"
	"github.com/iho/banking/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "banking-cli",
		Short: "Single account banking tool",
		Long: `Runs an interactive teller session against a fresh in-memory account,
or talks to a running banking server with the remote commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := idgen.NewULIDGenerator()
			account := domain.NewAccount(domain.WithIDGenerator(ids.Generate))
			uc := usecase.NewAccountUseCase(account, nil, zerolog.Nop())

			return teller.NewSession(uc, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()).
				Run(cmd.Context())
		},
	}

	rootCmd.AddCommand(remoteCmd())

	return rootCmd
}

func remoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Operations against a running banking server",
	}

	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the banking API")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "balance",
			Short: "Print the current balance",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cmd, func(ctx context.Context, c *client) error {
					return c.printBalance(ctx, cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "statement",
			Short: "Print the account statement",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cmd, func(ctx context.Context, c *client) error {
					return c.printStatement(ctx, cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "deposit AMOUNT",
			Short: "Deposit an amount",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cmd, func(ctx context.Context, c *client) error {
					return c.operate(ctx, cmd.OutOrStdout(), "/api/v1/account/deposits", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "withdraw AMOUNT",
			Short: "Withdraw an amount",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withClient(cmd, func(ctx context.Context, c *client) error {
					return c.operate(ctx, cmd.OutOrStdout(), "/api/v1/account/withdrawals", args[0])
				})
			},
		},
	)

	return cmd
}

func withClient(cmd *cobra.Command, fn func(context.Context, *client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return fn(ctx, newClient(baseURL, timeout))
}
