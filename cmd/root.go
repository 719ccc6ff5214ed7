package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tarion",
		Short: "Virtual tarot deck client",
		Long: `Tarion is a terminal client for the Tarion virtual card deck.

It lays out spreads, draws cards against your per-period quota, and keeps
your session live through the backend's push channel. Sign in once with
"tarion login"; the board itself runs under "tarion play".`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newQuotaCmd())
	cmd.AddCommand(newSpreadsCmd())

	return cmd
}
