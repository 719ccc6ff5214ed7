package cmd

import (
	"fmt"

	"tarion/internal/config"

	"github.com/spf13/cobra"
)

func newQuotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show remaining spreads for this period",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := cliLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}

			q, err := a.client.Quota(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch quota: %w", err)
			}
			fmt.Printf("Spreads left: %d of %d per %s\n", q.Remaining, q.Limit, q.Period)
			if !q.PeriodEndsAt.IsZero() {
				fmt.Printf("Resets at:    %s\n", q.PeriodEndsAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
