package cmd

import (
	"fmt"

	"tarion/internal/config"
	"tarion/internal/events"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
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
			a.store.Clear()
			a.bus.Publish(events.AuthLogout, nil)
			fmt.Println("Signed out")
			return nil
		},
	}
}
