package cmd

import (
	"fmt"

	"tarion/internal/config"
	"tarion/internal/layout"

	"github.com/spf13/cobra"
)

func newSpreadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spreads",
		Short: "List the available spreads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			for _, id := range layout.SpreadIDs() {
				spec, err := layout.Spread(id)
				if err != nil {
					return err
				}
				fmt.Printf("%-14s %-24s %2d cards\n",
					id, spec.DisplayName(cfg.Locale), spec.Cardinality())
			}
			return nil
		},
	}
}
