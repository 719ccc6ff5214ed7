package cmd

import (
	"context"

	"tarion/internal/auth"
	"tarion/internal/board"
	"tarion/internal/catalog"
	"tarion/internal/config"
	"tarion/internal/gate"
	"tarion/internal/push"
	"tarion/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var spreadID string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the virtual deck board",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if spreadID != "" {
				cfg.SpreadID = spreadID
			}

			logger, err := fileLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}

			cat := catalog.NewStore()
			cardIDs, err := cat.IDs()
			if err != nil {
				return err
			}

			g := gate.New(a.client, gate.NewMemSession(), a.bus, logger)
			b, err := board.New(board.Config{
				SpreadID: cfg.SpreadID,
				DeckID:   cfg.DeckID,
				Lang:     cfg.Locale,
				CardIDs:  cardIDs,
				Gate:     g,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			m, err := ui.New(ui.Deps{
				Board:         b,
				Gate:          g,
				Catalog:       cat,
				Bus:           a.bus,
				Logger:        logger,
				Locale:        cfg.Locale,
				ReducedMotion: cfg.ReducedMotion,
				LoggedIn: func() bool { return auth.LoggedIn(a.store) },
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go push.New(cfg.PushURL, a.store, a.bus, logger).Run(ctx)

			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return err
			}
			// Quit paths inside the UI already fire the beacon; this
			// covers program teardown on error or signal.
			b.Shutdown()
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadID, "spread", "", "Spread to open with (default from TARION_SPREAD)")
	return cmd
}
