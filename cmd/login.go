package cmd

import (
	"fmt"
	"os"

	"tarion/internal/config"
	"tarion/internal/qrcode"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var pngPath string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a device code",
		Long: `Starts a device login: approve the shown code in your browser (or scan
the QR code with your phone) and the command waits until the backend
confirms. Tokens are stored under your user config directory.`,
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

			ctx := cmd.Context()
			dl, err := a.client.StartDeviceLogin(ctx)
			if err != nil {
				return fmt.Errorf("start device login: %w", err)
			}

			fmt.Printf("Open %s and enter the code: %s\n\n", dl.VerificationURL, dl.UserCode)
			if qr, err := qrcode.Terminal(dl.VerificationURL); err == nil {
				fmt.Println(qr)
			}
			if pngPath != "" {
				png, err := qrcode.Generate(dl.VerificationURL)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, png, 0o644); err != nil {
					return err
				}
				fmt.Printf("QR code written to %s\n", pngPath)
			}

			fmt.Println("Waiting for approval…")
			if err := a.client.PollDeviceLogin(ctx, dl); err != nil {
				return fmt.Errorf("device login: %w", err)
			}

			if profile, ok := a.store.Profile(); ok {
				fmt.Printf("Signed in as %s\n", profile.Email)
			} else {
				fmt.Println("Signed in")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pngPath, "png", "", "Also write the login QR code to a PNG file")
	return cmd
}
