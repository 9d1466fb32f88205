package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resin_widget/api"
	"resin_widget/ui"
)

func notesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "Fetch the daily note once and print it",
		Long:  "Performs a single poll with the configured cookies and prints the three widget rows.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(opts)
			if err != nil {
				return err
			}
			settings, err := loadSettings(opts, logger)
			if err != nil {
				return err
			}

			uid, err := settings.Auth.GameUID()
			if err != nil {
				return err
			}

			notes, err := newClient(opts, settings.Auth, logger).Notes(cmd.Context(), uid)
			if err != nil {
				switch {
				case api.IsInvalidCookies(err):
					return fmt.Errorf("cookies were rejected, refresh the [Auth] section: %w", err)
				case api.IsDataNotPublic(err):
					return fmt.Errorf("real-time notes are private on HoYoLAB: %w", err)
				case api.IsAccountNotFound(err):
					return fmt.Errorf("no game account for this uid, check uid and server: %w", err)
				}
				return fmt.Errorf("failed to fetch notes: %w", err)
			}

			snap := ui.NewSnapshot(notes)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, snap.Resin)
			fmt.Fprintln(out, snap.DailyReward)
			fmt.Fprintln(out, snap.RealmCurrency)
			return nil
		},
	}
}
