package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resin_widget/config"
)

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate settings.ini without starting the widget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(opts.settingsPath)
			if err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}
			uid, err := settings.Auth.GameUID()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (uid %d)\n", settings.Path(), uid)
			return nil
		},
	}
}
