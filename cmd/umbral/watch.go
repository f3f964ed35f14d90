package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/javikin/umbral-sub003/internal/bootstrap"
	"github.com/javikin/umbral-sub003/internal/platform/config"
)

func newWatchCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard of the running session and ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			// Log lines would tear the alt screen.
			if _, set := os.LookupEnv("UMBRAL_LOG_MODE"); !set {
				cfg.LogMode = "off"
			}
			app, err := bootstrap.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunDashboard(cmd.Context(), app)
		},
	}
}
