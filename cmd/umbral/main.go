package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javikin/umbral-sub003/internal/bootstrap"
	"github.com/javikin/umbral-sub003/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "umbral",
		Short:         "Blocking sessions with an energy economy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory")

	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newLedgerCmd(&dataDir))
	root.AddCommand(newCompanionCmd(&dataDir))
	root.AddCommand(newLocationCmd(&dataDir))
	root.AddCommand(newAchievementCmd(&dataDir))
	root.AddCommand(newCodeCmd(&dataDir))
	root.AddCommand(newVerifierCmd(&dataDir))
	root.AddCommand(newWatchCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".umbral"
	}
	return filepath.Join(home, ".umbral")
}

func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp opens the app for one command and closes it afterwards.
func withApp(dataDir *string, fn func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd.Context(), *dataDir)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return fn(cmd, args, app)
	}
}

func required(flag, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", flag)
	}
	return nil
}

// syncAchievements feeds the latest totals into achievement progress and
// prints anything that unlocked.
func syncAchievements(cmd *cobra.Command, app *bootstrap.App) {
	unlocked, err := app.Rewards.Sync(cmd.Context())
	if err != nil {
		app.Log.Warn("achievement sync failed", "error", err)
		return
	}
	for _, a := range unlocked {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "achievement unlocked: %s (+%d stars)\n", a.Title, a.StarsReward)
	}
}
