package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javikin/umbral-sub003/internal/bootstrap"
	sessiondto "github.com/javikin/umbral-sub003/internal/modules/session/dto"
)

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Blocking session lifecycle"}

	var profileID string
	start := &cobra.Command{
		Use:   "start --profile <id>",
		Short: "Start a blocking session",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := required("profile", profileID); err != nil {
				return err
			}
			state, err := app.SessionCLI.Start(cmd.Context(), profileID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s profile=%s strict=%t at=%s\n", state.SessionID, state.ProfileID, state.Strict, state.StartedAt.Format(time.RFC3339))
			return nil
		}),
	}
	start.Flags().StringVar(&profileID, "profile", "", "profile id")

	var method, credential string
	stop := &cobra.Command{
		Use:   "stop --method <nfc|qr|code|manual>",
		Short: "Stop the open session",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			reward, err := app.SessionCLI.Stop(cmd.Context(), method, credential)
			if err != nil {
				return err
			}
			printReward(cmd, reward)
			syncAchievements(cmd, app)
			return nil
		}),
	}
	stop.Flags().StringVar(&method, "method", "manual", "unlock method: nfc|qr|code|manual")
	stop.Flags().StringVar(&credential, "credential", "", "unlock credential for strict profiles")

	timeout := &cobra.Command{
		Use:   "timeout",
		Short: "End the open session because its time limit elapsed",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			reward, err := app.SessionCLI.Timeout(cmd.Context())
			if err != nil {
				return err
			}
			printReward(cmd, reward)
			syncAchievements(cmd, app)
			return nil
		}),
	}

	attempt := &cobra.Command{
		Use:   "attempt <package>",
		Short: "Record a blocked launch attempt",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			state, err := app.SessionCLI.Attempt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "blocked %s (attempts=%d)\n", args[0], state.Attempts)
			return nil
		}),
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the session state",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			state := app.SessionCLI.Status()
			if state.SessionID == "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "status=%s\n", state.Status)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "status=%s session=%s profile=%s strict=%t attempts=%d elapsed=%s\n",
				state.Status, state.SessionID, state.ProfileID, state.Strict, state.Attempts, time.Since(state.StartedAt).Truncate(time.Second))
			return nil
		}),
	}

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List completed sessions",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			sessions, err := app.SessionCLI.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dmin\tattempts=%d\tenergy=%d\tunlock=%s\n",
					s.EndedAt.Format(time.RFC3339), s.ProfileID, s.DurationMinutes, s.BlockedAttemptCount, s.EnergyGained, s.UnlockMethod)
			}
			return nil
		}),
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum sessions to list")

	session.AddCommand(start, stop, timeout, attempt, status, history)
	return session
}

func printReward(cmd *cobra.Command, r sessiondto.RewardEvent) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s duration=%dmin attempts=%d unlock=%s\n", r.SessionID, r.DurationMinutes, r.AttemptsBlocked, r.UnlockMethod)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "energy +%d (base=%d x%.1f) available=%d streak=%d\n", r.EnergyGained, r.BaseEnergy, r.Multiplier, r.AvailableEnergy, r.NewStreak)
	if r.NewLevel > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level up: %d\n", r.NewLevel)
	}
}
