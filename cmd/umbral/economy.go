package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javikin/umbral-sub003/internal/bootstrap"
)

func newLedgerCmd(dataDir *string) *cobra.Command {
	ledger := &cobra.Command{Use: "ledger", Short: "Energy, level and streak"}

	ledger.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the player ledger",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			l := app.LedgerCLI.Show()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level=%d xp=%d/%d energy=%d/%d stars=%d streak=%d (best %d) minutes=%d\n",
				l.Level, l.CurrentXP, l.NextLevelXP, l.AvailableEnergy, l.TotalEnergy, l.Stars, l.CurrentStreak, l.LongestStreak, l.TotalBlockingMinutes)
			return nil
		}),
	})

	var confirm bool
	reset := &cobra.Command{
		Use:   "reset --yes",
		Short: "Reset all progress",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if !confirm {
				return fmt.Errorf("refusing to reset without --yes")
			}
			if _, err := app.LedgerCLI.Reset(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ledger reset")
			return nil
		}),
	}
	reset.Flags().BoolVar(&confirm, "yes", false, "confirm the reset")
	ledger.AddCommand(reset)
	return ledger
}

func newCompanionCmd(dataDir *string) *cobra.Command {
	companion := &cobra.Command{Use: "companion", Short: "Capture and evolve companions"}

	companion.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List captured companions",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			items, err := app.CompanionCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no companions")
				return nil
			}
			for _, c := range items {
				next := "max"
				if c.NextThreshold > 0 {
					next = fmt.Sprintf("%d", c.NextThreshold)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tstage=%d\tinvested=%d/%s\tactive=%t\n", c.ID, c.SpeciesName, c.EvolutionState, c.EnergyInvested, next, c.Active)
			}
			return nil
		}),
	})

	companion.AddCommand(&cobra.Command{
		Use:   "species",
		Short: "List capturable species and their requirements",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			species, err := app.CompanionCLI.Species(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range species {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tlevel>=%d\tlocations>=%d\tcaptured=%t\n", s.ID, s.Name, s.MinLevel, s.MinLocations, s.Captured)
			}
			return nil
		}),
	})

	companion.AddCommand(&cobra.Command{
		Use:   "capture <species>",
		Short: "Capture a companion",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			c, err := app.CompanionCLI.Capture(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "captured %s (%s)\n", c.SpeciesName, c.ID)
			syncAchievements(cmd, app)
			return nil
		}),
	})

	var amount int64
	invest := &cobra.Command{
		Use:   "invest <id> --amount <energy>",
		Short: "Invest energy into a companion",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.CompanionCLI.Invest(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "invested %d: total=%d remaining=%d\n", amount, out.Companion.EnergyInvested, out.EnergyRemaining)
			if out.CanNowEvolve {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s evolved to stage %d\n", out.Companion.SpeciesName, out.EligibleState)
			}
			return nil
		}),
	}
	invest.Flags().Int64Var(&amount, "amount", 0, "energy to invest")
	companion.AddCommand(invest)

	companion.AddCommand(&cobra.Command{
		Use:   "evolve <id>",
		Short: "Confirm a companion's evolution",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.CompanionCLI.Evolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Evolved {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s confirmed at stage %d\n", out.Companion.SpeciesName, out.Companion.EvolutionState)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s evolved to stage %d\n", out.Companion.SpeciesName, out.Companion.EvolutionState)
			return nil
		}),
	})

	companion.AddCommand(&cobra.Command{
		Use:   "use <id>",
		Short: "Make a companion the active one",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			c, err := app.CompanionCLI.Use(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active companion: %s\n", c.SpeciesName)
			return nil
		}),
	})
	return companion
}

func newLocationCmd(dataDir *string) *cobra.Command {
	location := &cobra.Command{Use: "location", Short: "Discover locations"}

	location.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List discovered locations",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			locs, err := app.LocationCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(locs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no locations")
				return nil
			}
			for _, l := range locs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tspent=%d\tlore=%t\n", l.ID, l.BiomeID, l.EnergySpent, l.LoreRead)
			}
			return nil
		}),
	})

	var biome string
	var cost int64
	discover := &cobra.Command{
		Use:   "discover <id> --biome <biome> --cost <energy>",
		Short: "Spend energy to discover a location",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			if err := required("biome", biome); err != nil {
				return err
			}
			out, err := app.LocationCLI.Discover(cmd.Context(), args[0], biome, cost)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "discovered %s in %s: remaining=%d\n", out.Location.ID, out.Location.BiomeID, out.EnergyRemaining)
			syncAchievements(cmd, app)
			return nil
		}),
	}
	discover.Flags().StringVar(&biome, "biome", "", "biome id")
	discover.Flags().Int64Var(&cost, "cost", 0, "discovery cost in energy")
	location.AddCommand(discover)

	location.AddCommand(&cobra.Command{
		Use:   "lore <id>",
		Short: "Mark a location's lore as read",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			l, err := app.LocationCLI.ReadLore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lore read: %s\n", l.ID)
			return nil
		}),
	})
	return location
}

func newAchievementCmd(dataDir *string) *cobra.Command {
	achievement := &cobra.Command{Use: "achievement", Short: "Achievement progress"}

	achievement.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List achievements",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			items, err := app.AchievementCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, a := range items {
				mark := " "
				if a.Unlocked {
					mark = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s\t%d/%d\t%d stars\n", mark, a.ID, a.Title, a.Progress, a.Target, a.StarsReward)
			}
			return nil
		}),
	})

	achievement.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Recompute achievement progress from current totals",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			unlocked, err := app.Rewards.Sync(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlocked %d achievement(s)\n", len(unlocked))
			return nil
		}),
	})
	return achievement
}
