package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javikin/umbral-sub003/internal/bootstrap"
	profiledto "github.com/javikin/umbral-sub003/internal/modules/profile/dto"
)

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Blocking profiles"}

	var name string
	var apps []string
	var strict bool
	create := &cobra.Command{
		Use:   "create --name <name> --apps <pkg,...>",
		Short: "Create a blocking profile",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := required("name", name); err != nil {
				return err
			}
			p, err := app.ProfileCLI.Create(cmd.Context(), name, apps, strict)
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		}),
	}
	create.Flags().StringVar(&name, "name", "", "profile name")
	create.Flags().StringSliceVar(&apps, "apps", nil, "blocked app package names")
	create.Flags().BoolVar(&strict, "strict", false, "require a verified credential to stop")

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Replace a profile's name, apps and strict flag",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := required("id", id); err != nil {
				return err
			}
			p, err := app.ProfileCLI.Update(cmd.Context(), id, name, apps, strict)
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		}),
	}
	update.Flags().StringVar(&id, "id", "", "profile id")
	update.Flags().StringVar(&name, "name", "", "profile name")
	update.Flags().StringSliceVar(&apps, "apps", nil, "blocked app package names")
	update.Flags().BoolVar(&strict, "strict", false, "require a verified credential to stop")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a profile",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			p, err := app.ProfileCLI.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			profiles, err := app.ProfileCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no profiles")
				return nil
			}
			for _, p := range profiles {
				printProfile(cmd, p)
			}
			return nil
		}),
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an inactive profile",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(dataDir, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			if err := app.ProfileCLI.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile deleted: %s\n", args[0])
			return nil
		}),
	}

	profile.AddCommand(create, update, show, list, remove)
	return profile
}

func printProfile(cmd *cobra.Command, p profiledto.ProfileOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tstrict=%t\tactive=%t\tapps=%s\n", p.ID, p.Name, p.StrictMode, p.Active, strings.Join(p.BlockedApps, ","))
}
