package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javikin/umbral-sub003/internal/bootstrap"
)

func newCodeCmd(dataDir *string) *cobra.Command {
	code := &cobra.Command{Use: "code", Short: "Unlock codes for strict profiles"}

	var profileID, value string
	set := &cobra.Command{
		Use:   "set --profile <id> --code <code>",
		Short: "Set a profile's unlock code",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := required("profile", profileID); err != nil {
				return err
			}
			if err := app.VerifierCLI.SetCode(cmd.Context(), profileID, value); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlock code set for %s\n", profileID)
			return nil
		}),
	}
	set.Flags().StringVar(&profileID, "profile", "", "profile id")
	set.Flags().StringVar(&value, "code", "", "unlock code")

	clearCmd := &cobra.Command{
		Use:   "clear --profile <id>",
		Short: "Remove a profile's unlock code",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := required("profile", profileID); err != nil {
				return err
			}
			if err := app.VerifierCLI.ClearCode(cmd.Context(), profileID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlock code cleared for %s\n", profileID)
			return nil
		}),
	}
	clearCmd.Flags().StringVar(&profileID, "profile", "", "profile id")

	code.AddCommand(set, clearCmd)
	return code
}

func newVerifierCmd(dataDir *string) *cobra.Command {
	verifier := &cobra.Command{Use: "verifier", Short: "Credential verification"}

	var profileID, method, credential string
	check := &cobra.Command{
		Use:   "check --profile <id> --method <code|nfc|qr> --credential <value>",
		Short: "Check a credential without touching the session",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := required("profile", profileID); err != nil {
				return err
			}
			out, err := app.VerifierCLI.Check(cmd.Context(), profileID, method, credential)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "verified=%t", out.Verified)
			if out.Identity != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " identity=%s", out.Identity)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}),
	}
	check.Flags().StringVar(&profileID, "profile", "", "profile id")
	check.Flags().StringVar(&method, "method", "code", "unlock method")
	check.Flags().StringVar(&credential, "credential", "", "credential to check")

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the verifier plugin checksum and lifecycle",
		RunE: withApp(dataDir, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			r, err := app.VerifierCLI.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "codes=%t plugin=%t", r.CodesEnabled, r.PluginEnabled)
			if r.PluginEnabled {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " binary=%t checksum=%t lifecycle=%t", r.BinaryReachable, r.ChecksumValid, r.LifecycleOK)
			}
			if r.Name != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " name=%s@%s methods=%v", r.Name, r.Version, r.Methods)
			}
			if r.Error != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}),
	}

	verifier.AddCommand(check, doctor)
	return verifier
}
