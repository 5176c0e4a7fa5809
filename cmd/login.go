package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const defaultLoginTimeout = 5 * time.Minute

func newLoginCmd(state *cliState) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the device authorization flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}
			if app.cfg.IdentityService.Issuer == "" || app.cfg.IdentityService.ClientID == "" {
				return errors.New("identityService.issuer and identityService.clientId must be configured to sign in")
			}

			ctx := cmd.Context()
			code, err := app.deviceFlow.RequestDeviceCode(ctx, app.cfg.IdentityService.Scopes)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Open %s and enter code %s\n", code.VerificationURL, code.UserCode); err != nil {
				return err
			}

			token, err := app.deviceFlow.PollToken(ctx, code, timeout)
			if err != nil {
				return err
			}
			if err := app.session.Save(ctx, token); err != nil {
				return err
			}
			if err := app.client.Reset(ctx); err != nil {
				app.logger.WarnContext(ctx, "clear cached responses after sign in", "error", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultLoginTimeout, "how long to wait for the authorization")
	return cmd
}

func newLogoutCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := app.session.SignOut(ctx); err != nil {
				return err
			}
			if err := app.client.Reset(ctx); err != nil {
				return fmt.Errorf("clear cached responses: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

func newStatusCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether you are signed in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			signedIn, err := app.session.IsSignedIn(ctx)
			if err != nil {
				return err
			}
			if !signedIn {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return err
			}

			expiresAt, ok, err := app.session.ExpiresAt(ctx)
			if err != nil {
				return err
			}
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
				return err
			}

			remaining := expiresAt.Sub(app.now()).Round(time.Minute)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in, token expires in %s (%s).\n", remaining, expiresAt.Local().Format(time.DateTime))
			return err
		},
	}
}
