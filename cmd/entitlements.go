package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/entitlements-cli/internal/adapters/graphql"
	"github.com/bnema/entitlements-cli/internal/adapters/render/consumption"
	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/bnema/entitlements-cli/internal/ports"
	"github.com/spf13/cobra"
)

// cacheFlags selects how read commands use the response cache.
type cacheFlags struct {
	only   bool
	prefer bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.only, "cached", false, "answer from the response cache only, without contacting the service")
	cmd.Flags().BoolVar(&f.prefer, "prefer-cache", false, "answer from the response cache when possible, else fetch")
	cmd.MarkFlagsMutuallyExclusive("cached", "prefer-cache")
}

func (f cacheFlags) context(ctx context.Context) context.Context {
	switch {
	case f.only:
		return ports.WithCachePolicy(ctx, ports.CachePolicyCacheOnly)
	case f.prefer:
		return ports.WithCachePolicy(ctx, ports.CachePolicyCacheFirst)
	default:
		return ctx
	}
}

func newConsumptionCmd(state *cliState) *cobra.Command {
	var jsonOutput bool
	var cache cacheFlags

	cmd := &cobra.Command{
		Use:   "consumption",
		Short: "Show current entitlements and their consumption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			var result domain.EntitlementsConsumption
			err = withSpinner(cache.context(cmd.Context()), cmd.ErrOrStderr(), "Fetching entitlements consumption...", func(ctx context.Context) error {
				var fetchErr error
				result, fetchErr = app.client.GetEntitlementsConsumption(ctx)
				return fetchErr
			})
			if err != nil {
				return explain(err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			out, err := consumption.RenderConsumption(result, consumption.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render consumption: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON output")
	cache.register(cmd)
	return cmd
}

func newEntitlementsCmd(state *cliState) *cobra.Command {
	var jsonOutput bool
	var cache cacheFlags

	cmd := &cobra.Command{
		Use:   "entitlements",
		Short: "Show the current entitlements set (deprecated, prefer consumption)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			set, err := app.client.GetEntitlements(cache.context(cmd.Context()))
			if err != nil {
				return explain(err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), set)
			}
			return printSet(cmd.OutOrStdout(), set, app)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON output")
	cache.register(cmd)
	return cmd
}

func newExternalIDCmd(state *cliState) *cobra.Command {
	var cache cacheFlags

	cmd := &cobra.Command{
		Use:   "external-id",
		Short: "Print the external id the entitlements service knows you by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			id, err := app.client.GetExternalID(cache.context(cmd.Context()))
			if err != nil {
				return explain(err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	cache.register(cmd)
	return cmd
}

func newRedeemCmd(state *cliState) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Redeem entitlements for the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			var set domain.EntitlementsSet
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Redeeming entitlements...", func(ctx context.Context) error {
				var redeemErr error
				set, redeemErr = app.client.RedeemEntitlements(ctx)
				return redeemErr
			})
			if err != nil {
				return explain(err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), set)
			}
			return printSet(cmd.OutOrStdout(), &set, app)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON output")
	return cmd
}

func newConsumeCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "consume <name>...",
		Short: "Consume one or more boolean entitlements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			if err := app.client.ConsumeBooleanEntitlements(cmd.Context(), args); err != nil {
				return explain(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Consumed %d entitlement(s).\n", len(args))
			return err
		},
	}
}

func newResetCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear cached responses and pending client state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := state.load(cmd)
			if err != nil {
				return err
			}

			if err := app.client.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Client state cleared.")
			return err
		},
	}
}

func printSet(w io.Writer, set *domain.EntitlementsSet, app *app) error {
	out, err := consumption.RenderSet(set, consumption.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render entitlements set: %w", err)
	}

	_, err = fmt.Fprintln(w, out)
	return err
}

func writeJSON(w io.Writer, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

// explain adds a next step to errors the user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		return fmt.Errorf("%w: run `ent login` first", err)
	case errors.Is(err, domain.ErrNotAuthorized):
		return fmt.Errorf("%w: your session may have been revoked, run `ent login` again", err)
	case errors.Is(err, graphql.ErrCacheMiss):
		return fmt.Errorf("%w: run without --cached to fetch it", err)
	default:
		return err
	}
}
