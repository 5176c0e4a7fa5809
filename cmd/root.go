package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

// cliState wires the app on first use so commands that need no
// configuration, like version, run without a config file.
type cliState struct {
	opts rootOptions
	app  *app
}

func (s *cliState) load(cmd *cobra.Command) (*app, error) {
	if s.app != nil {
		return s.app, nil
	}

	a, err := wireApp(cmd.Context(), s.opts, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	s.app = a

	return a, nil
}

func (s *cliState) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil

	return err
}

func Execute() error {
	return run(newRootCmd())
}

// run executes root and releases what its command wired, whether or not the
// command succeeded.
func run(root *cobra.Command, state *cliState) error {
	err := root.Execute()
	closeErr := state.close()
	if closeErr == nil {
		return err
	}

	_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", closeErr)
	return errors.Join(err, closeErr)
}

func newRootCmd() (*cobra.Command, *cliState) {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:           "ent",
		Short:         "Entitlements CLI (ent): inspect, redeem and consume entitlements",
		Long:          "ent signs you in to the entitlements service, shows your current entitlements and their consumption, redeems entitlements for your account and consumes boolean entitlements.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&state.opts.configFile, "config", "", "config file (default ~/.entitlements/config.{toml,yaml,json})")
	flags.StringVar(&state.opts.logLevel, "log-level", "", "log level override: debug, info, warn or error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(state),
		newLogoutCmd(state),
		newStatusCmd(state),
		newConsumptionCmd(state),
		newEntitlementsCmd(state),
		newExternalIDCmd(state),
		newRedeemCmd(state),
		newConsumeCmd(state),
		newResetCmd(state),
	)

	return rootCmd, state
}
