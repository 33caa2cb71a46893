package cmd

import (
	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/keeper"
)

// appState is filled in by the root command before any subcommand runs.
type appState struct {
	config   Config
	logger   log.Logger
	keeper   keeper.Keeper
	registry *prometheus.Registry
}

// NewRootCmd creates the root command for ammcli.
func NewRootCmd() *cobra.Command {
	app := &appState{}

	rootCmd := &cobra.Command{
		Use:   "ammcli",
		Short: "Constant-product AMM quoting tool",
		Long: `ammcli prices swaps and liquidity operations against caller-supplied
constant-product pool reserves. Amounts are base-10 integers up to 2^128-1.
Results are printed as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			home, err := cmd.Flags().GetString(FlagHome)
			if err != nil {
				return err
			}

			cfg, err := LoadConfig(home, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			k, err := keeper.NewKeeper(logger, cfg.Params, keeper.WithMetrics(keeper.NewAMMMetrics(registry)))
			if err != nil {
				return err
			}

			logger.Debug("loaded config", "home", home, "fee", cfg.Params.Fee.String(), "max_hops", cfg.Params.MaxHops)

			app.config = cfg
			app.logger = logger
			app.keeper = k
			app.registry = registry
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.logMetrics()
		},
	}

	AddConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		NewQuoteCmd(app),
		NewQuoteExactOutCmd(app),
		NewSpotPriceCmd(app),
		NewInvariantCmd(app),
		NewDepositCmd(app),
		NewWithdrawCmd(app),
		NewRouteCmd(app),
	)

	return rootCmd
}

// logMetrics writes the counters recorded during this invocation at debug level.
func (a *appState) logMetrics() error {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]any, 0, 2*len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName(), lp.GetValue())
			}
			a.logger.Debug(mf.GetName(), append(labels, "value", m.GetCounter().GetValue())...)
		}
	}
	return nil
}
