package cmd

import (
	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const flagDetailed = "detailed"

type quoteOutput struct {
	AmountIn  math.Uint `json:"amount_in"`
	AmountOut math.Uint `json:"amount_out"`
	Fee       string    `json:"fee"`
}

type detailedQuoteOutput struct {
	types.SwapQuote
	Fee         string         `json:"fee"`
	SpotPrice   math.LegacyDec `json:"spot_price"`
	PriceImpact math.LegacyDec `json:"price_impact"`
}

// NewQuoteCmd returns the exact-input swap quote command.
func NewQuoteCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [reserve-in] [reserve-out] [amount-in]",
		Short: "Quote the output of swapping amount-in against a pool",
		Example: `ammcli quote 1000000 1000000 1000
ammcli quote 1000000 1000000 1000 --detailed --fee-numerator 1 --fee-denominator 100`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts([]string{"reserve-in", "reserve-out", "amount-in"}, args)
			if err != nil {
				return err
			}
			reserveIn, reserveOut, amountIn := amounts[0], amounts[1], amounts[2]
			fee := app.keeper.Params().Fee.String()

			detailed, err := cmd.Flags().GetBool(flagDetailed)
			if err != nil {
				return err
			}
			if !detailed {
				out, err := app.keeper.QuoteSwap(cmd.Context(), reserveIn, reserveOut, amountIn)
				if err != nil {
					return err
				}
				return printJSON(cmd, quoteOutput{AmountIn: amountIn, AmountOut: out, Fee: fee})
			}

			quote, err := app.keeper.QuoteSwapDetailed(cmd.Context(), reserveIn, reserveOut, amountIn)
			if err != nil {
				return err
			}
			price, err := app.keeper.SpotPrice(cmd.Context(), reserveIn, reserveOut)
			if err != nil {
				return err
			}
			impact, err := app.keeper.PriceImpact(cmd.Context(), reserveIn, reserveOut, amountIn)
			if err != nil {
				return err
			}
			return printJSON(cmd, detailedQuoteOutput{SwapQuote: quote, Fee: fee, SpotPrice: price, PriceImpact: impact})
		},
	}

	cmd.Flags().Bool(flagDetailed, false, "include fee, post-trade reserves, spot price and price impact")
	return cmd
}

// NewQuoteExactOutCmd returns the exact-output swap quote command.
func NewQuoteExactOutCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:     "quote-exact-out [reserve-in] [reserve-out] [amount-out]",
		Short:   "Quote the smallest input that buys amount-out from a pool",
		Example: "ammcli quote-exact-out 1000 1000 100",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts([]string{"reserve-in", "reserve-out", "amount-out"}, args)
			if err != nil {
				return err
			}

			in, err := app.keeper.QuoteSwapExactOut(cmd.Context(), amounts[0], amounts[1], amounts[2])
			if err != nil {
				return err
			}
			return printJSON(cmd, quoteOutput{AmountIn: in, AmountOut: amounts[2], Fee: app.keeper.Params().Fee.String()})
		},
	}
}

// NewSpotPriceCmd returns the marginal price command.
func NewSpotPriceCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "spot-price [reserve-in] [reserve-out]",
		Short: "Show the pre-fee marginal price reserve-out / reserve-in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts([]string{"reserve-in", "reserve-out"}, args)
			if err != nil {
				return err
			}

			price, err := app.keeper.SpotPrice(cmd.Context(), amounts[0], amounts[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]math.LegacyDec{"price": price})
		},
	}
}

// NewInvariantCmd returns the constant-product command.
func NewInvariantCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "invariant [reserve-in] [reserve-out]",
		Short: "Compute the constant product k = reserve-in * reserve-out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts([]string{"reserve-in", "reserve-out"}, args)
			if err != nil {
				return err
			}

			k, err := app.keeper.ComputeInvariant(cmd.Context(), amounts[0], amounts[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]math.Uint{"k": k})
		},
	}
}
