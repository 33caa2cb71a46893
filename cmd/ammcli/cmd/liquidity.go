package cmd

import (
	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/keeper"
)

type depositOutput struct {
	Shares math.Uint `json:"shares"`
	// MatchingAmountB is the token B amount that pairs with amount-a at the
	// current pool ratio. Omitted when bootstrapping.
	MatchingAmountB *math.Uint `json:"matching_amount_b,omitempty"`
}

type withdrawOutput struct {
	AmountA math.Uint `json:"amount_a"`
	AmountB math.Uint `json:"amount_b"`
}

// NewDepositCmd returns the liquidity deposit command.
func NewDepositCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit [reserve-a] [reserve-b] [total-shares] [amount-a] [amount-b]",
		Short: "Compute the shares minted for depositing amount-a and amount-b",
		Long: `Compute the shares minted for a deposit. With total-shares 0 the pool is
bootstrapped and sqrt(amount-a * amount-b) shares are minted; otherwise the
depositor is credited for the scarcer side only.`,
		Example: "ammcli deposit 0 0 0 10000 40000",
		Args:    cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts([]string{"reserve-a", "reserve-b", "total-shares", "amount-a", "amount-b"}, args)
			if err != nil {
				return err
			}
			reserveA, reserveB, totalShares, amountA, amountB := amounts[0], amounts[1], amounts[2], amounts[3], amounts[4]

			shares, err := app.keeper.DepositShares(cmd.Context(), reserveA, reserveB, totalShares, amountA, amountB)
			if err != nil {
				return err
			}

			out := depositOutput{Shares: shares}
			if !totalShares.IsZero() {
				matching, err := keeper.ProportionalAmount(amountA, reserveA, reserveB)
				if err != nil {
					return err
				}
				out.MatchingAmountB = &matching
			}
			return printJSON(cmd, out)
		},
	}
}

// NewWithdrawCmd returns the liquidity withdrawal command.
func NewWithdrawCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:     "withdraw [reserve-a] [reserve-b] [total-shares] [shares]",
		Short:   "Compute the amounts released by burning shares",
		Example: "ammcli withdraw 10000 40000 20000 2000",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts([]string{"reserve-a", "reserve-b", "total-shares", "shares"}, args)
			if err != nil {
				return err
			}

			amountA, amountB, err := app.keeper.WithdrawAmounts(cmd.Context(), amounts[0], amounts[1], amounts[2], amounts[3])
			if err != nil {
				return err
			}
			return printJSON(cmd, withdrawOutput{AmountA: amountA, AmountB: amountB})
		},
	}
}
