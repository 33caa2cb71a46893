package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const (
	flagHop      = "hop"
	flagHopsFile = "hops-file"
)

// NewRouteCmd returns the multi-hop quote command.
func NewRouteCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route [amount-in]",
		Short: "Quote amount-in through a chain of pools",
		Long: `Quote amount-in through a chain of pools, feeding each hop's output into the
next. Hops are given in order with --hop reserve-in:reserve-out[:denom-in:denom-out]
or as a JSON array in --hops-file. Hops without a fee use the configured fee.`,
		Example: `ammcli route 1000 --hop 1000000:1000000:upaw:uatom --hop 1000000:2000000:uatom:uusdt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}

			specs, err := cmd.Flags().GetStringArray(flagHop)
			if err != nil {
				return err
			}
			file, err := cmd.Flags().GetString(flagHopsFile)
			if err != nil {
				return err
			}

			fee := app.keeper.Params().Fee
			var hops []types.Hop
			switch {
			case file != "" && len(specs) > 0:
				return fmt.Errorf("--%s and --%s are mutually exclusive", flagHop, flagHopsFile)
			case file != "":
				hops, err = readHopsFile(file, fee)
			default:
				hops, err = parseHops(specs, fee)
			}
			if err != nil {
				return err
			}

			quote, err := app.keeper.QuoteRoute(cmd.Context(), hops, amountIn)
			if err != nil {
				return err
			}
			return printJSON(cmd, quote)
		},
	}

	cmd.Flags().StringArray(flagHop, nil, "pool hop as reserve-in:reserve-out[:denom-in:denom-out], repeatable")
	cmd.Flags().String(flagHopsFile, "", "JSON file holding the route hops")
	return cmd
}

func parseHops(specs []string, fee types.FeeRate) ([]types.Hop, error) {
	hops := make([]types.Hop, 0, len(specs))
	for i, spec := range specs {
		hop, err := parseHop(spec, fee)
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		hops = append(hops, hop)
	}
	return hops, nil
}

func parseHop(spec string, fee types.FeeRate) (types.Hop, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 && len(parts) != 4 {
		return types.Hop{}, fmt.Errorf("invalid hop %q: want reserve-in:reserve-out[:denom-in:denom-out]", spec)
	}

	reserveIn, err := parseAmount("reserve-in", parts[0])
	if err != nil {
		return types.Hop{}, err
	}
	reserveOut, err := parseAmount("reserve-out", parts[1])
	if err != nil {
		return types.Hop{}, err
	}

	hop := types.Hop{ReserveIn: reserveIn, ReserveOut: reserveOut, Fee: fee}
	if len(parts) == 4 {
		hop.DenomIn, hop.DenomOut = parts[2], parts[3]
	}
	return hop, nil
}

func readHopsFile(path string, fee types.FeeRate) ([]types.Hop, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var hops []types.Hop
	if err := json.Unmarshal(bz, &hops); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range hops {
		if hops[i].Fee == (types.FeeRate{}) {
			hops[i].Fee = fee
		}
	}
	return hops, nil
}
