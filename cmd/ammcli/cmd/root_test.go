package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/cpamm/x/amm/types"
)

func executeCmd(t *testing.T, home string, args ...string) (map[string]any, error) {
	t.Helper()

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(append([]string{"--" + FlagHome, home}, args...))

	if err := root.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), "output: %s", out.String())
	return result, nil
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	configDir := filepath.Join(home, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte(body), 0o644))
}

func TestQuoteCmd(t *testing.T) {
	home := t.TempDir()

	out, err := executeCmd(t, home, "quote", "1000000", "1000000", "1000")
	require.NoError(t, err)
	require.Equal(t, "996", out["amount_out"])
	require.Equal(t, "3/1000", out["fee"])

	out, err = executeCmd(t, home, "quote", "1000", "1000", "1")
	require.NoError(t, err)
	require.Equal(t, "0", out["amount_out"])

	out, err = executeCmd(t, home, "quote", "1000000", "1000000", "1000", "--detailed")
	require.NoError(t, err)
	require.Equal(t, "3", out["fee_amount"])
	require.Equal(t, "999004", out["reserve_out_after"])
	require.Equal(t, "1.000000000000000000", out["spot_price"])
	require.Equal(t, "0.004000000000000000", out["price_impact"])

	out, err = executeCmd(t, home, "quote", "1000", "1000", "100", "--fee-numerator", "0", "--fee-denominator", "1")
	require.NoError(t, err)
	require.Equal(t, "90", out["amount_out"])
}

func TestQuoteCmdErrors(t *testing.T) {
	home := t.TempDir()

	_, err := executeCmd(t, home, "quote", "0", "1000", "1")
	require.ErrorIs(t, err, types.ErrZeroReserve)

	errOut := NewErrorOutput(err)
	require.Equal(t, types.ModuleName, errOut.Codespace)
	require.Equal(t, uint32(2), errOut.Code)
	require.Equal(t, "zero_reserve", errOut.Name)
	require.NotEmpty(t, errOut.Hint)

	maxAmount := types.MaxAmount.String()
	_, err = executeCmd(t, home, "quote", maxAmount, maxAmount, maxAmount)
	require.ErrorIs(t, err, types.ErrOverflow)

	_, err = executeCmd(t, home, "quote", "1000", "lots", "1")
	require.ErrorContains(t, err, "invalid reserve-out")

	_, err = executeCmd(t, home, "quote", "1000", "1000", "1", "--fee-denominator", "0")
	require.ErrorIs(t, err, types.ErrInvalidFeeRate)
	require.Equal(t, "invalid_fee_rate", NewErrorOutput(err).Name)
	require.Equal(t, uint32(6), NewErrorOutput(err).Code)

	_, err = executeCmd(t, home, "quote", "1000", "1000", "1", "--max-hops", "0")
	require.ErrorIs(t, err, types.ErrInvalidParams)

	buf := new(bytes.Buffer)
	PrintError(buf, types.ErrDivisionByZero.Wrap("total shares is zero"))
	var printed ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &printed))
	require.Equal(t, uint32(4), printed.Code)
}

func TestLiquidityCmds(t *testing.T) {
	home := t.TempDir()

	out, err := executeCmd(t, home, "deposit", "0", "0", "0", "10000", "40000")
	require.NoError(t, err)
	require.Equal(t, "20000", out["shares"])
	require.NotContains(t, out, "matching_amount_b")

	out, err = executeCmd(t, home, "deposit", "10000", "40000", "20000", "1000", "5000")
	require.NoError(t, err)
	require.Equal(t, "2000", out["shares"])
	require.Equal(t, "4000", out["matching_amount_b"])

	out, err = executeCmd(t, home, "withdraw", "10000", "40000", "20000", "2000")
	require.NoError(t, err)
	require.Equal(t, "1000", out["amount_a"])
	require.Equal(t, "4000", out["amount_b"])

	_, err = executeCmd(t, home, "withdraw", "10000", "40000", "20000", "20001")
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

func TestPoolCmds(t *testing.T) {
	home := t.TempDir()

	out, err := executeCmd(t, home, "invariant", "1000", "2000")
	require.NoError(t, err)
	require.Equal(t, "2000000", out["k"])

	out, err = executeCmd(t, home, "spot-price", "1000", "2000")
	require.NoError(t, err)
	require.Equal(t, "2.000000000000000000", out["price"])

	out, err = executeCmd(t, home, "quote-exact-out", "1000", "1000", "100")
	require.NoError(t, err)
	require.Equal(t, "113", out["amount_in"])
}

func TestRouteCmd(t *testing.T) {
	home := t.TempDir()

	out, err := executeCmd(t, home, "route", "1000",
		"--hop", "1000000:1000000:upaw:uatom",
		"--hop", "1000000:2000000:uatom:uusdt")
	require.NoError(t, err)
	require.Equal(t, "1984", out["amount_out"])
	require.Equal(t, []any{"996", "1984"}, out["hop_amounts"])

	hopsFile := filepath.Join(home, "hops.json")
	require.NoError(t, os.WriteFile(hopsFile, []byte(`[
		{"reserve_in": "1000000", "reserve_out": "1000000"},
		{"reserve_in": "1000000", "reserve_out": "2000000", "fee": {"numerator": 3, "denominator": 1000}}
	]`), 0o644))
	out, err = executeCmd(t, home, "route", "1000", "--hops-file", hopsFile)
	require.NoError(t, err)
	require.Equal(t, "1984", out["amount_out"])

	_, err = executeCmd(t, home, "route", "1000", "--hops-file", hopsFile, "--hop", "1:1")
	require.ErrorContains(t, err, "mutually exclusive")

	_, err = executeCmd(t, home, "route", "1000", "--hop", "1:1", "--hop", "1:1", "--max-hops", "1")
	require.ErrorIs(t, err, types.ErrInvalidRoute)

	_, err = executeCmd(t, home, "route", "1000", "--hop", "1000:1000:a:b", "--hop", "1000:1000:c:d")
	require.ErrorIs(t, err, types.ErrInvalidRoute)

	_, err = executeCmd(t, home, "route", "1000", "--hop", "1000")
	require.ErrorContains(t, err, "invalid hop")
}

func TestLoadConfig(t *testing.T) {
	home := t.TempDir()

	// Missing file yields defaults
	cfg, err := LoadConfig(home, nil)
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), cfg.Params)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "plain", cfg.LogFormat)

	writeConfig(t, home, `
[fee]
numerator = 1
denominator = 100

[route]
max-hops = 2

[log]
level = "debug"
format = "json"
`)
	cfg, err = LoadConfig(home, nil)
	require.NoError(t, err)
	require.Equal(t, types.NewFeeRate(1, 100), cfg.Params.Fee)
	require.Equal(t, uint32(2), cfg.Params.MaxHops)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)

	// Environment overrides the file
	t.Setenv("AMMCLI_FEE_NUMERATOR", "5")
	t.Setenv("AMMCLI_ROUTE_MAX_HOPS", "4")
	cfg, err = LoadConfig(home, nil)
	require.NoError(t, err)
	require.Equal(t, types.NewFeeRate(5, 100), cfg.Params.Fee)
	require.Equal(t, uint32(4), cfg.Params.MaxHops)

	// Flags override the environment; unset flags do not
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddConfigFlags(flags)
	require.NoError(t, flags.Set(FlagFeeNumerator, "7"))
	cfg, err = LoadConfig(home, flags)
	require.NoError(t, err)
	require.Equal(t, types.NewFeeRate(7, 100), cfg.Params.Fee)
	require.Equal(t, uint32(4), cfg.Params.MaxHops)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	home := t.TempDir()

	writeConfig(t, home, "[fee]\nnumerator = 10\ndenominator = 5\n")
	_, err := LoadConfig(home, nil)
	require.ErrorIs(t, err, types.ErrInvalidFeeRate)

	writeConfig(t, home, "[route]\nmax-hops = 0\n")
	_, err = LoadConfig(home, nil)
	require.ErrorIs(t, err, types.ErrInvalidParams)

	writeConfig(t, home, "[fee]\nnumerator = \"lots\"\n")
	_, err = LoadConfig(home, nil)
	require.ErrorContains(t, err, "fee.numerator")

	writeConfig(t, home, "not toml [")
	_, err = LoadConfig(home, nil)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := NewLogger(buf, "info", "json")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	require.Contains(t, buf.String(), `"message":"shown"`)
	require.NotContains(t, buf.String(), "hidden")

	_, err = NewLogger(buf, "loud", "plain")
	require.Error(t, err)
	_, err = NewLogger(buf, "info", "xml")
	require.Error(t, err)
}
