package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const (
	EnvPrefix      = "AMMCLI"
	ConfigFileName = "ammcli.toml"

	FlagHome           = "home"
	FlagFeeNumerator   = "fee-numerator"
	FlagFeeDenominator = "fee-denominator"
	FlagMaxHops        = "max-hops"
	FlagLogLevel       = "log-level"
	FlagLogFormat      = "log-format"

	defaultLogLevel  = "info"
	defaultLogFormat = "plain"
)

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	FlagFeeNumerator:   "fee.numerator",
	FlagFeeDenominator: "fee.denominator",
	FlagMaxHops:        "route.max-hops",
	FlagLogLevel:       "log.level",
	FlagLogFormat:      "log.format",
}

// Config is the resolved ammcli configuration.
type Config struct {
	Params    types.Params
	LogLevel  string
	LogFormat string
}

// DefaultHome returns the configured ammcli home directory.
// It honors AMMCLI_HOME and falls back to ~/.ammcli.
func DefaultHome() string {
	if home := os.Getenv(EnvPrefix + "_HOME"); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".ammcli"
	}
	return filepath.Join(userHome, ".ammcli")
}

// ConfigPath returns the location of the config file under home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", ConfigFileName)
}

// LoadConfig reads <home>/config/ammcli.toml, then applies AMMCLI_*
// environment variables and finally any flags set on the command line.
// A missing config file is not an error.
func LoadConfig(home string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(ConfigPath(home))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("fee.numerator", types.DefaultFeeNumerator)
	v.SetDefault("fee.denominator", types.DefaultFeeDenominator)
	v.SetDefault("route.max-hops", types.DefaultMaxHops)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", ConfigPath(home), err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	numerator, err := cast.ToUint64E(v.Get("fee.numerator"))
	if err != nil {
		return Config{}, fmt.Errorf("fee.numerator: %w", err)
	}
	denominator, err := cast.ToUint64E(v.Get("fee.denominator"))
	if err != nil {
		return Config{}, fmt.Errorf("fee.denominator: %w", err)
	}
	maxHops, err := cast.ToUint32E(v.Get("route.max-hops"))
	if err != nil {
		return Config{}, fmt.Errorf("route.max-hops: %w", err)
	}

	cfg := Config{
		Params: types.Params{
			Fee:     types.NewFeeRate(numerator, denominator),
			MaxHops: maxHops,
		},
		LogLevel:  cast.ToString(v.Get("log.level")),
		LogFormat: cast.ToString(v.Get("log.format")),
	}
	if err := cfg.Params.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AddConfigFlags registers the persistent flags that override config values.
func AddConfigFlags(flags *pflag.FlagSet) {
	flags.String(FlagHome, DefaultHome(), "directory holding config/"+ConfigFileName)
	flags.Uint64(FlagFeeNumerator, types.DefaultFeeNumerator, "swap fee numerator")
	flags.Uint64(FlagFeeDenominator, types.DefaultFeeDenominator, "swap fee denominator")
	flags.Uint32(FlagMaxHops, types.DefaultMaxHops, "maximum number of hops in a routed quote")
	flags.String(FlagLogLevel, defaultLogLevel, "log level (trace|debug|info|warn|error|disabled)")
	flags.String(FlagLogFormat, defaultLogFormat, "log format (plain|json)")
}
