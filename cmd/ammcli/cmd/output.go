package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// ErrorOutput is the JSON body printed for a failed command.
type ErrorOutput struct {
	Error     string `json:"error"`
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Name      string `json:"name"`
	Hint      string `json:"hint,omitempty"`
}

// NewErrorOutput describes err with its registered code.
func NewErrorOutput(err error) ErrorOutput {
	codespace, code := types.ErrorCode(err)
	return ErrorOutput{
		Error:     err.Error(),
		Codespace: codespace,
		Code:      code,
		Name:      types.ErrorName(err),
		Hint:      types.GetRecoverySuggestion(err),
	}
}

// PrintError writes err to w as JSON.
func PrintError(w io.Writer, err error) {
	bz, mErr := json.MarshalIndent(NewErrorOutput(err), "", "  ")
	if mErr != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(bz))
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

func parseAmount(name, s string) (math.Uint, error) {
	amount, err := math.ParseUint(s)
	if err != nil {
		return math.Uint{}, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return amount, nil
}

// parseAmounts parses args positionally, naming each by names.
func parseAmounts(names []string, args []string) ([]math.Uint, error) {
	amounts := make([]math.Uint, len(args))
	for i, arg := range args {
		amount, err := parseAmount(names[i], arg)
		if err != nil {
			return nil, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}
