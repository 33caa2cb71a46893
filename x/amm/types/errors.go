package types

import (
	stderrors "errors"

	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrZeroReserve           = errors.Register(ModuleName, 2, "pool reserve is zero")
	ErrOverflow              = errors.Register(ModuleName, 3, "arithmetic overflow")
	ErrDivisionByZero        = errors.Register(ModuleName, 4, "division by zero")
	ErrInsufficientShares    = errors.Register(ModuleName, 5, "insufficient liquidity shares")
	ErrInvalidFeeRate        = errors.Register(ModuleName, 6, "invalid fee rate")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 7, "insufficient liquidity in pool")
	ErrInvalidRoute          = errors.Register(ModuleName, 8, "invalid swap route")
	ErrInvariantViolation    = errors.Register(ModuleName, 9, "constant product invariant decreased")
	ErrInvalidParams         = errors.Register(ModuleName, 10, "invalid module params")
)

// ErrorCode returns the codespace and code registered for err. Errors that
// were not produced by this module report the SDK's internal codespace.
func ErrorCode(err error) (string, uint32) {
	codespace, code, _ := errors.ABCIInfo(err, false)
	return codespace, code
}

// ErrorName returns a short stable label for err, suitable for metric labels
// and CLI output.
func ErrorName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case ErrZeroReserve.Is(err):
		return "zero_reserve"
	case ErrOverflow.Is(err):
		return "overflow"
	case ErrDivisionByZero.Is(err):
		return "division_by_zero"
	case ErrInsufficientShares.Is(err):
		return "insufficient_shares"
	case ErrInvalidFeeRate.Is(err):
		return "invalid_fee_rate"
	case ErrInsufficientLiquidity.Is(err):
		return "insufficient_liquidity"
	case ErrInvalidRoute.Is(err):
		return "invalid_route"
	case ErrInvariantViolation.Is(err):
		return "invariant_violation"
	case ErrInvalidParams.Is(err):
		return "invalid_params"
	default:
		return "internal"
	}
}

// RecoverySuggestions provides an actionable hint for each error type
var RecoverySuggestions = map[error]string{
	ErrZeroReserve:           "Both reserves must be positive. Seed the pool with an initial deposit before quoting.",
	ErrOverflow:              "An intermediate value exceeded 128 bits. Split the trade into smaller amounts.",
	ErrDivisionByZero:        "A divisor was zero. Check the fee denominator and that the pool has outstanding shares.",
	ErrInsufficientShares:    "Cannot burn more shares than exist. Query total shares and retry with a smaller amount.",
	ErrInvalidFeeRate:        "Fee denominator must be positive and the numerator must not exceed it.",
	ErrInsufficientLiquidity: "Requested output reaches the whole reserve. Request a smaller output.",
	ErrInvalidRoute:          "Route must have between 1 and max-hops hops, with each hop's output denom feeding the next.",
	ErrInvariantViolation:    "Post-trade reserves would shrink the constant product. Recheck the reserve snapshot.",
	ErrInvalidParams:         "Check route.max-hops in the config file; it must be positive.",
}

// GetRecoverySuggestion returns the recovery suggestion for an error
func GetRecoverySuggestion(err error) string {
	// Unwrap to find the root error
	rootErr := err
	for {
		if unwrapped := stderrors.Unwrap(rootErr); unwrapped != nil {
			rootErr = unwrapped
		} else {
			break
		}
	}

	if suggestion, ok := RecoverySuggestions[rootErr]; ok {
		return suggestion
	}
	return ""
}
