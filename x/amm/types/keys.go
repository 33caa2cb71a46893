package types

const (
	// ModuleName defines the module name and the error codespace
	ModuleName = "amm"

	// Default fee of 0.3%, expressed as numerator over denominator
	DefaultFeeNumerator   uint64 = 3
	DefaultFeeDenominator uint64 = 1000

	// DefaultMaxHops bounds the number of pools in a routed quote
	DefaultMaxHops uint32 = 5
)
