package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Params holds the caller-level defaults applied by the keeper facade.
type Params struct {
	Fee     FeeRate `json:"fee"`
	MaxHops uint32  `json:"max_hops"`
}

// DefaultParams returns default parameters for the amm module
func DefaultParams() Params {
	return Params{
		Fee:     DefaultFeeRate(),
		MaxHops: DefaultMaxHops,
	}
}

// Validate validates the set of params. A bad fee keeps its
// ErrInvalidFeeRate code.
func (p Params) Validate() error {
	if err := p.Fee.Validate(); err != nil {
		return errorsmod.Wrap(err, "invalid params")
	}
	if p.MaxHops == 0 {
		return ErrInvalidParams.Wrap("max hops must be positive")
	}
	return nil
}
