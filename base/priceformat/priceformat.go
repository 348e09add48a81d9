package priceformat

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/goledger/domain"
)

// Formatter converts smallest unit amounts into display prices for event
// records and API responses. Decimals are fixed per currency at wiring
// time; the ledger itself only ever computes in the smallest unit.
type Formatter struct {
	nativeDecimals int32
	tokenDecimals  int32
}

func New(nativeDecimals, tokenDecimals int32) *Formatter {
	return &Formatter{
		nativeDecimals: nativeDecimals,
		tokenDecimals:  tokenDecimals,
	}
}

// DisplayPrice renders value in display units of the given currency
func (f *Formatter) DisplayPrice(payToken domain.Address, value *big.Int) string {
	if value == nil {
		return "0"
	}
	decimals := f.nativeDecimals
	if !payToken.IsEmpty() {
		decimals = f.tokenDecimals
	}
	return decimal.NewFromBigInt(value, -decimals).String()
}
