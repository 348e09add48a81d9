package domain

import (
	"math/big"

	"github.com/x-xyz/goledger/base/ctx"
)

// NativeRail pays out native currency held by the ledger. Implementations
// must fail loudly when the recipient cannot accept funds so the calling
// operation can abort.
type NativeRail interface {
	Pay(c ctx.Ctx, to Address, amount *big.Int) error
}

// TokenRail moves units of the approved payment token. A false return
// without an error is still a failed transfer and must abort the calling
// operation.
type TokenRail interface {
	Transfer(c ctx.Ctx, to Address, amount *big.Int) (bool, error)
	TransferFrom(c ctx.Ctx, from, to Address, amount *big.Int) (bool, error)
}
