package marketplace

import (
	"math/big"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

// WithdrawalRepo tracks native currency owed to outbid auction
// participants. Balances only move through Credit and Take; Take zeroes
// the balance in the same step so callers can pay out afterwards without
// a window where the balance could be withdrawn twice.
type WithdrawalRepo interface {
	BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error)
	Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error
	// Take zeroes the account's balance and returns the prior value
	Take(c ctx.Ctx, account domain.Address) (*big.Int, error)
	// Total is the sum of all pending balances
	Total(c ctx.Ctx) (*big.Int, error)
}

type WithdrawalUseCase interface {
	Withdraw(c ctx.Ctx, caller domain.Address) (*big.Int, error)
	BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error)
}
