package repository

import (
	"math/big"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type withdrawalRepoImpl struct {
	sync.Mutex

	balances map[domain.Address]*big.Int
}

// NewWithdrawalRepo returns the in-memory pending withdrawal store
func NewWithdrawalRepo() marketplace.WithdrawalRepo {
	return &withdrawalRepoImpl{balances: map[domain.Address]*big.Int{}}
}

func (im *withdrawalRepoImpl) BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	im.Lock()
	defer im.Unlock()
	if b, ok := im.balances[account.ToLower()]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

func (im *withdrawalRepoImpl) Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	im.Lock()
	defer im.Unlock()
	key := account.ToLower()
	cur, ok := im.balances[key]
	if !ok {
		cur = big.NewInt(0)
	}
	im.balances[key] = new(big.Int).Add(cur, amount)
	return nil
}

// Take zeroes the balance and hands back the prior value in one step
func (im *withdrawalRepoImpl) Take(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	im.Lock()
	defer im.Unlock()
	key := account.ToLower()
	cur, ok := im.balances[key]
	if !ok || cur.Sign() == 0 {
		return big.NewInt(0), nil
	}
	delete(im.balances, key)
	return cur, nil
}

func (im *withdrawalRepoImpl) Total(c ctx.Ctx) (*big.Int, error) {
	im.Lock()
	defer im.Unlock()
	total := big.NewInt(0)
	for _, b := range im.balances {
		total.Add(total, b)
	}
	return total, nil
}
