package bank

import (
	"math/big"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
)

// Bank is an in-process settlement bank implementing both payment rails.
// It stands in for the native currency and the approved payment token so
// a single process can run the whole ledger. Accounts can be frozen to
// exercise the fail-loudly contract of the rails.
type Bank struct {
	mu sync.Mutex

	treasury domain.Address
	native   map[domain.Address]*big.Int
	token    map[domain.Address]*big.Int
	frozen   map[domain.Address]bool
}

func New(treasury domain.Address) *Bank {
	return &Bank{
		treasury: treasury.ToLower(),
		native:   map[domain.Address]*big.Int{},
		token:    map[domain.Address]*big.Int{},
		frozen:   map[domain.Address]bool{},
	}
}

func balance(m map[domain.Address]*big.Int, account domain.Address) *big.Int {
	if b, ok := m[account.ToLower()]; ok {
		return b
	}
	return big.NewInt(0)
}

func credit(m map[domain.Address]*big.Int, account domain.Address, amount *big.Int) {
	m[account.ToLower()] = new(big.Int).Add(balance(m, account), amount)
}

// DepositNative funds an account with native currency
func (b *Bank) DepositNative(account domain.Address, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	credit(b.native, account, amount)
}

// DepositToken funds an account with payment token units
func (b *Bank) DepositToken(account domain.Address, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	credit(b.token, account, amount)
}

// Freeze makes any payout toward account fail
func (b *Bank) Freeze(account domain.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen[account.ToLower()] = true
}

func (b *Bank) NativeBalanceOf(account domain.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(balance(b.native, account))
}

func (b *Bank) TokenBalanceOf(account domain.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(balance(b.token, account))
}

// Pay moves native currency out of the treasury. It fails loudly when the
// recipient cannot accept funds or the treasury lacks coverage.
func (b *Bank) Pay(c ctx.Ctx, to domain.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen[to.ToLower()] {
		c.WithField("to", to).Warn("payout to frozen account rejected")
		return domain.ErrTransferFailed
	}
	have := balance(b.native, b.treasury)
	if have.Cmp(amount) < 0 {
		c.WithFields(log.Fields{"have": have, "want": amount}).Error("treasury cannot cover payout")
		return domain.ErrTransferFailed
	}
	b.native[b.treasury] = new(big.Int).Sub(have, amount)
	credit(b.native, to, amount)
	return nil
}

// Transfer moves payment token units from the treasury float
func (b *Bank) Transfer(c ctx.Ctx, to domain.Address, amount *big.Int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen[to.ToLower()] {
		return false, nil
	}
	have := balance(b.token, b.treasury)
	if have.Cmp(amount) < 0 {
		return false, nil
	}
	b.token[b.treasury] = new(big.Int).Sub(have, amount)
	credit(b.token, to, amount)
	return true, nil
}

// TransferFrom pulls payment token units from one account to another
func (b *Bank) TransferFrom(c ctx.Ctx, from, to domain.Address, amount *big.Int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen[to.ToLower()] || b.frozen[from.ToLower()] {
		return false, nil
	}
	have := balance(b.token, from)
	if have.Cmp(amount) < 0 {
		return false, nil
	}
	b.token[from.ToLower()] = new(big.Int).Sub(have, amount)
	credit(b.token, to, amount)
	return true, nil
}
