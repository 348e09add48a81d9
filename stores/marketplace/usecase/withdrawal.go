package usecase

import (
	"math/big"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type WithdrawalUseCaseCfg struct {
	OpLock         *sync.Mutex
	WithdrawalRepo marketplace.WithdrawalRepo
	NativeRail     domain.NativeRail
	Clock          domain.Clock
	Event          marketplace.EventUseCase
}

type withdrawalImpl struct {
	opLock         *sync.Mutex
	withdrawalRepo marketplace.WithdrawalRepo
	nativeRail     domain.NativeRail
	clock          domain.Clock
	event          marketplace.EventUseCase
}

func NewWithdrawalUseCase(cfg *WithdrawalUseCaseCfg) marketplace.WithdrawalUseCase {
	if cfg.OpLock == nil {
		panic("OpLock can not be nil")
	}
	return &withdrawalImpl{
		opLock:         cfg.OpLock,
		withdrawalRepo: cfg.WithdrawalRepo,
		nativeRail:     cfg.NativeRail,
		clock:          cfg.Clock,
		event:          cfg.Event,
	}
}

func (im *withdrawalImpl) Withdraw(c ctx.Ctx, caller domain.Address) (*big.Int, error) {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	// zero the balance before paying out
	amount, err := im.withdrawalRepo.Take(c, caller)
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return nil, domain.ErrNothingToWithdraw
	}

	if err := im.nativeRail.Pay(c, caller, amount); err != nil {
		c.WithFields(log.Fields{"account": caller, "amount": amount, "err": err}).Error("nativeRail.Pay failed")
		// restore the balance so the payout can be retried
		if cerr := im.withdrawalRepo.Credit(c, caller, amount); cerr != nil {
			c.WithFields(log.Fields{"account": caller, "amount": amount, "err": cerr}).Error("re-credit after failed payout failed")
		}
		return nil, domain.ErrTransferFailed
	}

	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeWithdraw,
		Account: caller,
		Price:   amount.String(),
		Time:    im.clock.Now(),
	})
	return amount, nil
}

func (im *withdrawalImpl) BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	return im.withdrawalRepo.BalanceOf(c, account)
}
