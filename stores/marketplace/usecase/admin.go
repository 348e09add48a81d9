package usecase

import (
	"math/big"
	"strconv"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/base/ptr"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type AdminUseCaseCfg struct {
	OpLock         *sync.Mutex
	ConfigRepo     marketplace.ConfigRepo
	ApprovalRepo   marketplace.ApprovalRepo
	AuctionRepo    marketplace.AuctionRepo
	WithdrawalRepo marketplace.WithdrawalRepo
	Registry       item.Registry
	NativeRail     domain.NativeRail
	Clock          domain.Clock
	Event          marketplace.EventUseCase
}

type adminImpl struct {
	opLock         *sync.Mutex
	configRepo     marketplace.ConfigRepo
	approvalRepo   marketplace.ApprovalRepo
	auctionRepo    marketplace.AuctionRepo
	withdrawalRepo marketplace.WithdrawalRepo
	registry       item.Registry
	nativeRail     domain.NativeRail
	clock          domain.Clock
	event          marketplace.EventUseCase
}

func NewAdminUseCase(cfg *AdminUseCaseCfg) marketplace.AdminUseCase {
	if cfg.OpLock == nil {
		panic("OpLock can not be nil")
	}
	return &adminImpl{
		opLock:         cfg.OpLock,
		configRepo:     cfg.ConfigRepo,
		approvalRepo:   cfg.ApprovalRepo,
		auctionRepo:    cfg.AuctionRepo,
		withdrawalRepo: cfg.WithdrawalRepo,
		registry:       cfg.Registry,
		nativeRail:     cfg.NativeRail,
		clock:          cfg.Clock,
		event:          cfg.Event,
	}
}

func (im *adminImpl) requireAdmin(c ctx.Ctx, caller domain.Address) (*marketplace.Config, error) {
	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return nil, err
	}
	if !cfg.Admin.Equals(caller) {
		return nil, domain.ErrUnauthorized
	}
	return cfg, nil
}

func (im *adminImpl) GetConfig(c ctx.Ctx) (*marketplace.Config, error) {
	im.opLock.Lock()
	defer im.opLock.Unlock()
	return im.configRepo.Get(c)
}

func (im *adminImpl) SetFeeRate(c ctx.Ctx, caller domain.Address, bps int64) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	if _, err := im.requireAdmin(c, caller); err != nil {
		return err
	}
	if bps < 0 || bps > marketplace.MaxFeeBps {
		return domain.ErrFeeTooHigh
	}
	if err := im.configRepo.Patch(c, marketplace.ConfigPatchable{FeeBps: ptr.Int64(bps)}); err != nil {
		return err
	}
	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeUpdateFee,
		Account: caller,
		Note:    strconv.FormatInt(bps, 10),
		Time:    im.clock.Now(),
	})
	return nil
}

func (im *adminImpl) SetFeeRecipient(c ctx.Ctx, caller domain.Address, recipient domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	if _, err := im.requireAdmin(c, caller); err != nil {
		return err
	}
	if recipient.IsEmpty() {
		return domain.ErrBadParamInput
	}
	if err := im.configRepo.Patch(c, marketplace.ConfigPatchable{FeeRecipient: recipient.ToLowerPtr()}); err != nil {
		return err
	}
	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeUpdateFeeRecipient,
		Account: caller,
		To:      recipient,
		Time:    im.clock.Now(),
	})
	return nil
}

func (im *adminImpl) SetPayToken(c ctx.Ctx, caller domain.Address, payToken domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	if _, err := im.requireAdmin(c, caller); err != nil {
		return err
	}
	if err := im.configRepo.Patch(c, marketplace.ConfigPatchable{PayToken: payToken.ToLowerPtr()}); err != nil {
		return err
	}
	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeUpdatePayToken,
		Account: caller,
		To:      payToken,
		Time:    im.clock.Now(),
	})
	return nil
}

func (im *adminImpl) SetApproval(c ctx.Ctx, caller domain.Address, id domain.ItemId, approved bool) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	if _, err := im.requireAdmin(c, caller); err != nil {
		return err
	}
	return im.setApproval(c, caller, id, approved)
}

func (im *adminImpl) BatchSetApproval(c ctx.Ctx, caller domain.Address, ids []domain.ItemId, approved bool) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	if _, err := im.requireAdmin(c, caller); err != nil {
		return err
	}
	// validate the whole batch up front so it applies all-or-nothing
	for _, id := range ids {
		exists, err := im.registry.Exists(c, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	for _, id := range ids {
		if err := im.setApproval(c, caller, id, approved); err != nil {
			return err
		}
	}
	return nil
}

func (im *adminImpl) setApproval(c ctx.Ctx, caller domain.Address, id domain.ItemId, approved bool) error {
	exists, err := im.registry.Exists(c, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := im.approvalRepo.Set(c, id, approved); err != nil {
		return err
	}
	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeApproveItem,
		ItemId:  &id,
		Account: caller,
		Note:    strconv.FormatBool(approved),
		Time:    im.clock.Now(),
	})
	return nil
}

func (im *adminImpl) Pause(c ctx.Ctx, caller domain.Address) error {
	return im.setPaused(c, caller, true, marketplace.EventTypePause)
}

func (im *adminImpl) Unpause(c ctx.Ctx, caller domain.Address) error {
	return im.setPaused(c, caller, false, marketplace.EventTypeUnpause)
}

func (im *adminImpl) setPaused(c ctx.Ctx, caller domain.Address, paused bool, t marketplace.EventType) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	if _, err := im.requireAdmin(c, caller); err != nil {
		return err
	}
	if err := im.configRepo.Patch(c, marketplace.ConfigPatchable{Paused: ptr.Bool(paused)}); err != nil {
		return err
	}
	im.event.Record(c, marketplace.Event{
		Type:    t,
		Account: caller,
		Time:    im.clock.Now(),
	})
	return nil
}

// EmergencyDrain sweeps every native balance the ledger holds on behalf of
// users to the administrator. Pending withdrawal records and live bids are
// left in place, so the books no longer balance afterwards. This is a trust
// escape hatch, not a routine operation.
func (im *adminImpl) EmergencyDrain(c ctx.Ctx, caller domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	cfg, err := im.requireAdmin(c, caller)
	if err != nil {
		return err
	}

	held, err := im.withdrawalRepo.Total(c)
	if err != nil {
		return err
	}
	held = new(big.Int).Set(held)

	auctions, err := im.auctionRepo.FindAll(c)
	if err != nil {
		return err
	}
	for _, a := range auctions {
		if a.HasBid() {
			held.Add(held, a.CurrentBid)
		}
	}

	if held.Sign() > 0 {
		if err := im.nativeRail.Pay(c, cfg.Admin, held); err != nil {
			c.WithFields(log.Fields{"amount": held, "err": err}).Error("nativeRail.Pay failed")
			return domain.ErrTransferFailed
		}
	}

	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeEmergencyDrain,
		Account: caller,
		Price:   held.String(),
		Time:    im.clock.Now(),
	})
	return nil
}
