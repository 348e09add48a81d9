package usecase

import (
	"math/big"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type ListingUseCaseCfg struct {
	OpLock       *sync.Mutex
	ListingRepo  marketplace.ListingRepo
	AuctionRepo  marketplace.AuctionRepo
	ApprovalRepo marketplace.ApprovalRepo
	ConfigRepo   marketplace.ConfigRepo
	Registry     item.Registry
	Royalty      item.RoyaltyLookup
	NativeRail   domain.NativeRail
	TokenRail    domain.TokenRail
	Clock        domain.Clock
	Event        marketplace.EventUseCase
}

type listingImpl struct {
	opLock       *sync.Mutex
	listingRepo  marketplace.ListingRepo
	auctionRepo  marketplace.AuctionRepo
	approvalRepo marketplace.ApprovalRepo
	configRepo   marketplace.ConfigRepo
	registry     item.Registry
	royalty      item.RoyaltyLookup
	nativeRail   domain.NativeRail
	tokenRail    domain.TokenRail
	clock        domain.Clock
	event        marketplace.EventUseCase
}

func NewListingUseCase(cfg *ListingUseCaseCfg) marketplace.ListingUseCase {
	if cfg.OpLock == nil {
		panic("OpLock can not be nil")
	}
	return &listingImpl{
		opLock:       cfg.OpLock,
		listingRepo:  cfg.ListingRepo,
		auctionRepo:  cfg.AuctionRepo,
		approvalRepo: cfg.ApprovalRepo,
		configRepo:   cfg.ConfigRepo,
		registry:     cfg.Registry,
		royalty:      cfg.Royalty,
		nativeRail:   cfg.NativeRail,
		tokenRail:    cfg.TokenRail,
		clock:        cfg.Clock,
		event:        cfg.Event,
	}
}

func (im *listingImpl) List(c ctx.Ctx, id domain.ItemId, price *big.Int, payToken domain.Address, seller domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return domain.ErrPaused
	}
	if price == nil || price.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}
	if !cfg.AcceptsCurrency(payToken) {
		return domain.ErrInvalidCurrency
	}

	owner, err := im.registry.OwnerOf(c, id)
	if err != nil {
		return err
	}
	if !owner.Equals(seller) {
		return domain.ErrNotOwner
	}

	approved, err := im.approvalRepo.IsApproved(c, id)
	if err != nil {
		return err
	}
	if !approved {
		return domain.ErrNotApproved
	}

	if _, err := im.listingRepo.FindOne(c, id); err == nil {
		return domain.ErrAlreadyListed
	} else if err != domain.ErrNotFound {
		return err
	}
	if _, err := im.auctionRepo.FindOne(c, id); err == nil {
		return domain.ErrInAuction
	} else if err != domain.ErrNotFound {
		return err
	}

	now := im.clock.Now()
	if err := im.listingRepo.Create(c, marketplace.Listing{
		ItemId:    id,
		Seller:    seller,
		Price:     price,
		PayToken:  payToken,
		CreatedAt: now,
	}); err != nil {
		c.WithFields(log.Fields{"itemId": id, "err": err}).Error("listingRepo.Create failed")
		return err
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeList,
		ItemId:   &id,
		Account:  seller,
		Price:    price.String(),
		PayToken: payToken,
		Time:     now,
	})
	return nil
}

func (im *listingImpl) UpdateListing(c ctx.Ctx, id domain.ItemId, price *big.Int, seller domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return domain.ErrPaused
	}
	if price == nil || price.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}

	l, err := im.listingRepo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotListed
	} else if err != nil {
		return err
	}
	if !l.Seller.Equals(seller) {
		return domain.ErrNotOwner
	}

	if err := im.listingRepo.Patch(c, id, marketplace.ListingPatchable{Price: price}); err != nil {
		return err
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeUpdateListing,
		ItemId:   &id,
		Account:  seller,
		Price:    price.String(),
		PayToken: l.PayToken,
		Time:     im.clock.Now(),
	})
	return nil
}

func (im *listingImpl) Cancel(c ctx.Ctx, id domain.ItemId, caller domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotListed
	} else if err != nil {
		return err
	}
	if !l.Seller.Equals(caller) {
		return domain.ErrNotOwner
	}

	if err := im.listingRepo.Delete(c, id); err != nil {
		return err
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeCancelListing,
		ItemId:   &id,
		Account:  caller,
		PayToken: l.PayToken,
		Time:     im.clock.Now(),
	})
	return nil
}

func (im *listingImpl) Buy(c ctx.Ctx, id domain.ItemId, buyer domain.Address, tendered *big.Int) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return domain.ErrPaused
	}

	l, err := im.listingRepo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotListed
	} else if err != nil {
		return err
	}
	if l.Seller.Equals(buyer) {
		return domain.ErrSelfTrade
	}

	if tendered == nil {
		tendered = big.NewInt(0)
	}
	native := l.PayToken.IsEmpty()
	if native {
		if tendered.Cmp(l.Price) < 0 {
			return domain.ErrInsufficientTender
		}
	} else if tendered.Sign() != 0 {
		// token purchases must not carry native tender
		return domain.ErrBadParamInput
	}

	settle, err := computeSettlement(c, cfg, im.royalty, id, l.Price)
	if err != nil {
		return err
	}

	// effects before interactions; every mutation is journaled so a
	// failed payout can undo the whole purchase
	j := &journal{}
	if err := im.listingRepo.Delete(c, id); err != nil {
		return err
	}
	prior := *l
	j.record(func(rc ctx.Ctx) error { return im.listingRepo.Create(rc, prior) })

	if err := im.registry.Transfer(c, l.Seller, buyer, id); err != nil {
		j.rollback(c)
		return err
	}
	j.record(func(rc ctx.Ctx) error { return im.registry.Transfer(rc, buyer, prior.Seller, id) })

	if native {
		refund := new(big.Int).Sub(tendered, l.Price)
		if err := im.payNativeSettlement(c, cfg, l.Seller, settle, buyer, refund); err != nil {
			j.rollback(c)
			return err
		}
	} else {
		if err := im.pullTokenSettlement(c, j, cfg, buyer, l.Seller, settle); err != nil {
			j.rollback(c)
			return err
		}
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeSold,
		ItemId:   &id,
		Account:  l.Seller,
		To:       buyer,
		Price:    l.Price.String(),
		PayToken: l.PayToken,
		Time:     im.clock.Now(),
	})
	return nil
}

// payNativeSettlement pays royalty, seller, fee and the buyer's refund
// out of the ledger's held native funds
func (im *listingImpl) payNativeSettlement(c ctx.Ctx, cfg *marketplace.Config, seller domain.Address, settle *settlement, buyer domain.Address, refund *big.Int) error {
	payouts := []struct {
		to     domain.Address
		amount *big.Int
	}{
		{settle.RoyaltyRecipient, settle.Royalty},
		{seller, settle.SellerProceeds},
		{cfg.FeeRecipient, settle.Fee},
		{buyer, refund},
	}
	for _, p := range payouts {
		if p.amount == nil || p.amount.Sign() == 0 {
			continue
		}
		if err := im.nativeRail.Pay(c, p.to, p.amount); err != nil {
			c.WithFields(log.Fields{"to": p.to, "amount": p.amount, "err": err}).Error("nativeRail.Pay failed")
			return domain.ErrTransferFailed
		}
	}
	return nil
}

// pullTokenSettlement pulls each share of the price from the buyer. Every
// completed pull is journaled with a compensating reverse transfer so a
// later failure leaves no partial payment behind.
func (im *listingImpl) pullTokenSettlement(c ctx.Ctx, j *journal, cfg *marketplace.Config, buyer, seller domain.Address, settle *settlement) error {
	pulls := []struct {
		to     domain.Address
		amount *big.Int
	}{
		{settle.RoyaltyRecipient, settle.Royalty},
		{seller, settle.SellerProceeds},
		{cfg.FeeRecipient, settle.Fee},
	}
	for _, p := range pulls {
		if p.amount.Sign() == 0 {
			continue
		}
		to, amount := p.to, p.amount
		ok, err := im.tokenRail.TransferFrom(c, buyer, to, amount)
		if err != nil || !ok {
			c.WithFields(log.Fields{"to": to, "amount": amount, "err": err}).Error("tokenRail.TransferFrom failed")
			return domain.ErrTransferFailed
		}
		j.record(func(rc ctx.Ctx) error {
			if ok, err := im.tokenRail.TransferFrom(rc, to, buyer, amount); err != nil || !ok {
				return domain.ErrTransferFailed
			}
			return nil
		})
	}
	return nil
}

func (im *listingImpl) FindOne(c ctx.Ctx, id domain.ItemId) (*marketplace.Listing, error) {
	return im.listingRepo.FindOne(c, id)
}

func (im *listingImpl) FindAll(c ctx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	res, err := im.listingRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("listingRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}
