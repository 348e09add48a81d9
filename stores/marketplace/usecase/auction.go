package usecase

import (
	"math/big"
	"sync"
	"time"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type AuctionUseCaseCfg struct {
	OpLock         *sync.Mutex
	ListingRepo    marketplace.ListingRepo
	AuctionRepo    marketplace.AuctionRepo
	ApprovalRepo   marketplace.ApprovalRepo
	WithdrawalRepo marketplace.WithdrawalRepo
	ConfigRepo     marketplace.ConfigRepo
	Registry       item.Registry
	Royalty        item.RoyaltyLookup
	NativeRail     domain.NativeRail
	Clock          domain.Clock
	Event          marketplace.EventUseCase
}

type auctionImpl struct {
	opLock         *sync.Mutex
	listingRepo    marketplace.ListingRepo
	auctionRepo    marketplace.AuctionRepo
	approvalRepo   marketplace.ApprovalRepo
	withdrawalRepo marketplace.WithdrawalRepo
	configRepo     marketplace.ConfigRepo
	registry       item.Registry
	royalty        item.RoyaltyLookup
	nativeRail     domain.NativeRail
	clock          domain.Clock
	event          marketplace.EventUseCase
}

func NewAuctionUseCase(cfg *AuctionUseCaseCfg) marketplace.AuctionUseCase {
	if cfg.OpLock == nil {
		panic("OpLock can not be nil")
	}
	return &auctionImpl{
		opLock:         cfg.OpLock,
		listingRepo:    cfg.ListingRepo,
		auctionRepo:    cfg.AuctionRepo,
		approvalRepo:   cfg.ApprovalRepo,
		withdrawalRepo: cfg.WithdrawalRepo,
		configRepo:     cfg.ConfigRepo,
		registry:       cfg.Registry,
		royalty:        cfg.Royalty,
		nativeRail:     cfg.NativeRail,
		clock:          cfg.Clock,
		event:          cfg.Event,
	}
}

func (im *auctionImpl) Create(c ctx.Ctx, id domain.ItemId, reservePrice *big.Int, duration time.Duration, payToken domain.Address, seller domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return domain.ErrPaused
	}
	if reservePrice == nil || reservePrice.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}
	if duration < marketplace.MinAuctionDuration || duration > marketplace.MaxAuctionDuration {
		return domain.ErrInvalidDuration
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
	if err := im.auctionRepo.Create(c, marketplace.Auction{
		ItemId:       id,
		Seller:       seller,
		ReservePrice: reservePrice,
		PayToken:     payToken,
		CurrentBid:   big.NewInt(0),
		EndTime:      now.Add(duration),
		CreatedAt:    now,
	}); err != nil {
		c.WithFields(log.Fields{"itemId": id, "err": err}).Error("auctionRepo.Create failed")
		return err
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeCreateAuction,
		ItemId:   &id,
		Account:  seller,
		Price:    reservePrice.String(),
		PayToken: payToken,
		Time:     now,
	})
	return nil
}

func (im *auctionImpl) PlaceBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address, tendered *big.Int) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	if cfg.Paused {
		return domain.ErrPaused
	}

	a, err := im.auctionRepo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotActive
	} else if err != nil {
		return err
	}
	if a.Ended(im.clock.Now()) {
		return domain.ErrEnded
	}
	if a.Seller.Equals(bidder) {
		return domain.ErrSelfBid
	}
	// token-denominated auctions take no bids
	if !a.PayToken.IsEmpty() {
		return domain.ErrUnsupported
	}
	if tendered == nil || tendered.Cmp(a.ReservePrice) < 0 || tendered.Cmp(a.CurrentBid) <= 0 {
		return domain.ErrBidTooLow
	}

	// the displaced bid stays in the ledger as a pending withdrawal,
	// never paid out inline
	if a.HasBid() {
		if err := im.withdrawalRepo.Credit(c, a.CurrentBidder, a.CurrentBid); err != nil {
			c.WithFields(log.Fields{"account": a.CurrentBidder, "err": err}).Error("withdrawalRepo.Credit failed")
			return err
		}
	}

	if err := im.auctionRepo.Patch(c, id, marketplace.AuctionPatchable{
		CurrentBid:    tendered,
		CurrentBidder: &bidder,
	}); err != nil {
		return err
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypePlaceBid,
		ItemId:   &id,
		Account:  bidder,
		Price:    tendered.String(),
		PayToken: a.PayToken,
		Time:     im.clock.Now(),
	})
	return nil
}

func (im *auctionImpl) End(c ctx.Ctx, id domain.ItemId, caller domain.Address) error {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	a, err := im.auctionRepo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotActive
	} else if err != nil {
		return err
	}
	now := im.clock.Now()
	if !a.Ended(now) {
		return domain.ErrNotYetEnded
	}

	if !a.HasBid() {
		if err := im.auctionRepo.Delete(c, id); err != nil {
			return err
		}
		im.event.Record(c, marketplace.Event{
			Type:     marketplace.EventTypeResultAuction,
			ItemId:   &id,
			Account:  caller,
			PayToken: a.PayToken,
			Note:     "no bids",
			Time:     now,
		})
		return nil
	}

	cfg, err := im.configRepo.Get(c)
	if err != nil {
		return err
	}
	settle, err := computeSettlement(c, cfg, im.royalty, id, a.CurrentBid)
	if err != nil {
		return err
	}

	j := &journal{}
	if err := im.auctionRepo.Delete(c, id); err != nil {
		return err
	}
	prior := *a
	j.record(func(rc ctx.Ctx) error { return im.auctionRepo.Create(rc, prior) })

	if err := im.registry.Transfer(c, a.Seller, a.CurrentBidder, id); err != nil {
		j.rollback(c)
		return err
	}
	j.record(func(rc ctx.Ctx) error { return im.registry.Transfer(rc, prior.CurrentBidder, prior.Seller, id) })

	// the winning bid is already held as native funds; no refund leg
	payouts := []struct {
		to     domain.Address
		amount *big.Int
	}{
		{settle.RoyaltyRecipient, settle.Royalty},
		{a.Seller, settle.SellerProceeds},
		{cfg.FeeRecipient, settle.Fee},
	}
	for _, p := range payouts {
		if p.amount.Sign() == 0 {
			continue
		}
		if err := im.nativeRail.Pay(c, p.to, p.amount); err != nil {
			c.WithFields(log.Fields{"to": p.to, "amount": p.amount, "err": err}).Error("nativeRail.Pay failed")
			j.rollback(c)
			return domain.ErrTransferFailed
		}
	}

	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeResultAuction,
		ItemId:   &id,
		Account:  a.Seller,
		To:       a.CurrentBidder,
		Price:    a.CurrentBid.String(),
		PayToken: a.PayToken,
		Time:     now,
	})
	im.event.Record(c, marketplace.Event{
		Type:     marketplace.EventTypeSold,
		ItemId:   &id,
		Account:  a.Seller,
		To:       a.CurrentBidder,
		Price:    a.CurrentBid.String(),
		PayToken: a.PayToken,
		Time:     now,
	})
	return nil
}

func (im *auctionImpl) FindOne(c ctx.Ctx, id domain.ItemId) (*marketplace.Auction, error) {
	return im.auctionRepo.FindOne(c, id)
}

func (im *auctionImpl) FindAll(c ctx.Ctx, opts ...marketplace.AuctionFindAllOptionsFunc) ([]*marketplace.Auction, error) {
	res, err := im.auctionRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("auctionRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}
