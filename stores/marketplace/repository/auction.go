package repository

import (
	"math/big"
	"sort"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type auctionRepoImpl struct {
	sync.RWMutex

	auctions map[domain.ItemId]*marketplace.Auction
}

// NewAuctionRepo returns the in-memory auction store
func NewAuctionRepo() marketplace.AuctionRepo {
	return &auctionRepoImpl{auctions: map[domain.ItemId]*marketplace.Auction{}}
}

func copyAuction(a *marketplace.Auction) *marketplace.Auction {
	cp := *a
	cp.ReservePrice = new(big.Int).Set(a.ReservePrice)
	if a.CurrentBid != nil {
		cp.CurrentBid = new(big.Int).Set(a.CurrentBid)
	}
	return &cp
}

func (im *auctionRepoImpl) FindOne(c ctx.Ctx, id domain.ItemId) (*marketplace.Auction, error) {
	im.RLock()
	defer im.RUnlock()
	a, ok := im.auctions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAuction(a), nil
}

func (im *auctionRepoImpl) FindAll(c ctx.Ctx, opts ...marketplace.AuctionFindAllOptionsFunc) ([]*marketplace.Auction, error) {
	options, err := marketplace.GetAuctionFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	im.RLock()
	defer im.RUnlock()

	res := []*marketplace.Auction{}
	for _, a := range im.auctions {
		if options.Seller != nil && !a.Seller.Equals(*options.Seller) {
			continue
		}
		res = append(res, copyAuction(a))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ItemId < res[j].ItemId })

	if options.Offset != nil {
		if int(*options.Offset) >= len(res) {
			return []*marketplace.Auction{}, nil
		}
		res = res[*options.Offset:]
	}
	if options.Limit != nil && int(*options.Limit) < len(res) {
		res = res[:*options.Limit]
	}
	return res, nil
}

func (im *auctionRepoImpl) Create(c ctx.Ctx, value marketplace.Auction) error {
	im.Lock()
	defer im.Unlock()
	if _, ok := im.auctions[value.ItemId]; ok {
		return domain.ErrConflict
	}
	value.Seller = value.Seller.ToLower()
	value.PayToken = value.PayToken.ToLower()
	value.CurrentBidder = value.CurrentBidder.ToLower()
	im.auctions[value.ItemId] = copyAuction(&value)
	return nil
}

func (im *auctionRepoImpl) Patch(c ctx.Ctx, id domain.ItemId, value marketplace.AuctionPatchable) error {
	im.Lock()
	defer im.Unlock()
	a, ok := im.auctions[id]
	if !ok {
		return domain.ErrNotFound
	}
	if value.CurrentBid != nil {
		a.CurrentBid = new(big.Int).Set(value.CurrentBid)
	}
	if value.CurrentBidder != nil {
		a.CurrentBidder = value.CurrentBidder.ToLower()
	}
	return nil
}

func (im *auctionRepoImpl) Delete(c ctx.Ctx, id domain.ItemId) error {
	im.Lock()
	defer im.Unlock()
	if _, ok := im.auctions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(im.auctions, id)
	return nil
}
