package marketplace

import (
	"math/big"
	"time"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

const (
	MinAuctionDuration = time.Hour
	MaxAuctionDuration = 7 * 24 * time.Hour
)

// Auction is an English auction. The highest bid only ever grows while the
// auction is active; a displaced bid is credited to the displaced bidder's
// pending balance, never dropped. Settlement happens lazily after EndTime
// when someone calls End.
type Auction struct {
	ItemId        domain.ItemId  `json:"itemId"`
	Seller        domain.Address `json:"seller"`
	ReservePrice  *big.Int       `json:"reservePrice"`
	PayToken      domain.Address `json:"payToken"`
	CurrentBid    *big.Int       `json:"currentBid"`
	CurrentBidder domain.Address `json:"currentBidder"`
	EndTime       time.Time      `json:"endTime"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (a *Auction) HasBid() bool {
	return a.CurrentBid != nil && a.CurrentBid.Sign() > 0 && !a.CurrentBidder.IsEmpty()
}

func (a *Auction) Ended(now time.Time) bool {
	return !now.Before(a.EndTime)
}

type AuctionPatchable struct {
	CurrentBid    *big.Int
	CurrentBidder *domain.Address
}

type AuctionFindAllOptions struct {
	Seller *domain.Address
	Offset *int32
	Limit  *int32
}

type AuctionFindAllOptionsFunc func(*AuctionFindAllOptions) error

func GetAuctionFindAllOptions(opts ...AuctionFindAllOptionsFunc) (AuctionFindAllOptions, error) {
	res := AuctionFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func AuctionWithSeller(seller domain.Address) AuctionFindAllOptionsFunc {
	return func(options *AuctionFindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func AuctionWithPagination(offset, limit int32) AuctionFindAllOptionsFunc {
	return func(options *AuctionFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type AuctionRepo interface {
	FindOne(c ctx.Ctx, id domain.ItemId) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...AuctionFindAllOptionsFunc) ([]*Auction, error)
	Create(c ctx.Ctx, value Auction) error
	Patch(c ctx.Ctx, id domain.ItemId, value AuctionPatchable) error
	Delete(c ctx.Ctx, id domain.ItemId) error
}

type AuctionUseCase interface {
	Create(c ctx.Ctx, id domain.ItemId, reservePrice *big.Int, duration time.Duration, payToken domain.Address, seller domain.Address) error
	PlaceBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address, tendered *big.Int) error
	End(c ctx.Ctx, id domain.ItemId, caller domain.Address) error
	FindOne(c ctx.Ctx, id domain.ItemId) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...AuctionFindAllOptionsFunc) ([]*Auction, error)
}
