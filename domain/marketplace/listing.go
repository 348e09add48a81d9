package marketplace

import (
	"math/big"
	"time"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

// Listing is a fixed price sale offer. At most one active listing exists
// per item and a listing excludes an auction on the same item.
type Listing struct {
	ItemId    domain.ItemId  `json:"itemId"`
	Seller    domain.Address `json:"seller"`
	Price     *big.Int       `json:"price"`
	PayToken  domain.Address `json:"payToken"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ListingPatchable struct {
	Price *big.Int
}

type ListingFindAllOptions struct {
	Seller   *domain.Address
	PayToken *domain.Address
	Offset   *int32
	Limit    *int32
}

type ListingFindAllOptionsFunc func(*ListingFindAllOptions) error

func GetListingFindAllOptions(opts ...ListingFindAllOptionsFunc) (ListingFindAllOptions, error) {
	res := ListingFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func ListingWithSeller(seller domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.Seller = seller.ToLowerPtr()
		return nil
	}
}

func ListingWithPayToken(payToken domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.PayToken = payToken.ToLowerPtr()
		return nil
	}
}

func ListingWithPagination(offset, limit int32) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ListingRepo interface {
	FindOne(c ctx.Ctx, id domain.ItemId) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...ListingFindAllOptionsFunc) ([]*Listing, error)
	Create(c ctx.Ctx, value Listing) error
	Patch(c ctx.Ctx, id domain.ItemId, value ListingPatchable) error
	Delete(c ctx.Ctx, id domain.ItemId) error
}

type ListingUseCase interface {
	List(c ctx.Ctx, id domain.ItemId, price *big.Int, payToken domain.Address, seller domain.Address) error
	UpdateListing(c ctx.Ctx, id domain.ItemId, price *big.Int, seller domain.Address) error
	Cancel(c ctx.Ctx, id domain.ItemId, caller domain.Address) error
	Buy(c ctx.Ctx, id domain.ItemId, buyer domain.Address, tendered *big.Int) error
	FindOne(c ctx.Ctx, id domain.ItemId) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...ListingFindAllOptionsFunc) ([]*Listing, error)
}
