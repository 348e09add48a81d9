package repository

import (
	"math/big"
	"sort"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type listingRepoImpl struct {
	sync.RWMutex

	listings map[domain.ItemId]*marketplace.Listing
}

// NewListingRepo returns the in-memory listing store. Listings live only
// while active; purchase and cancellation remove them outright.
func NewListingRepo() marketplace.ListingRepo {
	return &listingRepoImpl{listings: map[domain.ItemId]*marketplace.Listing{}}
}

func copyListing(l *marketplace.Listing) *marketplace.Listing {
	cp := *l
	cp.Price = new(big.Int).Set(l.Price)
	return &cp
}

func (im *listingRepoImpl) FindOne(c ctx.Ctx, id domain.ItemId) (*marketplace.Listing, error) {
	im.RLock()
	defer im.RUnlock()
	l, ok := im.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyListing(l), nil
}

func (im *listingRepoImpl) FindAll(c ctx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	options, err := marketplace.GetListingFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	im.RLock()
	defer im.RUnlock()

	res := []*marketplace.Listing{}
	for _, l := range im.listings {
		if options.Seller != nil && !l.Seller.Equals(*options.Seller) {
			continue
		}
		if options.PayToken != nil && !l.PayToken.Equals(*options.PayToken) {
			continue
		}
		res = append(res, copyListing(l))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ItemId < res[j].ItemId })
	return paginateListings(res, options.Offset, options.Limit), nil
}

func paginateListings(res []*marketplace.Listing, offset, limit *int32) []*marketplace.Listing {
	if offset != nil {
		if int(*offset) >= len(res) {
			return []*marketplace.Listing{}
		}
		res = res[*offset:]
	}
	if limit != nil && int(*limit) < len(res) {
		res = res[:*limit]
	}
	return res
}

func (im *listingRepoImpl) Create(c ctx.Ctx, value marketplace.Listing) error {
	im.Lock()
	defer im.Unlock()
	if _, ok := im.listings[value.ItemId]; ok {
		return domain.ErrConflict
	}
	value.Seller = value.Seller.ToLower()
	value.PayToken = value.PayToken.ToLower()
	im.listings[value.ItemId] = copyListing(&value)
	return nil
}

func (im *listingRepoImpl) Patch(c ctx.Ctx, id domain.ItemId, value marketplace.ListingPatchable) error {
	im.Lock()
	defer im.Unlock()
	l, ok := im.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if value.Price != nil {
		l.Price = new(big.Int).Set(value.Price)
	}
	return nil
}

func (im *listingRepoImpl) Delete(c ctx.Ctx, id domain.ItemId) error {
	im.Lock()
	defer im.Unlock()
	if _, ok := im.listings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(im.listings, id)
	return nil
}
