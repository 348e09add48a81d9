package repository

import (
	"math/big"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
)

// memoryRegistry is the authoritative in-process ownership registry.
// Ids are assigned monotonically starting from 1.
type MemoryRegistry struct {
	sync.RWMutex

	clock  domain.Clock
	nextId uint64
	items  map[domain.ItemId]*item.Item
}

// NewMemoryRegistry returns a registry that also serves royalty lookups
func NewMemoryRegistry(clock domain.Clock) *MemoryRegistry {
	return &MemoryRegistry{
		clock:  clock,
		nextId: 1,
		items:  map[domain.ItemId]*item.Item{},
	}
}

func (r *MemoryRegistry) Mint(c ctx.Ctx, to domain.Address, royaltyRecipient domain.Address, royaltyBps int64) (domain.ItemId, error) {
	if to.IsEmpty() {
		return 0, domain.ErrBadParamInput
	}
	if royaltyBps < 0 || royaltyBps > item.MaxRoyaltyBps {
		return 0, domain.ErrInvalidRoyalty
	}
	if royaltyBps > 0 && royaltyRecipient.IsEmpty() {
		return 0, domain.ErrInvalidRoyalty
	}

	r.Lock()
	defer r.Unlock()

	id := domain.ItemId(r.nextId)
	r.nextId++
	r.items[id] = &item.Item{
		Id:               id,
		Owner:            to.ToLower(),
		RoyaltyRecipient: royaltyRecipient.ToLower(),
		RoyaltyBps:       royaltyBps,
		MintedAt:         r.clock.Now(),
	}
	return id, nil
}

func (r *MemoryRegistry) Exists(c ctx.Ctx, id domain.ItemId) (bool, error) {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *MemoryRegistry) OwnerOf(c ctx.Ctx, id domain.ItemId) (domain.Address, error) {
	r.RLock()
	defer r.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return domain.EmptyAddress, domain.ErrNotFound
	}
	return it.Owner, nil
}

func (r *MemoryRegistry) Transfer(c ctx.Ctx, from, to domain.Address, id domain.ItemId) error {
	if to.IsEmpty() {
		return domain.ErrBadParamInput
	}

	r.Lock()
	defer r.Unlock()

	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !it.Owner.Equals(from) {
		c.WithFields(log.Fields{"itemId": id, "owner": it.Owner, "from": from}).Warn("transfer from non-owner")
		return domain.ErrNotOwner
	}
	it.Owner = to.ToLower()
	return nil
}

func (r *MemoryRegistry) FindOne(c ctx.Ctx, id domain.ItemId) (*item.Item, error) {
	r.RLock()
	defer r.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

// RoyaltyInfo computes the royalty share with truncating division. The
// amount can never exceed salePrice because the bps rate is capped below
// the denominator at mint time.
func (r *MemoryRegistry) RoyaltyInfo(c ctx.Ctx, id domain.ItemId, salePrice *big.Int) (domain.Address, *big.Int, error) {
	r.RLock()
	defer r.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return domain.EmptyAddress, nil, domain.ErrNotFound
	}
	if !it.HasRoyalty() {
		return domain.EmptyAddress, big.NewInt(0), nil
	}
	amount := new(big.Int).Mul(salePrice, big.NewInt(it.RoyaltyBps))
	amount.Div(amount, domain.BpsDenominator)
	return it.RoyaltyRecipient, amount, nil
}
