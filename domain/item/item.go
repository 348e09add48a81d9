package item

import (
	"math/big"
	"time"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

// MaxRoyaltyBps caps the per-item royalty rate fixed at mint time
const MaxRoyaltyBps = int64(2000)

type Item struct {
	Id               domain.ItemId  `json:"id"`
	Owner            domain.Address `json:"owner"`
	RoyaltyRecipient domain.Address `json:"royaltyRecipient"`
	RoyaltyBps       int64          `json:"royaltyBps"`
	MintedAt         time.Time      `json:"mintedAt"`
}

func (i *Item) HasRoyalty() bool {
	return i.RoyaltyBps > 0 && !i.RoyaltyRecipient.IsEmpty()
}

// Registry is the authoritative record of item ownership. The marketplace
// ledger references owners through it and never duplicates them.
type Registry interface {
	Mint(c ctx.Ctx, to domain.Address, royaltyRecipient domain.Address, royaltyBps int64) (domain.ItemId, error)
	Exists(c ctx.Ctx, id domain.ItemId) (bool, error)
	OwnerOf(c ctx.Ctx, id domain.ItemId) (domain.Address, error)
	Transfer(c ctx.Ctx, from, to domain.Address, id domain.ItemId) error
	FindOne(c ctx.Ctx, id domain.ItemId) (*Item, error)
}

// RoyaltyLookup resolves the royalty share for a sale. It is queried fresh
// on every settlement; amount is never above salePrice.
type RoyaltyLookup interface {
	RoyaltyInfo(c ctx.Ctx, id domain.ItemId, salePrice *big.Int) (domain.Address, *big.Int, error)
}

type UseCase interface {
	Mint(c ctx.Ctx, to domain.Address, royaltyRecipient domain.Address, royaltyBps int64) (*Item, error)
	FindOne(c ctx.Ctx, id domain.ItemId) (*Item, error)
}
