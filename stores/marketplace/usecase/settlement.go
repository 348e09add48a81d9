package usecase

import (
	"math/big"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
	"github.com/x-xyz/goledger/domain/marketplace"
)

// settlement is the exact three way split of a sale price. The parts
// always add up to the price and none of them is negative.
type settlement struct {
	Price            *big.Int
	Fee              *big.Int
	Royalty          *big.Int
	RoyaltyRecipient domain.Address
	SellerProceeds   *big.Int
}

// computeSettlement splits price by the configured fee rate and a fresh
// royalty lookup, using truncating integer division. A combined fee and
// royalty above the price is an invariant violation and is rejected.
func computeSettlement(c ctx.Ctx, cfg *marketplace.Config, royalty item.RoyaltyLookup, id domain.ItemId, price *big.Int) (*settlement, error) {
	fee := new(big.Int).Mul(price, big.NewInt(cfg.FeeBps))
	fee.Div(fee, domain.BpsDenominator)

	royaltyRecipient, royaltyAmount, err := royalty.RoyaltyInfo(c, id, price)
	if err != nil {
		c.WithFields(log.Fields{"itemId": id, "err": err}).Error("royalty.RoyaltyInfo failed")
		return nil, err
	}
	if royaltyAmount == nil {
		royaltyAmount = big.NewInt(0)
	}
	if royaltyAmount.Sign() < 0 || royaltyAmount.Cmp(price) > 0 {
		return nil, domain.ErrInvalidRoyalty
	}

	taken := new(big.Int).Add(fee, royaltyAmount)
	if taken.Cmp(price) > 0 {
		c.WithFields(log.Fields{
			"itemId":  id,
			"price":   price,
			"fee":     fee,
			"royalty": royaltyAmount,
		}).Warn("fee and royalty exceed sale price")
		return nil, domain.ErrInvalidRoyalty
	}

	return &settlement{
		Price:            new(big.Int).Set(price),
		Fee:              fee,
		Royalty:          royaltyAmount,
		RoyaltyRecipient: royaltyRecipient,
		SellerProceeds:   new(big.Int).Sub(price, taken),
	}, nil
}
