package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item/mocks"
	"github.com/x-xyz/goledger/domain/marketplace"
)

func TestComputeSettlementConservesPrice(t *testing.T) {
	req := require.New(t)
	cfg := &marketplace.Config{FeeBps: 250}

	royalty := &mocks.RoyaltyLookup{}
	royalty.On("RoyaltyInfo", mock.Anything, domain.ItemId(1), big.NewInt(1000)).
		Return(royaltyAddr, big.NewInt(50), nil)

	settle, err := computeSettlement(ctx.Background(), cfg, royalty, 1, big.NewInt(1000))
	req.NoError(err)
	req.Equal(big.NewInt(25), settle.Fee)
	req.Equal(big.NewInt(50), settle.Royalty)
	req.Equal(royaltyAddr, settle.RoyaltyRecipient)
	req.Equal(big.NewInt(925), settle.SellerProceeds)

	sum := new(big.Int).Add(settle.Fee, settle.Royalty)
	sum.Add(sum, settle.SellerProceeds)
	req.Equal(settle.Price, sum)
}

func TestComputeSettlementTruncates(t *testing.T) {
	req := require.New(t)
	cfg := &marketplace.Config{FeeBps: 250}

	royalty := &mocks.RoyaltyLookup{}
	royalty.On("RoyaltyInfo", mock.Anything, domain.ItemId(1), big.NewInt(700)).
		Return(royaltyAddr, big.NewInt(35), nil)

	settle, err := computeSettlement(ctx.Background(), cfg, royalty, 1, big.NewInt(700))
	req.NoError(err)
	// 700 * 250 / 10000 = 17.5, truncated
	req.Equal(big.NewInt(17), settle.Fee)
	req.Equal(big.NewInt(648), settle.SellerProceeds)
}

func TestComputeSettlementNoRoyalty(t *testing.T) {
	req := require.New(t)
	cfg := &marketplace.Config{FeeBps: 250}

	royalty := &mocks.RoyaltyLookup{}
	royalty.On("RoyaltyInfo", mock.Anything, domain.ItemId(1), big.NewInt(1000)).
		Return(domain.EmptyAddress, nil, nil)

	settle, err := computeSettlement(ctx.Background(), cfg, royalty, 1, big.NewInt(1000))
	req.NoError(err)
	req.Equal(big.NewInt(0), settle.Royalty)
	req.Equal(big.NewInt(975), settle.SellerProceeds)
}

func TestComputeSettlementRejectsExcessiveRoyalty(t *testing.T) {
	req := require.New(t)
	cfg := &marketplace.Config{FeeBps: 250}

	royalty := &mocks.RoyaltyLookup{}
	royalty.On("RoyaltyInfo", mock.Anything, domain.ItemId(1), big.NewInt(1000)).
		Return(royaltyAddr, big.NewInt(1001), nil)

	_, err := computeSettlement(ctx.Background(), cfg, royalty, 1, big.NewInt(1000))
	req.ErrorIs(err, domain.ErrInvalidRoyalty)
}

func TestComputeSettlementRejectsFeePlusRoyaltyAbovePrice(t *testing.T) {
	req := require.New(t)
	cfg := &marketplace.Config{FeeBps: 1000}

	royalty := &mocks.RoyaltyLookup{}
	royalty.On("RoyaltyInfo", mock.Anything, domain.ItemId(1), big.NewInt(1000)).
		Return(royaltyAddr, big.NewInt(950), nil)

	_, err := computeSettlement(ctx.Background(), cfg, royalty, 1, big.NewInt(1000))
	req.ErrorIs(err, domain.ErrInvalidRoyalty)
}
