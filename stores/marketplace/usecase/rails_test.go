package usecase

import (
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
	"github.com/x-xyz/goledger/stores/marketplace/repository"

	dmocks "github.com/x-xyz/goledger/domain/mocks"
	imocks "github.com/x-xyz/goledger/domain/item/mocks"
)

// pins the exact rail calls a token purchase makes: one pull per settlement
// share, straight from the buyer
func TestBuyTokenPullsEachShareFromBuyer(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	// buy trusts the listing's seller, so the only registry call is the
	// ownership transfer itself
	registry := &imocks.Registry{}
	registry.On("Transfer", mock.Anything, sellerAddr, buyerAddr, domain.ItemId(1)).Return(nil)

	royalty := &imocks.RoyaltyLookup{}
	royalty.On("RoyaltyInfo", mock.Anything, domain.ItemId(1), big.NewInt(1000)).
		Return(royaltyAddr, big.NewInt(50), nil)

	tokenRail := &dmocks.TokenRail{}
	tokenRail.On("TransferFrom", mock.Anything, buyerAddr, royaltyAddr, big.NewInt(50)).Return(true, nil)
	tokenRail.On("TransferFrom", mock.Anything, buyerAddr, sellerAddr, big.NewInt(925)).Return(true, nil)
	tokenRail.On("TransferFrom", mock.Anything, buyerAddr, feeAddr, big.NewInt(25)).Return(true, nil)

	listings := repository.NewListingRepo()
	req.NoError(listings.Create(c, marketplace.Listing{
		ItemId:    1,
		Seller:    sellerAddr,
		Price:     big.NewInt(1000),
		PayToken:  tokenAddr,
		CreatedAt: time.Unix(1700000000, 0),
	}))

	im := NewListingUseCase(&ListingUseCaseCfg{
		OpLock:       &sync.Mutex{},
		ListingRepo:  listings,
		AuctionRepo:  repository.NewAuctionRepo(),
		ApprovalRepo: repository.NewApprovalRepo(),
		ConfigRepo: repository.NewConfigRepo(marketplace.Config{
			Admin:        adminAddr,
			FeeBps:       250,
			FeeRecipient: feeAddr,
			PayToken:     tokenAddr,
		}),
		Registry:   registry,
		Royalty:    royalty,
		NativeRail: &dmocks.NativeRail{},
		TokenRail:  tokenRail,
		Clock:      &fakeClock{now: time.Unix(1700000000, 0)},
		Event:      &recorder{},
	})

	req.NoError(im.Buy(c, 1, buyerAddr, nil))
	tokenRail.AssertExpectations(t)
	registry.AssertExpectations(t)
}

func TestWithdrawPaysExactHeldAmount(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	withdrawals := repository.NewWithdrawalRepo()
	req.NoError(withdrawals.Credit(c, buyerAddr, big.NewInt(600)))

	rail := &dmocks.NativeRail{}
	rail.On("Pay", mock.Anything, buyerAddr, big.NewInt(600)).Return(nil)

	im := NewWithdrawalUseCase(&WithdrawalUseCaseCfg{
		OpLock:         &sync.Mutex{},
		WithdrawalRepo: withdrawals,
		NativeRail:     rail,
		Clock:          &fakeClock{now: time.Unix(1700000000, 0)},
		Event:          &recorder{},
	})

	amount, err := im.Withdraw(c, buyerAddr)
	req.NoError(err)
	req.Equal(big.NewInt(600), amount)
	rail.AssertExpectations(t)
}
