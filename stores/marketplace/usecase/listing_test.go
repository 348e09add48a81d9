package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type listingUseCaseSuite struct {
	suite.Suite

	f *fixture
}

func TestListingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(listingUseCaseSuite))
}

func (s *listingUseCaseSuite) SetupTest() {
	s.f = newFixture()
}

func (s *listingUseCaseSuite) TestListPreconditions() {
	f := s.f
	id := f.mintApproved()

	s.ErrorIs(f.listing.List(f.c, id, big.NewInt(0), domain.EmptyAddress, sellerAddr), domain.ErrInvalidPrice)
	s.ErrorIs(f.listing.List(f.c, id, nil, domain.EmptyAddress, sellerAddr), domain.ErrInvalidPrice)
	s.ErrorIs(f.listing.List(f.c, id, big.NewInt(1000), "0x00000000000000000000000000000000000000ee", sellerAddr), domain.ErrInvalidCurrency)
	s.ErrorIs(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, buyerAddr), domain.ErrNotOwner)

	unapproved, err := f.registry.Mint(f.c, sellerAddr, royaltyAddr, 500)
	s.NoError(err)
	s.ErrorIs(f.listing.List(f.c, unapproved, big.NewInt(1000), domain.EmptyAddress, sellerAddr), domain.ErrNotApproved)

	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))
	s.ErrorIs(f.listing.List(f.c, id, big.NewInt(2000), domain.EmptyAddress, sellerAddr), domain.ErrAlreadyListed)

	auctioned := f.mintApproved()
	s.NoError(f.auction.Create(f.c, auctioned, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))
	s.ErrorIs(f.listing.List(f.c, auctioned, big.NewInt(1000), domain.EmptyAddress, sellerAddr), domain.ErrInAuction)
}

func (s *listingUseCaseSuite) TestListWhilePaused() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.admin.Pause(f.c, adminAddr))
	s.ErrorIs(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr), domain.ErrPaused)
}

func (s *listingUseCaseSuite) TestUpdateListing() {
	f := s.f
	id := f.mintApproved()

	s.ErrorIs(f.listing.UpdateListing(f.c, id, big.NewInt(2000), sellerAddr), domain.ErrNotListed)

	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))
	s.ErrorIs(f.listing.UpdateListing(f.c, id, big.NewInt(2000), buyerAddr), domain.ErrNotOwner)
	s.ErrorIs(f.listing.UpdateListing(f.c, id, big.NewInt(0), sellerAddr), domain.ErrInvalidPrice)

	s.NoError(f.listing.UpdateListing(f.c, id, big.NewInt(2000), sellerAddr))
	got, err := f.listing.FindOne(f.c, id)
	s.NoError(err)
	s.Equal(big.NewInt(2000), got.Price)
	s.Equal(marketplace.EventTypeUpdateListing, f.rec.last().Type)
}

func (s *listingUseCaseSuite) TestCancel() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))

	s.ErrorIs(f.listing.Cancel(f.c, id, buyerAddr), domain.ErrNotOwner)

	// pause must not trap sellers
	s.NoError(f.admin.Pause(f.c, adminAddr))
	s.NoError(f.listing.Cancel(f.c, id, sellerAddr))

	_, err := f.listing.FindOne(f.c, id)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(f.listing.Cancel(f.c, id, sellerAddr), domain.ErrNotListed)
}

func (s *listingUseCaseSuite) TestBuyNativeSplitsPrice() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))

	// buyer tenders 1200 against a 1000 listing; the ledger holds the
	// tendered funds and pays everyone out of them
	f.bank.DepositNative(ledgerAddr, big.NewInt(1200))
	s.NoError(f.listing.Buy(f.c, id, buyerAddr, big.NewInt(1200)))

	// 2.5% fee = 25, 5% royalty = 50, seller keeps 925, refund 200
	s.Equal(big.NewInt(25), f.bank.NativeBalanceOf(feeAddr))
	s.Equal(big.NewInt(50), f.bank.NativeBalanceOf(royaltyAddr))
	s.Equal(big.NewInt(925), f.bank.NativeBalanceOf(sellerAddr))
	s.Equal(big.NewInt(200), f.bank.NativeBalanceOf(buyerAddr))
	s.Equal(big.NewInt(0), f.bank.NativeBalanceOf(ledgerAddr))

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(buyerAddr, owner)

	_, err = f.listing.FindOne(f.c, id)
	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal(marketplace.EventTypeSold, f.rec.last().Type)
}

func (s *listingUseCaseSuite) TestBuyNativePreconditions() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))

	s.ErrorIs(f.listing.Buy(f.c, 99, buyerAddr, big.NewInt(1000)), domain.ErrNotListed)
	s.ErrorIs(f.listing.Buy(f.c, id, sellerAddr, big.NewInt(1000)), domain.ErrSelfTrade)
	s.ErrorIs(f.listing.Buy(f.c, id, buyerAddr, big.NewInt(999)), domain.ErrInsufficientTender)

	s.NoError(f.admin.Pause(f.c, adminAddr))
	s.ErrorIs(f.listing.Buy(f.c, id, buyerAddr, big.NewInt(1000)), domain.ErrPaused)
}

func (s *listingUseCaseSuite) TestBuyTokenSplitsPrice() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), tokenAddr, sellerAddr))

	s.ErrorIs(f.listing.Buy(f.c, id, buyerAddr, big.NewInt(1)), domain.ErrBadParamInput)

	f.bank.DepositToken(buyerAddr, big.NewInt(1000))
	s.NoError(f.listing.Buy(f.c, id, buyerAddr, nil))

	s.Equal(big.NewInt(25), f.bank.TokenBalanceOf(feeAddr))
	s.Equal(big.NewInt(50), f.bank.TokenBalanceOf(royaltyAddr))
	s.Equal(big.NewInt(925), f.bank.TokenBalanceOf(sellerAddr))
	s.Equal(big.NewInt(0), f.bank.TokenBalanceOf(buyerAddr))

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(buyerAddr, owner)
}

func (s *listingUseCaseSuite) TestBuyRollsBackOnFailedPayout() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))

	f.bank.DepositNative(ledgerAddr, big.NewInt(1000))
	// the royalty leg is paid first; freezing it fails the purchase before
	// any money moves
	f.bank.Freeze(royaltyAddr)
	s.ErrorIs(f.listing.Buy(f.c, id, buyerAddr, big.NewInt(1000)), domain.ErrTransferFailed)

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(sellerAddr, owner)

	got, err := f.listing.FindOne(f.c, id)
	s.NoError(err)
	s.Equal(big.NewInt(1000), got.Price)
	s.Equal(big.NewInt(1000), f.bank.NativeBalanceOf(ledgerAddr))
	s.Equal(big.NewInt(0), f.bank.NativeBalanceOf(sellerAddr))
}

func (s *listingUseCaseSuite) TestBuyTokenRollsBackCompletedPulls() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), tokenAddr, sellerAddr))

	f.bank.DepositToken(buyerAddr, big.NewInt(1000))
	// royalty pull succeeds, the seller leg fails, the royalty pull is
	// reversed by the compensating transfer
	f.bank.Freeze(sellerAddr)
	s.ErrorIs(f.listing.Buy(f.c, id, buyerAddr, nil), domain.ErrTransferFailed)

	s.Equal(big.NewInt(1000), f.bank.TokenBalanceOf(buyerAddr))
	s.Equal(big.NewInt(0), f.bank.TokenBalanceOf(royaltyAddr))

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(sellerAddr, owner)

	_, err = f.listing.FindOne(f.c, id)
	s.NoError(err)
}
