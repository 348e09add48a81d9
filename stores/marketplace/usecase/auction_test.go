package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type auctionUseCaseSuite struct {
	suite.Suite

	f *fixture
}

func TestAuctionUseCaseSuite(t *testing.T) {
	suite.Run(t, new(auctionUseCaseSuite))
}

func (s *auctionUseCaseSuite) SetupTest() {
	s.f = newFixture()
}

func (s *auctionUseCaseSuite) TestCreatePreconditions() {
	f := s.f
	id := f.mintApproved()

	s.ErrorIs(f.auction.Create(f.c, id, big.NewInt(0), time.Hour, domain.EmptyAddress, sellerAddr), domain.ErrInvalidPrice)
	s.ErrorIs(f.auction.Create(f.c, id, big.NewInt(500), 30*time.Minute, domain.EmptyAddress, sellerAddr), domain.ErrInvalidDuration)
	s.ErrorIs(f.auction.Create(f.c, id, big.NewInt(500), 8*24*time.Hour, domain.EmptyAddress, sellerAddr), domain.ErrInvalidDuration)
	s.ErrorIs(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, buyerAddr), domain.ErrNotOwner)

	s.NoError(f.listing.List(f.c, id, big.NewInt(1000), domain.EmptyAddress, sellerAddr))
	s.ErrorIs(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr), domain.ErrAlreadyListed)
	s.NoError(f.listing.Cancel(f.c, id, sellerAddr))

	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))
	s.ErrorIs(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr), domain.ErrInAuction)

	got, err := f.auction.FindOne(f.c, id)
	s.NoError(err)
	s.Equal(f.clock.now.Add(time.Hour), got.EndTime)
	s.False(got.HasBid())
}

func (s *auctionUseCaseSuite) TestPlaceBidDisplacesPriorBidder() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))

	s.ErrorIs(f.auction.PlaceBid(f.c, 99, buyerAddr, big.NewInt(600)), domain.ErrNotActive)
	s.ErrorIs(f.auction.PlaceBid(f.c, id, sellerAddr, big.NewInt(600)), domain.ErrSelfBid)
	s.ErrorIs(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(499)), domain.ErrBidTooLow)

	s.NoError(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(600)))
	// ties are rejected, bids are strictly increasing
	s.ErrorIs(f.auction.PlaceBid(f.c, id, otherAddr, big.NewInt(600)), domain.ErrBidTooLow)
	s.NoError(f.auction.PlaceBid(f.c, id, otherAddr, big.NewInt(700)))

	// the displaced bid becomes a pending withdrawal, never an inline refund
	pending, err := f.withdrawal.BalanceOf(f.c, buyerAddr)
	s.NoError(err)
	s.Equal(big.NewInt(600), pending)

	got, err := f.auction.FindOne(f.c, id)
	s.NoError(err)
	s.Equal(big.NewInt(700), got.CurrentBid)
	s.Equal(otherAddr, got.CurrentBidder)
}

func (s *auctionUseCaseSuite) TestPlaceBidTokenAuctionUnsupported() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, tokenAddr, sellerAddr))
	s.ErrorIs(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(600)), domain.ErrUnsupported)
}

func (s *auctionUseCaseSuite) TestPlaceBidAfterEndTime() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))

	f.clock.advance(time.Hour)
	s.ErrorIs(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(600)), domain.ErrEnded)
}

func (s *auctionUseCaseSuite) TestPlaceBidWhilePaused() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))
	s.NoError(f.admin.Pause(f.c, adminAddr))
	s.ErrorIs(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(600)), domain.ErrPaused)
}

func (s *auctionUseCaseSuite) TestEndSettlesWinningBid() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))
	s.NoError(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(700)))
	f.bank.DepositNative(ledgerAddr, big.NewInt(700))

	s.ErrorIs(f.auction.End(f.c, id, otherAddr), domain.ErrNotYetEnded)

	f.clock.advance(time.Hour)
	// anyone can trigger settlement once the end time passes
	s.NoError(f.auction.End(f.c, id, otherAddr))

	// 2.5% fee = 17 (truncated), 5% royalty = 35, seller keeps 648
	s.Equal(big.NewInt(17), f.bank.NativeBalanceOf(feeAddr))
	s.Equal(big.NewInt(35), f.bank.NativeBalanceOf(royaltyAddr))
	s.Equal(big.NewInt(648), f.bank.NativeBalanceOf(sellerAddr))

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(buyerAddr, owner)

	// effective exactly once
	s.ErrorIs(f.auction.End(f.c, id, otherAddr), domain.ErrNotActive)

	types := f.rec.types()
	s.Equal(marketplace.EventTypeSold, types[len(types)-1])
	s.Equal(marketplace.EventTypeResultAuction, types[len(types)-2])
}

func (s *auctionUseCaseSuite) TestEndWithNoBids() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))

	f.clock.advance(2 * time.Hour)
	s.NoError(f.auction.End(f.c, id, otherAddr))

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(sellerAddr, owner)

	_, err = f.auction.FindOne(f.c, id)
	s.ErrorIs(err, domain.ErrNotFound)

	last := f.rec.last()
	s.Equal(marketplace.EventTypeResultAuction, last.Type)
	s.Equal("no bids", last.Note)
}

func (s *auctionUseCaseSuite) TestEndRollsBackOnFailedPayout() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))
	s.NoError(f.auction.PlaceBid(f.c, id, buyerAddr, big.NewInt(700)))
	f.bank.DepositNative(ledgerAddr, big.NewInt(700))
	f.bank.Freeze(royaltyAddr)

	f.clock.advance(time.Hour)
	s.ErrorIs(f.auction.End(f.c, id, otherAddr), domain.ErrTransferFailed)

	// the auction survives with its bid intact so settlement can retry
	got, err := f.auction.FindOne(f.c, id)
	s.NoError(err)
	s.Equal(big.NewInt(700), got.CurrentBid)
	s.Equal(buyerAddr, got.CurrentBidder)

	owner, err := f.registry.OwnerOf(f.c, id)
	s.NoError(err)
	s.Equal(sellerAddr, owner)
	s.Equal(big.NewInt(700), f.bank.NativeBalanceOf(ledgerAddr))
}

func (s *auctionUseCaseSuite) TestEndWorksWhilePaused() {
	f := s.f
	id := f.mintApproved()
	s.NoError(f.auction.Create(f.c, id, big.NewInt(500), time.Hour, domain.EmptyAddress, sellerAddr))

	s.NoError(f.admin.Pause(f.c, adminAddr))
	f.clock.advance(time.Hour)
	s.NoError(f.auction.End(f.c, id, otherAddr))
}
