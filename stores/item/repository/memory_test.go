package repository

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/mocks"
)

type registrySuite struct {
	suite.Suite

	clock *mocks.Clock
	im    *MemoryRegistry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(registrySuite))
}

func (s *registrySuite) SetupTest() {
	s.clock = &mocks.Clock{}
	s.clock.On("Now").Return(time.Unix(1700000000, 0))
	s.im = NewMemoryRegistry(s.clock)
}

func (s *registrySuite) TestMintAssignsMonotonicIds() {
	c := ctx.Background()
	owner := domain.Address("0x00000000000000000000000000000000000000aa")

	id1, err := s.im.Mint(c, owner, domain.EmptyAddress, 0)
	s.NoError(err)
	id2, err := s.im.Mint(c, owner, domain.EmptyAddress, 0)
	s.NoError(err)
	s.Equal(domain.ItemId(1), id1)
	s.Equal(domain.ItemId(2), id2)

	got, err := s.im.OwnerOf(c, id1)
	s.NoError(err)
	s.Equal(owner, got)
}

func (s *registrySuite) TestMintRejectsBadRoyalty() {
	c := ctx.Background()
	owner := domain.Address("0x00000000000000000000000000000000000000aa")
	recipient := domain.Address("0x00000000000000000000000000000000000000cc")

	_, err := s.im.Mint(c, owner, recipient, 2001)
	s.ErrorIs(err, domain.ErrInvalidRoyalty)

	// positive rate needs a recipient
	_, err = s.im.Mint(c, owner, domain.EmptyAddress, 100)
	s.ErrorIs(err, domain.ErrInvalidRoyalty)
}

func (s *registrySuite) TestTransfer() {
	c := ctx.Background()
	owner := domain.Address("0x00000000000000000000000000000000000000aa")
	buyer := domain.Address("0x00000000000000000000000000000000000000bb")

	id, err := s.im.Mint(c, owner, domain.EmptyAddress, 0)
	s.NoError(err)

	s.ErrorIs(s.im.Transfer(c, buyer, owner, id), domain.ErrNotOwner)

	s.NoError(s.im.Transfer(c, owner, buyer, id))
	got, err := s.im.OwnerOf(c, id)
	s.NoError(err)
	s.Equal(buyer, got)
}

func (s *registrySuite) TestRoyaltyInfo() {
	c := ctx.Background()
	owner := domain.Address("0x00000000000000000000000000000000000000aa")
	recipient := domain.Address("0x00000000000000000000000000000000000000cc")

	id, err := s.im.Mint(c, owner, recipient, 500)
	s.NoError(err)

	to, amount, err := s.im.RoyaltyInfo(c, id, big.NewInt(1000))
	s.NoError(err)
	s.Equal(recipient, to)
	s.Equal(big.NewInt(50), amount)

	// truncated, never rounded up
	_, amount, err = s.im.RoyaltyInfo(c, id, big.NewInt(39))
	s.NoError(err)
	s.Equal(big.NewInt(1), amount)

	noRoyaltyId, err := s.im.Mint(c, owner, domain.EmptyAddress, 0)
	s.NoError(err)
	to, amount, err = s.im.RoyaltyInfo(c, noRoyaltyId, big.NewInt(1000))
	s.NoError(err)
	s.True(to.IsEmpty())
	s.Equal(big.NewInt(0), amount)
}
