package usecase

import (
	"sync"
	"time"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
	"github.com/x-xyz/goledger/service/bank"
	itemrepo "github.com/x-xyz/goledger/stores/item/repository"
	"github.com/x-xyz/goledger/stores/marketplace/repository"
)

var (
	adminAddr   = domain.Address("0x00000000000000000000000000000000000000ad")
	feeAddr     = domain.Address("0x00000000000000000000000000000000000000fe")
	royaltyAddr = domain.Address("0x000000000000000000000000000000000000000c")
	tokenAddr   = domain.Address("0x0000000000000000000000000000000000000e20")
	ledgerAddr  = domain.Address("0x000000000000000000000000000000000000d00d")

	sellerAddr = domain.Address("0x00000000000000000000000000000000000000aa")
	buyerAddr  = domain.Address("0x00000000000000000000000000000000000000bb")
	otherAddr  = domain.Address("0x00000000000000000000000000000000000000cc")
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

// recorder is a synchronous in-memory event sink for tests
type recorder struct {
	mu     sync.Mutex
	events []marketplace.Event
}

func (r *recorder) Record(c ctx.Ctx, value marketplace.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, value)
}

func (r *recorder) FindAll(c ctx.Ctx, opts ...marketplace.EventFindAllOptionsFunc) ([]*marketplace.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*marketplace.Event, 0, len(r.events))
	for i := range r.events {
		e := r.events[i]
		res = append(res, &e)
	}
	return res, nil
}

func (r *recorder) types() []marketplace.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]marketplace.EventType, 0, len(r.events))
	for _, e := range r.events {
		res = append(res, e.Type)
	}
	return res
}

func (r *recorder) last() *marketplace.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	e := r.events[len(r.events)-1]
	return &e
}

// fixture wires the full ledger against an in-process bank so suites can
// assert money movement end to end
type fixture struct {
	c     ctx.Ctx
	clock *fakeClock
	bank  *bank.Bank
	rec   *recorder

	registry    *itemrepo.MemoryRegistry
	listings    marketplace.ListingRepo
	auctions    marketplace.AuctionRepo
	approvals   marketplace.ApprovalRepo
	withdrawals marketplace.WithdrawalRepo
	configs     marketplace.ConfigRepo

	listing    marketplace.ListingUseCase
	auction    marketplace.AuctionUseCase
	withdrawal marketplace.WithdrawalUseCase
	admin      marketplace.AdminUseCase
}

func newFixture() *fixture {
	f := &fixture{
		c:     ctx.Background(),
		clock: &fakeClock{now: time.Unix(1700000000, 0)},
		rec:   &recorder{},
	}
	f.bank = bank.New(ledgerAddr)
	f.registry = itemrepo.NewMemoryRegistry(f.clock)
	f.listings = repository.NewListingRepo()
	f.auctions = repository.NewAuctionRepo()
	f.approvals = repository.NewApprovalRepo()
	f.withdrawals = repository.NewWithdrawalRepo()
	f.configs = repository.NewConfigRepo(marketplace.Config{
		Admin:        adminAddr,
		FeeBps:       250,
		FeeRecipient: feeAddr,
		PayToken:     tokenAddr,
	})

	opLock := &sync.Mutex{}
	f.listing = NewListingUseCase(&ListingUseCaseCfg{
		OpLock:       opLock,
		ListingRepo:  f.listings,
		AuctionRepo:  f.auctions,
		ApprovalRepo: f.approvals,
		ConfigRepo:   f.configs,
		Registry:     f.registry,
		Royalty:      f.registry,
		NativeRail:   f.bank,
		TokenRail:    f.bank,
		Clock:        f.clock,
		Event:        f.rec,
	})
	f.auction = NewAuctionUseCase(&AuctionUseCaseCfg{
		OpLock:         opLock,
		ListingRepo:    f.listings,
		AuctionRepo:    f.auctions,
		ApprovalRepo:   f.approvals,
		WithdrawalRepo: f.withdrawals,
		ConfigRepo:     f.configs,
		Registry:       f.registry,
		Royalty:        f.registry,
		NativeRail:     f.bank,
		Clock:          f.clock,
		Event:          f.rec,
	})
	f.withdrawal = NewWithdrawalUseCase(&WithdrawalUseCaseCfg{
		OpLock:         opLock,
		WithdrawalRepo: f.withdrawals,
		NativeRail:     f.bank,
		Clock:          f.clock,
		Event:          f.rec,
	})
	f.admin = NewAdminUseCase(&AdminUseCaseCfg{
		OpLock:         opLock,
		ConfigRepo:     f.configs,
		ApprovalRepo:   f.approvals,
		AuctionRepo:    f.auctions,
		WithdrawalRepo: f.withdrawals,
		Registry:       f.registry,
		NativeRail:     f.bank,
		Clock:          f.clock,
		Event:          f.rec,
	})
	return f
}

// mintApproved mints an item with a 5% royalty to sellerAddr and flags it
// approved for trading
func (f *fixture) mintApproved() domain.ItemId {
	id, err := f.registry.Mint(f.c, sellerAddr, royaltyAddr, 500)
	if err != nil {
		panic(err)
	}
	if err := f.approvals.Set(f.c, id, true); err != nil {
		panic(err)
	}
	return id
}
