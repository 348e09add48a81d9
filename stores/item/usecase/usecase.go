package usecase

import (
	"strconv"
	"sync"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/item"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type ItemUseCaseCfg struct {
	OpLock   *sync.Mutex
	Registry item.Registry
	Clock    domain.Clock
	Event    marketplace.EventUseCase
}

type impl struct {
	opLock   *sync.Mutex
	registry item.Registry
	clock    domain.Clock
	event    marketplace.EventUseCase
}

func New(cfg *ItemUseCaseCfg) item.UseCase {
	if cfg.OpLock == nil {
		panic("OpLock can not be nil")
	}
	return &impl{
		opLock:   cfg.OpLock,
		registry: cfg.Registry,
		clock:    cfg.Clock,
		event:    cfg.Event,
	}
}

func (im *impl) Mint(c ctx.Ctx, to domain.Address, royaltyRecipient domain.Address, royaltyBps int64) (*item.Item, error) {
	im.opLock.Lock()
	defer im.opLock.Unlock()

	id, err := im.registry.Mint(c, to, royaltyRecipient, royaltyBps)
	if err != nil {
		c.WithFields(log.Fields{"to": to, "err": err}).Error("registry.Mint failed")
		return nil, err
	}
	minted, err := im.registry.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	now := im.clock.Now()
	im.event.Record(c, marketplace.Event{
		Type:    marketplace.EventTypeMint,
		ItemId:  &id,
		Account: to,
		Time:    now,
	})
	if minted.HasRoyalty() {
		im.event.Record(c, marketplace.Event{
			Type:    marketplace.EventTypeRoyaltySet,
			ItemId:  &id,
			Account: to,
			To:      royaltyRecipient,
			Note:    strconv.FormatInt(royaltyBps, 10),
			Time:    now,
		})
	}
	return minted, nil
}

func (im *impl) FindOne(c ctx.Ctx, id domain.ItemId) (*item.Item, error) {
	return im.registry.FindOne(c, id)
}
