package usecase

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/base/priceformat"
	"github.com/x-xyz/goledger/domain/marketplace"
)

type EventUseCaseCfg struct {
	EventRepo marketplace.EventRepo
	Formatter *priceformat.Formatter
	// Workers > 0 archives events on a bounded worker pool; 0 writes
	// inline, which tests rely on
	Workers int
}

type eventImpl struct {
	eventRepo marketplace.EventRepo
	formatter *priceformat.Formatter
	pool      *goroutines.Pool
}

func NewEventUseCase(cfg *EventUseCaseCfg) marketplace.EventUseCase {
	if cfg.EventRepo == nil {
		panic("EventRepo can not be nil")
	}
	im := &eventImpl{
		eventRepo: cfg.EventRepo,
		formatter: cfg.Formatter,
	}
	if cfg.Workers > 0 {
		im.pool = goroutines.NewPool(cfg.Workers)
	}
	return im
}

// Record archives one ledger event. The archive is write behind: a failed
// write is logged and dropped, it never unwinds the ledger operation that
// produced the event.
func (im *eventImpl) Record(c ctx.Ctx, value marketplace.Event) {
	value.Id = uuid.NewString()
	if value.DisplayPrice == "" && value.Price != "" && im.formatter != nil {
		if amount, ok := new(big.Int).SetString(value.Price, 10); ok {
			value.DisplayPrice = im.formatter.DisplayPrice(value.PayToken, amount)
		}
	}

	write := func() {
		if err := im.eventRepo.Insert(c, &value); err != nil {
			c.WithFields(log.Fields{"err": err, "type": value.Type}).Error("eventRepo.Insert failed")
		}
	}

	if im.pool == nil {
		write()
		return
	}
	if err := im.pool.Schedule(write); err != nil {
		c.WithField("err", err).Error("event pool.Schedule failed")
	}
}

func (im *eventImpl) FindAll(c ctx.Ctx, opts ...marketplace.EventFindAllOptionsFunc) ([]*marketplace.Event, error) {
	res, err := im.eventRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("eventRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}
