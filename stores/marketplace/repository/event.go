package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
	"github.com/x-xyz/goledger/domain/marketplace"
	"github.com/x-xyz/goledger/service/query"
)

type eventRepoImpl struct {
	q query.Mongo
}

// NewEventRepo returns the mongo backed event archive
func NewEventRepo(q query.Mongo) marketplace.EventRepo {
	return &eventRepoImpl{q}
}

func (im *eventRepoImpl) makeQuery(opts ...marketplace.EventFindAllOptionsFunc) (bson.M, *int32, *int32, error) {
	options, err := marketplace.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	query := bson.M{}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	if options.ItemId != nil {
		query["itemId"] = *options.ItemId
	}

	if options.Account != nil {
		query["$or"] = []bson.M{
			{"account": *options.Account},
			{"to": *options.Account},
		}
	}

	return query, options.Offset, options.Limit, nil
}

func (im *eventRepoImpl) Insert(c ctx.Ctx, value *marketplace.Event) error {
	value.Account = value.Account.ToLower()
	value.To = value.To.ToLower()
	value.PayToken = value.PayToken.ToLower()
	if err := im.q.Insert(c, domain.TableEvents, value); err != nil {
		c.WithFields(log.Fields{"err": err, "event": value.Type}).Error("failed to q.Insert")
		return xerrors.Errorf("insert event: %w", err)
	}
	return nil
}

func (im *eventRepoImpl) FindAll(c ctx.Ctx, opts ...marketplace.EventFindAllOptionsFunc) ([]*marketplace.Event, error) {
	query, offset, limit, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("im.makeQuery failed")
		return nil, err
	}

	var off, lim int32
	if offset != nil {
		off = *offset
	}
	if limit != nil {
		lim = *limit
	}

	res := []*marketplace.Event{}
	if err := im.q.Search(c, domain.TableEvents, off, lim, "-time", query, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": query}).Error("failed to q.Search")
		return nil, xerrors.Errorf("search events: %w", err)
	}
	return res, nil
}
