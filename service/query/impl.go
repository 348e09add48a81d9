package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/base/database/mongoclient"
	"github.com/x-xyz/goledger/base/log"
	"github.com/x-xyz/goledger/domain"
)

type impl struct {
	client *mongoclient.Client
}

// New returns a Mongo backed by the given client
func New(client *mongoclient.Client) Mongo {
	return &impl{client: client}
}

func (q *impl) Insert(context ctx.Ctx, table domain.Table, insert interface{}) error {
	_, err := q.client.Collection(string(table)).InsertOne(context, insert)
	if err != nil {
		context.WithFields(log.Fields{"table": table, "err": err}).Error("InsertOne failed")
		return err
	}
	return nil
}

func (q *impl) FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error {
	err := q.client.Collection(string(table)).FindOne(context, query).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		context.WithFields(log.Fields{"table": table, "err": err}).Error("FindOne failed")
		return err
	}
	return nil
}

// sortSpec turns "-time" style sort keys into a driver sort document
func sortSpec(sortBy string) bson.D {
	dir := 1
	key := sortBy
	if strings.HasPrefix(sortBy, "-") {
		dir = -1
		key = sortBy[1:]
	}
	return bson.D{{Key: key, Value: dir}}
}

func (q *impl) Search(context ctx.Ctx, table domain.Table, offset, limit int32, sortBy string, query, result interface{}) error {
	opts := options.Find().SetSort(sortSpec(sortBy)).SetSkip(int64(offset))
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := q.client.Collection(string(table)).Find(context, query, opts)
	if err != nil {
		context.WithFields(log.Fields{"table": table, "query": query, "err": err}).Error("Find failed")
		return err
	}
	defer cursor.Close(context)
	if err := cursor.All(context, result); err != nil {
		context.WithFields(log.Fields{"table": table, "err": err}).Error("cursor.All failed")
		return err
	}
	return nil
}

func (q *impl) Count(context ctx.Ctx, table domain.Table, query interface{}) (int, error) {
	n, err := q.client.Collection(string(table)).CountDocuments(context, query)
	if err != nil {
		context.WithFields(log.Fields{"table": table, "err": err}).Error("CountDocuments failed")
		return 0, err
	}
	return int(n), nil
}

func (q *impl) RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) error {
	_, err := q.client.Collection(string(table)).DeleteMany(context, selector)
	if err != nil {
		context.WithFields(log.Fields{"table": table, "err": err}).Error("DeleteMany failed")
		return err
	}
	return nil
}
