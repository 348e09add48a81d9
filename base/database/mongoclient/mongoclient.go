package mongoclient

import (
	"context"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/goledger/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnectMongoClient returns a connected client or panics
func MustConnectMongoClient(uri, dbName string, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(uri, dbName, poolSizeMultiplier)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns mongo driver client
func ConnectMongoClient(uri, dbName string, poolSizeMultiplier float64) (*Client, error) {
	ctx := context.Background()

	clientOpts := options.Client()
	clientOpts.ApplyURI(uri)
	clientOpts.SetSocketTimeout(mgSocketTimeout)
	// each host keeps its own pool
	clientOpts.SetMaxPoolSize(uint64(float64(runtime.NumCPU()) * poolSizeMultiplier))

	cli, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, err
	}

	return &Client{DbName: dbName, Client: cli}, nil
}

// Collection returns the named collection inside the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.Database(c.DbName).Collection(name)
}

// EnsureIndex creates an index on the collection if it does not exist
func (c *Client) EnsureIndex(ctx context.Context, collection string, keys bson.D) error {
	_, err := c.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
	return err
}
