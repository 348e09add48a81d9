package query

import (
	"fmt"

	"github.com/x-xyz/goledger/base/ctx"
	"github.com/x-xyz/goledger/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")
)

// Mongo abstracts the mongo layer. It is a thin wrapper around the
// official driver; see the driver docs for querying details.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets one document from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Search gets a page of documents sorted by sortBy
	Search(context ctx.Ctx, table domain.Table, offset, limit int32, sortBy string, query, result interface{}) error

	// Count returns the number of matched documents in the table
	Count(context ctx.Ctx, table domain.Table, query interface{}) (int, error)

	// RemoveAll removes all matched documents from the table
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) error
}
