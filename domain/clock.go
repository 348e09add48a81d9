package domain

import "time"

// Clock supplies the current time to the ledger. Auction expiry is a data
// condition checked against this clock when someone calls in, never a
// scheduled callback.
type Clock interface {
	Now() time.Time
}
