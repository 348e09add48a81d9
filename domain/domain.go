package domain

import (
	"fmt"
	"math/big"
	"strings"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)

	// BpsDenominator is the denominator for basis point rates
	BpsDenominator = big.NewInt(10000)
)

// ItemId identifies a tradable item. Ids are assigned monotonically at
// mint time and never reused.
type ItemId uint64

func (i ItemId) String() string {
	return fmt.Sprint(uint64(i))
}

type Address string

// EmptyAddress doubles as the native currency marker on listings and
// auctions, following the zero address convention.
const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// Table is a mongo collection name
type Table string

const (
	TableEvents Table = "events"
)
