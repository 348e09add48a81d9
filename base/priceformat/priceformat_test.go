package priceformat

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/goledger/domain"
)

func TestDisplayPrice(t *testing.T) {
	req := require.New(t)
	f := New(18, 6)
	token := domain.Address("0x07fe9ffd85b54a3a18467d3b5e91a55ecc52a268")

	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	req.True(ok)
	req.Equal("1.5", f.DisplayPrice(domain.EmptyAddress, wei))

	req.Equal("2.25", f.DisplayPrice(token, big.NewInt(2250000)))
	req.Equal("0", f.DisplayPrice(token, nil))
	req.Equal("0.000001", f.DisplayPrice(token, big.NewInt(1)))
}
