package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	cases := []struct {
		address string
		want    bool
	}{
		{"0xce4468e7ce84aceb74363f4ea64e5a038176f369", true},
		{"0xCE4468E7CE84ACEB74363F4EA64E5A038176F369", false},
		{"0x0000000000000000000000000000000000000000", true},
		{"not-an-address", false},
		{"", false},
	}

	for _, c := range cases {
		s.Equal(c.want, IsValidAddress(c.address), c.address)
	}
}
