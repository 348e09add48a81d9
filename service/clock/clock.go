package clock

import (
	"time"

	"github.com/x-xyz/goledger/domain"
)

type systemClock struct{}

// New returns a clock backed by the host wall clock
func New() domain.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
