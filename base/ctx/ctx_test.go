package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

// cancelledBefore reports whether ctx is done before the 100ms deadline
func cancelledBefore(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "requestId", "req-1")
	ts.Equal("req-1", ctx.Value("requestId"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"requestId": "req-1",
		"caller":    "0x00ad",
	})
	ts.Equal("req-1", ctx.Value("requestId"))
	ts.Equal("0x00ad", ctx.Value("caller"))
}

func (ts *testsuite) TestWithCancel() {
	bg := Background()
	ctx, cancel := WithCancel(bg)
	defer cancel()
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	ts.True(cancelledBefore(ctx))
}

func (ts *testsuite) TestTimeout() {
	bg := Background()
	ctx, cancel := WithTimeout(bg, 10*time.Millisecond)
	defer cancel()
	ts.True(cancelledBefore(ctx))
	ts.Equal(context.DeadlineExceeded, ctx.Err())
}
