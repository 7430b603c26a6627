package flash

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

type testPresenter struct {
	suite.Suite
}

func (t *testPresenter) TestRevertsAfterHold() {
	presenter := New()
	var applied, reverted int32

	presenter.Show(context.Background(), 20*time.Millisecond, func() {
		atomic.AddInt32(&applied, 1)
	}, func() {
		atomic.AddInt32(&reverted, 1)
	})

	t.Equal(int32(1), atomic.LoadInt32(&applied))
	t.True(presenter.Pending())
	t.Eventually(func() bool {
		return atomic.LoadInt32(&reverted) == 1
	}, time.Second, 5*time.Millisecond)
	t.False(presenter.Pending())
}

func (t *testPresenter) TestNewStateCancelsPreviousRevert() {
	presenter := New()
	var first, second int32

	presenter.Show(context.Background(), 30*time.Millisecond, nil, func() {
		atomic.AddInt32(&first, 1)
	})
	presenter.Show(context.Background(), 60*time.Millisecond, nil, func() {
		atomic.AddInt32(&second, 1)
	})

	t.Eventually(func() bool {
		return atomic.LoadInt32(&second) == 1
	}, time.Second, 5*time.Millisecond)
	t.Zero(atomic.LoadInt32(&first))
}

func (t *testPresenter) TestStopSkipsRevert() {
	presenter := New()
	var reverted int32

	presenter.Show(context.Background(), 20*time.Millisecond, nil, func() {
		atomic.AddInt32(&reverted, 1)
	})
	presenter.Stop()

	<-time.After(60 * time.Millisecond)
	t.Zero(atomic.LoadInt32(&reverted))
	t.False(presenter.Pending())
}

func (t *testPresenter) TestDefaultConfig() {
	config := DefaultConfig()
	t.Equal(5*time.Second, config.ReminderHold)
	t.Equal(4*time.Second, config.MessageHold)
}

func TestPresenter(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(testPresenter))
}
