package framework

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct {
	val int
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func TestLoopStep(t *testing.T) {
	now := time.Unix(100, 0)
	l := NewLoop()
	l.Clock = func() time.Time { return now }

	var order []string
	var seen []int
	l.AddController(PrLvPostProc, ControlFunc(func(cc ControlContext) error {
		order = append(order, "post")
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			seen = append(seen, mc.CurrentMessage().(*testMsg).val)
		}))
		return nil
	}))
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		order = append(order, "control")
		require.Equal(t, now, cc.Time())
		require.Equal(t, PrLvControl, cc.PriorityLevel())
		ctl, ok := LoopCtlOf(cc.Context())
		require.True(t, ok)
		require.NotNil(t, ctl)
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			if mc.CurrentMessage().(*testMsg).val%2 == 0 {
				mc.MessageTaken()
			}
		}))
		return errors.New("logged only")
	}))

	for i := 1; i <= 4; i++ {
		l.PostMessage(&testMsg{val: i})
	}
	l.Step(context.Background())
	require.Equal(t, []string{"control", "post"}, order)
	require.Equal(t, []int{1, 3}, seen)

	seen = nil
	l.Step(context.Background())
	require.Empty(t, seen)
}

func TestLoopCtlOf(t *testing.T) {
	_, ok := LoopCtlOf(context.Background())
	require.False(t, ok)
	require.Panics(t, func() { LoopCtlFrom(context.Background()) })
}

type countingRunner struct {
	started int32
}

func (r *countingRunner) Run(ctx context.Context) error {
	atomic.AddInt32(&r.started, 1)
	<-ctx.Done()
	return ctx.Err()
}

func TestLoopRun(t *testing.T) {
	l := NewLoop()
	l.Interval = time.Hour
	r := &countingRunner{}
	l.AddRunnable(r)

	got := make(chan int, 1)
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			mc.MessageTaken()
			got <- mc.CurrentMessage().(*testMsg).val
		}))
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	l.PostMessage(&testMsg{val: 7})
	l.TriggerNext()
	select {
	case val := <-got:
		require.Equal(t, 7, val)
	case <-time.After(5 * time.Second):
		t.Fatal("message not dispatched")
	}
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
	require.Equal(t, int32(1), atomic.LoadInt32(&r.started))
}
