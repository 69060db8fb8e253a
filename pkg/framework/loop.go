package framework

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the period of loop iterations when nothing triggers them.
const DefaultInterval = 100 * time.Millisecond

// Loop runs controllers by priority level, periodically or when triggered,
// and dispatches posted messages to them.
type Loop struct {
	Interval time.Duration
	// Clock stamps iterations, time.Now if nil.
	Clock func() time.Time

	controllers [PriorityLevels][]Controller
	runners     []Runnable

	lock     sync.Mutex
	pending  []Message
	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopCtxKey struct{}

// LoopCtlOf gets the LoopControl if ctx comes from a loop.
func LoopCtlOf(ctx context.Context) (LoopControl, bool) {
	ctl, ok := ctx.Value(loopCtxKey{}).(LoopControl)
	return ctl, ok
}

// LoopCtlFrom gets LoopControl from context, it panics if ctx
// doesn't come from a loop.
func LoopCtlFrom(ctx context.Context) LoopControl {
	ctl, ok := LoopCtlOf(ctx)
	if !ok {
		panic("context without loop")
	}
	return ctl
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers to the loop. Controllers which
// are also Runnable are started with the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds background runners sharing the loop's lifetime.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	l.initWakeUp()
	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey{}, LoopControl(l)))
	runner.Go(l.runners...)

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := runner.Wait(); err != nil {
				return err
			}
			return ctx.Err()
		case <-ticker.C:
		case <-l.wakeUpCh:
		}
		l.Step(ctx)
	}
}

// RunOrFail is intended to be used in main to simply run the loop
// until interrupted.
func (l *Loop) RunOrFail() {
	runner := NewRunner().HandleSignals()
	if err := l.Run(runner.Context); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalln(err)
	}
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.pending = append(l.pending, msg)
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	l.initWakeUp()
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) initWakeUp() {
	l.lock.Lock()
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	l.lock.Unlock()
}

// Step runs a single iteration over the messages posted so far.
func (l *Loop) Step(ctx context.Context) {
	now := time.Now
	if l.Clock != nil {
		now = l.Clock
	}
	iter := &iteration{loop: l, time: now()}
	l.lock.Lock()
	iter.messages, l.pending = l.pending, nil
	l.lock.Unlock()
	iter.ctx = context.WithValue(ctx, loopCtxKey{}, LoopControl(iter))
	for lv, ctls := range l.controllers {
		iter.level = lv
		for _, ctl := range ctls {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error at level %d: %v", lv, err)
			}
		}
	}
	if n := len(iter.messages); n > 0 && glog.V(3) {
		glog.Infof("%d messages not taken", n)
	}
}

type iteration struct {
	loop     *Loop
	ctx      context.Context
	time     time.Time
	level    int
	messages []Message
}

func (t *iteration) Context() context.Context { return t.ctx }
func (t *iteration) Time() time.Time          { return t.time }
func (t *iteration) PriorityLevel() int       { return t.level }
func (t *iteration) Messages() MessageStore   { return t }
func (t *iteration) PostMessage(msg Message)  { t.loop.PostMessage(msg) }
func (t *iteration) TriggerNext()             { t.loop.TriggerNext() }

type messageContext struct {
	msg   Message
	taken bool
}

func (c *messageContext) CurrentMessage() Message { return c.msg }
func (c *messageContext) MessageTaken()           { c.taken = true }

func (t *iteration) ProcessMessages(proc MessageProcessor) {
	remains := t.messages[:0]
	for _, msg := range t.messages {
		mctx := &messageContext{msg: msg}
		proc.ProcessMessage(mctx)
		if !mctx.taken {
			remains = append(remains, msg)
		}
	}
	for i := len(remains); i < len(t.messages); i++ {
		t.messages[i] = nil
	}
	t.messages = remains
}
