package comm

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = 1 * time.Second

// ErrConnClosed fails the commands pending when the connection goes away.
var ErrConnClosed = errors.New("connection closed")

// ControllerConn is the connector side of a Pipe. Commands get a
// sequence number and their futures complete with the matching reply,
// an error or DeadlineExceeded after Expiration. Events are posted to
// the loop.
type ControllerConn struct {
	Expiration time.Duration
	// Now is the time source for expiration, time.Now if nil.
	Now func() time.Time

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	lock     sync.Mutex
}

// Init initializes ControllerConn with defaults.
func (c *ControllerConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements ControllerConn.
func (c *ControllerConn) DoCommand(msg fx.Message) l1.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: c.now().Add(c.Expiration),
		result:   make(chan l1.Result, 1),
	}
	if err := c.pipe.SendCommand(msg, f.seq); err != nil {
		f.complete(l1.Result{Err: err})
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// Pending returns the number of commands waiting for a reply.
func (c *ControllerConn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.commands.Len()
}

// Run receives replies and events until the connection fails,
// then fails the pending commands.
func (c *ControllerConn) Run(ctx context.Context) error {
	err := c.pipe.Run(ctx)
	c.failAll(ErrConnClosed)
	return err
}

// Close closes the underlying connection.
func (c *ControllerConn) Close() error {
	return c.pipe.Close()
}

// AddToLoop implements LoopAdder.
func (c *ControllerConn) AddToLoop(l *fx.Loop) {
	if adder, ok := c.pipe.ReadWriter.(fx.LoopAdder); ok {
		l.Add(adder)
	} else if runnable, ok := c.pipe.ReadWriter.(fx.Runnable); ok {
		l.AddRunnable(runnable)
	}
	l.AddRunnable(fx.RunFunc(c.Run))
	l.AddController(fx.PrLvIdle, fx.ControlFunc(c.purgeExpired))
}

func (c *ControllerConn) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *ControllerConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		loopCtl, ok := fx.LoopCtlOf(ctx)
		if !ok {
			glog.Warningf("event %T dropped outside loop", msg)
			return nil
		}
		loopCtl.PostMessage(msg)
		loopCtl.TriggerNext()
		return nil
	}
	if !typed.IsReply() {
		glog.Warningf("unexpected command %T from controller", msg)
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		if glog.V(2) {
			glog.Infof("late reply #%d %T", typed.Sequence, msg)
		}
		return nil
	}
	c.remove(f)
	result := l1.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.complete(result)
	return nil
}

func (c *ControllerConn) purgeExpired(cc fx.ControlContext) error {
	now := c.now()
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		f := c.commands.Front().Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.remove(f)
		f.complete(l1.Result{Err: context.DeadlineExceeded})
	}
	return nil
}

func (c *ControllerConn) failAll(err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		f := c.commands.Front().Value.(*commandFuture)
		c.remove(f)
		f.complete(l1.Result{Err: err})
	}
}

func (c *ControllerConn) remove(f *commandFuture) {
	c.commands.Remove(f.elem)
	delete(c.seqMap, f.seq)
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan l1.Result
}

func (f *commandFuture) complete(res l1.Result) {
	f.result <- res
	close(f.result)
}

func (f *commandFuture) ResultChan() <-chan l1.Result {
	return f.result
}
