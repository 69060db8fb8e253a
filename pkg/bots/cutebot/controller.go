package cutebot

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/cutebot"
	"github.com/robotalks/cutebot.go/pkg/l1"
	env "github.com/robotalks/cutebot.go/pkg/l1/env/controller"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

// ControllerType is the L1 controller type.
const ControllerType = "cutebot"

// Controller is the L1 controller.
type Controller struct {
	Bot    *cutebot.Cutebot
	Events l1.Registrar

	lock       sync.Mutex
	moveSeq    uint64
	moveCancel context.CancelFunc
	wg         sync.WaitGroup
	stopped    chan struct{}
}

// moveDone is posted to the loop when a move completes.
type moveDone struct {
	seq   uint64
	event *msgs.CutebotMotion
}

// NewMessage implements Message.
func (m *moveDone) NewMessage() fx.Message { return &moveDone{} }

// NewController creates the controller.
func NewController(e *env.Env, bot *cutebot.Cutebot) *Controller {
	return &Controller{Bot: bot, Events: e.Registrar}
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvControl, fx.ControlFunc(c.HandleCommand))
	l.AddController(fx.PrLvPostProc, fx.ControlFunc(c.NotifyMotion))
	l.AddRunnable(fx.NamedRun("cutebot-stop-on-exit", fx.RunFunc(c.stopOnExit)))
}

// Stopped is closed once the wheels are stopped after the loop exits.
func (c *Controller) Stopped() <-chan struct{} {
	return c.stoppedChan()
}

func (c *Controller) stoppedChan() chan struct{} {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.stopped == nil {
		c.stopped = make(chan struct{})
	}
	return c.stopped
}

func (c *Controller) stopOnExit(ctx context.Context) error {
	stopped := c.stoppedChan()
	<-ctx.Done()
	c.cancelMove()
	c.wg.Wait()
	if err := c.Bot.Stop(context.Background()); err != nil {
		glog.Errorf("stop on exit error: %v", err)
	} else {
		glog.Info("wheels stopped")
	}
	close(stopped)
	return nil
}

// HandleCommand is a controller processing commands.
func (c *Controller) HandleCommand(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if !ok {
			return
		}
		reply := c.Execute(cc.Context(), cmdMsg.Command.Msg())
		if reply == nil {
			return
		}
		mctx.MessageTaken()
		if err := cmdMsg.Command.Done(reply); err != nil {
			glog.Errorf("reply %T error: %v", cmdMsg.Command.Msg(), err)
		}
	}))
	return nil
}

// NotifyMotion sends motion events for completed moves.
func (c *Controller) NotifyMotion(cc fx.ControlContext) error {
	var events []*msgs.CutebotMotion
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if done, ok := mctx.CurrentMessage().(*moveDone); ok {
			mctx.MessageTaken()
			c.finishMove(done.seq)
			events = append(events, done.event)
		}
	}))
	for _, ev := range events {
		c.sendEvent(cc.Context(), ev)
	}
	return nil
}

// Execute runs a command and returns the reply, nil if the command
// is not a Cutebot command.
func (c *Controller) Execute(ctx context.Context, msg fx.Message) fx.Message {
	var err error
	switch m := msg.(type) {
	case *msgs.CutebotSpeed:
		c.cancelMove()
		err = c.Bot.SetSpeed(ctx, int(m.Left), int(m.Right))
	case *msgs.CutebotStop:
		c.cancelMove()
		err = c.Bot.Stop(ctx)
	case *msgs.CutebotMove:
		err = c.startMove(ctx, int(m.Speed), int(m.DistanceCm))
	case *msgs.CutebotServoType:
		var id cutebot.ServoID
		if id, err = servoID(m.Servo); err == nil {
			err = c.Bot.SetServoType(id, cutebot.ServoType(m.FullScale))
		}
	case *msgs.CutebotServoAngle:
		var id cutebot.ServoID
		if id, err = servoID(m.Servo); err == nil {
			err = c.Bot.ServoAngle(ctx, id, float64(m.Angle))
		}
	case *msgs.CutebotLED:
		if m.Led > uint32(cutebot.LEDBoth) {
			err = cutebot.ErrInvalidLED
		} else {
			err = c.Bot.SetColor(ctx, cutebot.LED(m.Led), cutebot.Color(m.Color&0xffffff))
		}
	case *msgs.CutebotTrackingQuery:
		state, err := c.Bot.ReadTracking(ctx)
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		return &msgs.CutebotTracking{State: uint32(state)}
	case *msgs.CutebotOnTrackQuery:
		on, err := c.Bot.IsOnTrack(ctx, cutebot.TrackState(m.Mask))
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		return &msgs.CutebotOnTrack{OnTrack: on}
	case *msgs.CutebotDistanceQuery:
		cm, err := c.Bot.ReadDistanceCm(ctx)
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		return &msgs.CutebotDistance{Cm: int32(cm), InRange: cm != cutebot.DistanceOutOfRange}
	default:
		return nil
	}
	if err != nil {
		glog.Warningf("%T failed: %v", msg, err)
		return msgs.NewCommandErr(err)
	}
	return msgs.NewCommandOK()
}

// Wait waits for the background move to finish.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func servoID(v uint32) (cutebot.ServoID, error) {
	if v > uint32(cutebot.S4) || !cutebot.ServoID(v).IsValid() {
		return 0, cutebot.ErrInvalidServo
	}
	return cutebot.ServoID(v), nil
}

func (c *Controller) startMove(ctx context.Context, speed, distanceCm int) error {
	c.cancelMove()
	cmd := cutebot.PlanMove(speed, distanceCm)
	if err := c.Bot.Motion.Start(ctx, cmd); err != nil {
		return err
	}
	moveCtx, cancel := context.WithCancel(ctx)
	c.lock.Lock()
	c.moveSeq++
	seq := c.moveSeq
	c.moveCancel = cancel
	c.lock.Unlock()

	c.sendEvent(ctx, motionEvent(cmd, true))
	c.wg.Add(1)
	go c.waitMove(moveCtx, seq, cmd, c.Bot.Clock.Now())
	return nil
}

func (c *Controller) waitMove(ctx context.Context, seq uint64, cmd cutebot.MoveCommand, start time.Time) {
	defer c.wg.Done()
	acked, err := c.Bot.Motion.WaitCompletion(ctx, cmd.Timeout())
	ev := motionEvent(cmd, false)
	ev.Acknowledged, ev.Canceled = acked, err != nil
	ev.ElapsedMs = uint32(c.Bot.Clock.Now().Sub(start) / time.Millisecond)
	if glog.V(1) {
		glog.Infof("move #%d done: ack=%v canceled=%v elapsed=%dms", seq, acked, ev.Canceled, ev.ElapsedMs)
	}
	if loopCtl, ok := fx.LoopCtlOf(ctx); ok {
		loopCtl.PostMessage(&moveDone{seq: seq, event: ev})
		loopCtl.TriggerNext()
		return
	}
	c.finishMove(seq)
	c.sendEvent(context.Background(), ev)
}

func (c *Controller) cancelMove() {
	c.lock.Lock()
	cancel := c.moveCancel
	c.moveCancel = nil
	c.lock.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) finishMove(seq uint64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if seq == c.moveSeq && c.moveCancel != nil {
		c.moveCancel()
		c.moveCancel = nil
	}
}

func (c *Controller) sendEvent(ctx context.Context, ev *msgs.CutebotMotion) {
	if c.Events == nil {
		return
	}
	if err := c.Events.SendEvent(ctx, ev); err != nil {
		glog.Errorf("send motion event error: %v", err)
	}
}

func motionEvent(cmd cutebot.MoveCommand, moving bool) *msgs.CutebotMotion {
	return &msgs.CutebotMotion{
		Moving:     moving,
		DistanceMm: uint32(cmd.DistanceMm),
		SpeedMmS:   uint32(cmd.SpeedMmS),
		Direction:  uint32(cmd.Direction),
	}
}
