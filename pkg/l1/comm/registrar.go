package comm

import (
	"context"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

// Registrar is the controller side of a Pipe. Received commands are
// posted to the loop as l1.CommandMsg, replies go back on the same pipe.
type Registrar struct {
	pipe Pipe
}

// Init initializes the Registrar with defaults.
func (r *Registrar) Init(rw PacketReadWriter) {
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	switch {
	case typed.IsReply():
		glog.Warningf("unexpected reply %T #%d", msg, typed.Sequence)
		return nil
	case typed.IsCommand():
		if glog.V(2) {
			glog.Infof("command %T #%d", msg, typed.Sequence)
		}
		loopCtl.PostMessage(&l1.CommandMsg{Command: &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe}})
	case typed.IsEvent():
		loopCtl.PostMessage(msg)
	default:
		return nil
	}
	loopCtl.TriggerNext()
	return nil
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEvent(msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.pipe)
}

// Serve runs the pipe until the connection fails or ctx is done,
// for registrars created after the loop has started.
// ctx must come from a loop runner.
func (r *Registrar) Serve(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(msg fx.Message) error {
	return c.pipe.SendReply(msg, c.seq)
}

// RegistrarMux registers L1 controller with multiple Registrars.
type RegistrarMux struct {
	Registrars []l1.Registrar
}

// SendEvent implements Registrar, the event goes to every registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	for _, reg := range r.Registrars {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (r *RegistrarMux) AddToLoop(l *fx.Loop) {
	for _, reg := range r.Registrars {
		if adder, ok := reg.(fx.LoopAdder); ok {
			l.Add(adder)
		}
	}
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...l1.Registrar) {
	r.Registrars = append(r.Registrars, regs...)
}

// UnsupportedCommands replies left-over commands as unsupported.
type UnsupportedCommands struct {
}

// Control implements Controller.
func (c *UnsupportedCommands) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if !ok {
			return
		}
		mctx.MessageTaken()
		glog.Warningf("unsupported command %T", cmdMsg.Command.Msg())
		if err := cmdMsg.Command.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand)); err != nil {
			glog.Errorf("reply unsupported command error: %v", err)
		}
	}))
	return nil
}

// AddToLoop implements LoopAdder.
func (c *UnsupportedCommands) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvIdle, c)
}
