package comm

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

// Pipe exchanges Typed messages over a PacketReadWriter.
type Pipe struct {
	ReadWriter PacketReadWriter
	Handler    msgs.TypedMsgHandler

	sendLock sync.Mutex
}

// NewPipe creates a Pipe with given PacketReadWriter.
func NewPipe(rw PacketReadWriter) *Pipe {
	return &Pipe{ReadWriter: rw}
}

// SendCommand sends a command with its sequence number.
func (p *Pipe) SendCommand(msg fx.Message, seq uint32) error {
	return p.sendMsg(msg, seq, func(t *msgs.Typed) bool { return t.IsCommand() && !t.IsReply() }, ErrNotCommand)
}

// SendReply answers the command with sequence number seq.
func (p *Pipe) SendReply(msg fx.Message, seq uint32) error {
	return p.sendMsg(msg, seq, (*msgs.Typed).IsReply, ErrNotCommand)
}

// SendEvent sends an event.
func (p *Pipe) SendEvent(msg fx.Message) error {
	return p.sendMsg(msg, 0, (*msgs.Typed).IsEvent, ErrNotEvent)
}

func (p *Pipe) sendMsg(msg fx.Message, seq uint32, valid func(*msgs.Typed) bool, invalid error) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !valid(typed) {
		return invalid
	}
	typed.Sequence = seq
	return p.SendTyped(typed)
}

// SendTyped send a Typed message.
func (p *Pipe) SendTyped(typed *msgs.Typed) error {
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	if len(pkt) > MaxPacketSize {
		return ErrPacketTooLarge
	}
	if glog.V(3) {
		glog.Infof("send %08x #%d (%d bytes)", typed.TypeId, typed.Sequence, len(pkt))
	}
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.WritePacket(pkt)
}

// Run receives messages until the connection fails.
// Commands which can't be decoded are answered with CommandErr,
// other undecodable messages are dropped.
func (p *Pipe) Run(ctx context.Context) error {
	defer p.Close()
	for {
		pkt, err := p.ReadWriter.ReadPacket()
		if err != nil {
			return err
		}
		typed, err := msgs.DecodeTyped(pkt)
		if err != nil {
			return err
		}
		msg, err := typed.Decode()
		if err != nil {
			glog.Warningf("drop message %08x: %v", typed.TypeId, err)
			if typed.IsCommand() && !typed.IsReply() {
				if err = p.SendReply(msgs.NewCommandErr(err), typed.Sequence); err != nil {
					return err
				}
			}
			continue
		}
		if h := p.Handler; h != nil {
			if err = h.HandleTypedMsg(ctx, msg, typed); err != nil {
				return err
			}
		}
	}
}

// Close implements io.Closer.
func (p *Pipe) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (p *Pipe) AddToLoop(loop *fx.Loop) {
	if adder, ok := p.ReadWriter.(fx.LoopAdder); ok {
		loop.Add(adder)
	} else if runnable, ok := p.ReadWriter.(fx.Runnable); ok {
		loop.AddRunnable(runnable)
	}
	loop.AddRunnable(p)
}
