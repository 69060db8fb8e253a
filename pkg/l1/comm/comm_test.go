package comm

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

type chanReadWriter struct {
	in, out   chan []byte
	done      chan struct{}
	closeOnce *sync.Once
}

func chanPair() (*chanReadWriter, *chanReadWriter) {
	a2b, b2a, done := make(chan []byte, 16), make(chan []byte, 16), make(chan struct{})
	once := &sync.Once{}
	return &chanReadWriter{in: b2a, out: a2b, done: done, closeOnce: once},
		&chanReadWriter{in: a2b, out: b2a, done: done, closeOnce: once}
}

func (c *chanReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-c.in:
		return pkt, nil
	case <-c.done:
		return nil, io.EOF
	}
}

func (c *chanReadWriter) WritePacket(pkt []byte) error {
	select {
	case c.out <- pkt:
		return nil
	case <-c.done:
		return io.ErrClosedPipe
	}
}

func (c *chanReadWriter) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func TestChanPairCloseBothEnds(t *testing.T) {
	a, b := chanPair()
	require.NoError(t, b.Close())
	require.NoError(t, a.Close())
	_, err := a.ReadPacket()
	require.Equal(t, io.EOF, err)
	require.Equal(t, io.ErrClosedPipe, b.WritePacket([]byte{1}))
}

func TestPipeSendKinds(t *testing.T) {
	a, b := chanPair()
	p := NewPipe(a)
	require.Equal(t, ErrNotCommand, p.SendCommand(msgs.NewCommandOK(), 1))
	require.Equal(t, ErrNotCommand, p.SendReply(&msgs.CutebotStop{}, 1))
	require.Equal(t, ErrNotEvent, p.SendEvent(&msgs.CutebotStop{}))
	require.Equal(t, msgs.ErrNotSerializable, p.SendEvent(&l1.CommandMsg{}))

	require.NoError(t, p.SendCommand(&msgs.CutebotStop{}, 7))
	require.NoError(t, p.SendReply(msgs.NewCommandOK(), 7))
	require.NoError(t, p.SendEvent(&msgs.CutebotMotion{Moving: true}))
	var kinds []string
	for i := 0; i < 3; i++ {
		pkt, err := b.ReadPacket()
		require.NoError(t, err)
		typed, err := msgs.DecodeTyped(pkt)
		require.NoError(t, err)
		switch {
		case typed.IsReply():
			kinds = append(kinds, "reply")
			require.Equal(t, uint32(7), typed.Sequence)
		case typed.IsCommand():
			kinds = append(kinds, "command")
			require.Equal(t, uint32(7), typed.Sequence)
		case typed.IsEvent():
			kinds = append(kinds, "event")
		}
	}
	require.Equal(t, []string{"command", "reply", "event"}, kinds)
}

func TestPipeUnknownCommand(t *testing.T) {
	a, b := chanPair()
	p := NewPipe(a)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(context.Background()) }()

	typed := &msgs.Typed{TypeId: msgs.GroupCustom | 0x42, Sequence: 9}
	pkt, err := typed.Encode()
	require.NoError(t, err)
	require.NoError(t, b.WritePacket(pkt))

	pkt, err = b.ReadPacket()
	require.NoError(t, err)
	reply, err := msgs.DecodeTyped(pkt)
	require.NoError(t, err)
	require.True(t, reply.IsReply())
	require.Equal(t, uint32(9), reply.Sequence)
	msg, err := reply.Decode()
	require.NoError(t, err)
	require.IsType(t, &msgs.CommandErr{}, msg)

	b.Close()
	require.Equal(t, io.EOF, <-errCh)
}

func TestRegistrarAndConn(t *testing.T) {
	ctlSide, connSide := chanPair()
	var reg Registrar
	reg.Init(ctlSide)
	var conn ControllerConn
	conn.Init(connSide)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctlLoop := fx.NewLoop().Add(&reg, &UnsupportedCommands{})
	ctlLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
			if cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg); ok {
				if m, ok := cmdMsg.Command.Msg().(*msgs.CutebotMove); ok {
					mctx.MessageTaken()
					cmdMsg.Command.Done(&msgs.CutebotDistance{Cm: m.DistanceCm, InRange: true})
				}
			}
		}))
		return nil
	}))
	go ctlLoop.Run(ctx)
	go fx.NewLoop().Add(&conn).Run(ctx)

	res := <-conn.DoCommand(&msgs.CutebotMove{Speed: 50, DistanceCm: 20}).ResultChan()
	require.NoError(t, res.Err)
	require.Equal(t, &msgs.CutebotDistance{Cm: 20, InRange: true}, res.Msg)

	res = <-conn.DoCommand(&msgs.CutebotStop{}).ResultChan()
	require.EqualError(t, res.Err, msgs.ErrUnsupportedCommand.Error())
	require.Equal(t, 0, conn.Pending())

	res = <-conn.DoCommand(msgs.NewCommandOK()).ResultChan()
	require.Equal(t, ErrNotCommand, res.Err)
}

func TestControllerConnExpiration(t *testing.T) {
	now := time.Unix(0, 0)
	_, connSide := chanPair()
	var conn ControllerConn
	conn.Init(connSide)
	conn.Now = func() time.Time { return now }

	f := conn.DoCommand(&msgs.CutebotStop{})
	require.Equal(t, 1, conn.Pending())
	require.NoError(t, conn.purgeExpired(nil))
	require.Equal(t, 1, conn.Pending())

	now = now.Add(DefaultCommandExpiration)
	require.NoError(t, conn.purgeExpired(nil))
	res := <-f.ResultChan()
	require.Equal(t, context.DeadlineExceeded, res.Err)
	require.Equal(t, 0, conn.Pending())
}

func TestControllerConnClosed(t *testing.T) {
	ctlSide, connSide := chanPair()
	var conn ControllerConn
	conn.Init(connSide)
	f := conn.DoCommand(&msgs.CutebotStop{})

	errCh := make(chan error, 1)
	go func() { errCh <- conn.Run(context.Background()) }()
	ctlSide.Close()
	require.Equal(t, io.EOF, <-errCh)
	res := <-f.ResultChan()
	require.Equal(t, ErrConnClosed, res.Err)
}
