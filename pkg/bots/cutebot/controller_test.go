package cutebot

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/cutebot"
	"github.com/robotalks/cutebot.go/pkg/l1/comm"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/stream"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
	"github.com/robotalks/cutebot.go/pkg/sim/board"
)

type virtualClock struct {
	now  time.Time
	lock sync.Mutex
}

func (c *virtualClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(time.Microsecond)
	return c.now
}

func (c *virtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.lock.Lock()
	c.now = c.now.Add(d)
	c.lock.Unlock()
	return nil
}

type eventRecorder struct {
	lock   sync.Mutex
	events []fx.Message
}

func (r *eventRecorder) SendEvent(ctx context.Context, msg fx.Message) error {
	r.lock.Lock()
	r.events = append(r.events, msg)
	r.lock.Unlock()
	return nil
}

func (r *eventRecorder) motions() (res []*msgs.CutebotMotion) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, ev := range r.events {
		if m, ok := ev.(*msgs.CutebotMotion); ok {
			res = append(res, m)
		}
	}
	return
}

func newTestController(clock cutebot.Clock) (*Controller, *board.Board, *eventRecorder) {
	b := board.New(clock)
	conf := cutebot.NewConfig()
	conf.Clock = clock
	rec := &eventRecorder{}
	return &Controller{
		Bot:    conf.New(b, b.Sonar.Trigger(), b.Sonar.Echo()),
		Events: rec,
	}, b, rec
}

func TestControllerExecute(t *testing.T) {
	ctl, b, _ := newTestController(&virtualClock{now: time.Unix(100, 0)})
	ctx := context.Background()
	b.SetTracking(cutebot.TrackLeft | cutebot.TrackRight)
	b.Sonar.SetObstacle(42)

	testCases := []struct {
		name   string
		msg    fx.Message
		expect fx.Message
	}{
		{"speed", &msgs.CutebotSpeed{Left: 50, Right: -30}, msgs.NewCommandOK()},
		{"stop", &msgs.CutebotStop{}, msgs.NewCommandOK()},
		{"servo type", &msgs.CutebotServoType{Servo: 1, FullScale: 270}, msgs.NewCommandOK()},
		{"servo angle", &msgs.CutebotServoAngle{Servo: 1, Angle: 135}, msgs.NewCommandOK()},
		{"invalid servo", &msgs.CutebotServoType{Servo: 257, FullScale: 270}, msgs.NewCommandErr(cutebot.ErrInvalidServo)},
		{"invalid servo type", &msgs.CutebotServoType{Servo: 2, FullScale: 90}, msgs.NewCommandErr(cutebot.ErrInvalidServoType)},
		{"invalid servo angle", &msgs.CutebotServoAngle{Servo: 0, Angle: 10}, msgs.NewCommandErr(cutebot.ErrInvalidServo)},
		{"led", &msgs.CutebotLED{Led: 2, Color: 0x112233}, msgs.NewCommandOK()},
		{"invalid led", &msgs.CutebotLED{Led: 7, Color: 0x112233}, msgs.NewCommandErr(cutebot.ErrInvalidLED)},
		{"tracking", &msgs.CutebotTrackingQuery{}, &msgs.CutebotTracking{State: 6}},
		{"on track", &msgs.CutebotOnTrackQuery{Mask: 2}, &msgs.CutebotOnTrack{OnTrack: true}},
		{"off track", &msgs.CutebotOnTrackQuery{Mask: 3}, &msgs.CutebotOnTrack{OnTrack: false}},
		{"distance", &msgs.CutebotDistanceQuery{}, &msgs.CutebotDistance{Cm: 42, InRange: true}},
		{"not cutebot", msgs.NewCommandOK(), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, ctl.Execute(ctx, tc.msg))
		})
	}

	require.Equal(t, byte(90), b.Servo(cutebot.S1))
	require.Equal(t, cutebot.Color(0x112233), b.LED(cutebot.LEDRight))
	require.Equal(t, board.Wheels{}, b.Wheels())

	b.Sonar.SetObstacle(-1)
	require.Equal(t, &msgs.CutebotDistance{Cm: cutebot.DistanceOutOfRange},
		ctl.Execute(ctx, &msgs.CutebotDistanceQuery{}))
}

func TestControllerMove(t *testing.T) {
	ctl, b, rec := newTestController(&virtualClock{now: time.Unix(100, 0)})
	require.Equal(t, msgs.NewCommandOK(), ctl.Execute(context.Background(), &msgs.CutebotMove{Speed: 50, DistanceCm: 10}))
	ctl.Wait()

	events := rec.motions()
	require.Len(t, events, 2)
	require.Equal(t, &msgs.CutebotMotion{Moving: true, DistanceMm: 100, SpeedMmS: 250}, events[0])
	require.False(t, events[1].Moving)
	require.True(t, events[1].Acknowledged)
	require.False(t, events[1].Canceled)
	require.True(t, events[1].ElapsedMs > 500)
	require.InDelta(t, 100, b.Pose().X, 1e-6)
}

func TestControllerStopCancelsMove(t *testing.T) {
	ctl, b, rec := newTestController(cutebot.SystemClock{})
	ctx := context.Background()
	require.Equal(t, msgs.NewCommandOK(), ctl.Execute(ctx, &msgs.CutebotMove{Speed: -50, DistanceCm: 100}))
	require.True(t, b.Moving())
	require.Equal(t, msgs.NewCommandOK(), ctl.Execute(ctx, &msgs.CutebotStop{}))
	ctl.Wait()
	require.False(t, b.Moving())

	events := rec.motions()
	require.Len(t, events, 2)
	require.Equal(t, uint32(cutebot.MoveBackward), events[0].Direction)
	require.True(t, events[1].Canceled)
	require.False(t, events[1].Acknowledged)
}

func TestControllerStopOnExit(t *testing.T) {
	ctl, b, _ := newTestController(&virtualClock{now: time.Unix(100, 0)})
	ctx, cancel := context.WithCancel(context.Background())
	require.Equal(t, msgs.NewCommandOK(), ctl.Execute(ctx, &msgs.CutebotSpeed{Left: 30, Right: 30}))
	stopped := ctl.Stopped()
	cancel()
	require.NoError(t, ctl.stopOnExit(ctx))
	select {
	case <-stopped:
	default:
		t.Fatal("Stopped not closed")
	}
	require.Equal(t, stopped, ctl.Stopped())
	require.Equal(t, board.Wheels{}, b.Wheels())
}

func TestControllerOverL1(t *testing.T) {
	ctl, b, _ := newTestController(&virtualClock{now: time.Unix(100, 0)})
	ctlSide, connSide := net.Pipe()

	var reg comm.Registrar
	reg.Init(stream.New(ctlSide))
	ctl.Events = &reg

	var conn comm.ControllerConn
	conn.Init(stream.New(connSide))
	events := make(chan *msgs.CutebotMotion, 4)
	watcher := fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
			if ev, ok := mctx.CurrentMessage().(*msgs.CutebotMotion); ok {
				mctx.MessageTaken()
				events <- ev
			}
		}))
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, loop := range []*fx.Loop{
		fx.NewLoop().Add(&reg, ctl, &comm.UnsupportedCommands{}),
		fx.NewLoop().Add(&conn).AddController(fx.PrLvNormal, watcher),
	} {
		wg.Add(1)
		go func(loop *fx.Loop) {
			defer wg.Done()
			loop.Run(ctx)
		}(loop)
	}
	defer func() {
		cancel()
		ctlSide.Close()
		connSide.Close()
		wg.Wait()
	}()

	do := func(msg fx.Message) (fx.Message, error) {
		select {
		case res := <-conn.DoCommand(msg).ResultChan():
			return res.Msg, res.Err
		case <-time.After(5 * time.Second):
			t.Fatal("command timeout")
		}
		return nil, nil
	}

	reply, err := do(&msgs.CutebotLED{Led: 0, Color: 0xff0000})
	require.NoError(t, err)
	require.Equal(t, msgs.NewCommandOK(), reply)
	require.Equal(t, cutebot.Red, b.LED(cutebot.LEDLeft))

	_, err = do(&msgs.CutebotLED{Led: 9})
	require.EqualError(t, err, cutebot.ErrInvalidLED.Error())

	_, err = do(msgs.NewCommandOK())
	require.Equal(t, comm.ErrNotCommand, err)

	reply, err = do(&msgs.CutebotMove{Speed: 100, DistanceCm: 10})
	require.NoError(t, err)
	require.Equal(t, msgs.NewCommandOK(), reply)
	for _, moving := range []bool{true, false} {
		select {
		case ev := <-events:
			require.Equal(t, moving, ev.Moving)
			require.Equal(t, !moving, ev.Acknowledged)
		case <-time.After(5 * time.Second):
			t.Fatal("motion event timeout")
		}
	}
	ctl.Wait()

	cancel()
	select {
	case <-ctl.Stopped():
	case <-time.After(5 * time.Second):
		t.Fatal("controller not stopped")
	}
	require.Equal(t, board.Wheels{}, b.Wheels())
	history := b.History()
	require.Equal(t, cutebot.CmdSpeed, history[len(history)-1].Code)
}
