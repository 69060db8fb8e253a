package comm

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
)

// BoardAddr is the fixed bus address of the board.
const BoardAddr uint16 = 0x10

// DefaultSettle is the minimum quiet time the board needs after a command.
const DefaultSettle = time.Millisecond

// Sleeper waits for a duration or until the context is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleepFunc is the func form of Sleeper.
type SleepFunc func(context.Context, time.Duration) error

// Sleep implements Sleeper.
func (f SleepFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleep sleeps using a timer.
var TimerSleep = SleepFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
})

// Transport sends frames to the board.
type Transport struct {
	Settle  time.Duration
	Sleeper Sleeper

	dev  i2c.Dev
	lock sync.Mutex
}

// NewTransport creates a Transport talking to BoardAddr on the bus.
func NewTransport(bus i2c.Bus) *Transport {
	return NewTransportAt(bus, BoardAddr)
}

// NewTransportAt creates a Transport with a custom address.
func NewTransportAt(bus i2c.Bus, addr uint16) *Transport {
	return &Transport{
		Settle:  DefaultSettle,
		Sleeper: TimerSleep,
		dev:     i2c.Dev{Bus: bus, Addr: addr},
	}
}

// Addr returns the board address.
func (t *Transport) Addr() uint16 {
	return t.dev.Addr
}

// Send writes a command frame and waits for the settle delay.
func (t *Transport) Send(ctx context.Context, code byte, params ...byte) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.send(ctx, code, params)
}

// Query sends a command and reads n bytes of answer in a separate
// transaction. No other command can be issued in between.
func (t *Transport) Query(ctx context.Context, code byte, params []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBadReadSize
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	if err := t.send(ctx, code, params); err != nil {
		return nil, err
	}
	return t.read(code, n)
}

func (t *Transport) send(ctx context.Context, code byte, params []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frame, err := NewFrame(code, params...)
	if err != nil {
		return err
	}
	if glog.V(2) {
		glog.Infof("TX %s % x", t.dev.String(), frame.Bytes())
	}
	if _, err = frame.WriteTo(&t.dev); err != nil {
		return &TransportError{Op: "write", Code: code, Err: err}
	}
	sleeper := t.Sleeper
	if sleeper == nil {
		sleeper = TimerSleep
	}
	// the frame is already on the wire, settle even if ctx is done.
	return sleeper.Sleep(context.Background(), t.Settle)
}

func (t *Transport) read(code byte, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := t.dev.Tx(nil, buf); err != nil {
		return nil, &TransportError{Op: "read", Code: code, Err: err}
	}
	if glog.V(2) {
		glog.Infof("RX %s % x", t.dev.String(), buf)
	}
	return buf, nil
}
