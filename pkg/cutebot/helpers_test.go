package cutebot

import (
	"context"
	"time"
)

type testClock struct {
	now    time.Time
	step   time.Duration
	sleeps []time.Duration
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1000, 0)}
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *testClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

type sentFrame struct {
	code   byte
	params []byte
}

type testTransport struct {
	sent    []sentFrame
	sendErr error
	reply   func(code byte, params []byte) ([]byte, error)
}

func (t *testTransport) Send(ctx context.Context, code byte, params ...byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.sent = append(t.sent, sentFrame{code: code, params: append([]byte(nil), params...)})
	return t.sendErr
}

func (t *testTransport) Query(ctx context.Context, code byte, params []byte, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.sent = append(t.sent, sentFrame{code: code, params: append([]byte(nil), params...)})
	if t.reply != nil {
		return t.reply(code, params)
	}
	return make([]byte, n), nil
}

func (t *testTransport) count(code byte) (n int) {
	for _, f := range t.sent {
		if f.code == code {
			n++
		}
	}
	return
}
